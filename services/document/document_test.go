package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	documentModel "vehicle-shipping/models/document"
	routeModel "vehicle-shipping/models/route"
)

func TestRequiredDocumentTypesDomesticRoute(t *testing.T) {
	rt := &routeModel.Route{OriginCountry: "USA", DestinationCountry: "USA"}

	required := RequiredDocumentTypes(rt, "container")

	assert.ElementsMatch(t, []documentModel.DocumentType{
		documentModel.TypePassport,
		documentModel.TypeInvoice,
		documentModel.TypeInsurance,
	}, required)
}

func TestRequiredDocumentTypesInternationalRoute(t *testing.T) {
	rt := &routeModel.Route{OriginCountry: "USA", DestinationCountry: "Germany"}

	required := RequiredDocumentTypes(rt, "container")

	assert.Contains(t, required, documentModel.TypeCustoms)
}

func TestRequiredDocumentTypesDrivableVehicle(t *testing.T) {
	rt := &routeModel.Route{OriginCountry: "USA", DestinationCountry: "Germany"}

	required := RequiredDocumentTypes(rt, "SUV")

	assert.ElementsMatch(t, []documentModel.DocumentType{
		documentModel.TypePassport,
		documentModel.TypeInvoice,
		documentModel.TypeInsurance,
		documentModel.TypeCustoms,
		documentModel.TypeLicense,
	}, required)
}

func TestRequiredDocumentTypesNilRoute(t *testing.T) {
	required := RequiredDocumentTypes(nil, "sedan")

	assert.NotContains(t, required, documentModel.TypeCustoms)
	assert.Contains(t, required, documentModel.TypeLicense)
}

func TestStoragePath(t *testing.T) {
	first := storagePath("Passport Scan.PDF")
	second := storagePath("Passport Scan.PDF")

	assert.True(t, strings.HasPrefix(first, "documents/"))
	assert.True(t, strings.HasSuffix(first, ".pdf"))
	assert.NotEqual(t, first, second)

	assert.False(t, strings.Contains(storagePath("noextension"), "."))
}

func TestMissingDocumentTypes(t *testing.T) {
	required := []documentModel.DocumentType{
		documentModel.TypePassport,
		documentModel.TypeInvoice,
		documentModel.TypeInsurance,
	}
	docs := []documentModel.Document{
		{DocumentType: documentModel.TypePassport, Status: documentModel.StatusApproved},
		{DocumentType: documentModel.TypeInvoice, Status: documentModel.StatusPending},
		{DocumentType: documentModel.TypeInsurance, Status: documentModel.StatusRejected},
	}

	missing := MissingDocumentTypes(required, docs)

	assert.ElementsMatch(t, []documentModel.DocumentType{
		documentModel.TypeInvoice,
		documentModel.TypeInsurance,
	}, missing, "only approved documents satisfy a requirement")
}

func TestMissingDocumentTypesAllApproved(t *testing.T) {
	required := []documentModel.DocumentType{documentModel.TypePassport}
	docs := []documentModel.Document{
		{DocumentType: documentModel.TypePassport, Status: documentModel.StatusApproved},
	}

	assert.Empty(t, MissingDocumentTypes(required, docs))
}

func TestMissingDocumentTypesNoDocuments(t *testing.T) {
	required := []documentModel.DocumentType{
		documentModel.TypePassport,
		documentModel.TypeInvoice,
	}

	assert.Equal(t, required, MissingDocumentTypes(required, nil))
}
