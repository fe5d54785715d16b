package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedMimeType(t *testing.T) {
	assert.True(t, IsAllowedMimeType("application/pdf"))
	assert.True(t, IsAllowedMimeType("image/png"))
	assert.False(t, IsAllowedMimeType("application/zip"))
	assert.False(t, IsAllowedMimeType(""))
}

func TestDocumentStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, (&Document{ExpiryDate: &past}).IsExpired(now))
	assert.False(t, (&Document{ExpiryDate: &future}).IsExpired(now))
	assert.False(t, (&Document{}).IsExpired(now), "documents without expiry never expire")
}

func TestIsExpiringWithin(t *testing.T) {
	now := time.Now()
	in10 := now.AddDate(0, 0, 10)
	in60 := now.AddDate(0, 0, 60)
	past := now.AddDate(0, 0, -1)

	tests := []struct {
		name   string
		status DocumentStatus
		expiry *time.Time
		want   bool
	}{
		{"approved expiring inside window", StatusApproved, &in10, true},
		{"approved expiring past window", StatusApproved, &in60, false},
		{"approved already expired", StatusApproved, &past, false},
		{"pending expiring inside window", StatusPending, &in10, false},
		{"approved without expiry", StatusApproved, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Document{Status: tc.status, ExpiryDate: tc.expiry}
			assert.Equal(t, tc.want, d.IsExpiringWithin(now, 30))
		})
	}
}

func TestDocumentTypeLabel(t *testing.T) {
	assert.Equal(t, "Customs Declaration", TypeCustoms.Label())
	assert.Equal(t, "Other Document", TypeOther.Label())
}
