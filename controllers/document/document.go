package document

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	"vehicle-shipping/logger"
	documentModel "vehicle-shipping/models/document"
	documentService "vehicle-shipping/services/document"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// DocumentController handles document-related HTTP requests
type DocumentController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *documentService.Service
}

// NewDocumentController creates a new document controller
func NewDocumentController(db *gorm.DB, asyncLogger *logger.AsyncLogger, service *documentService.Service) *DocumentController {
	return &DocumentController{
		DB:      db,
		Logger:  asyncLogger,
		Service: service,
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("document request failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: err.Error(),
		Data:    nil,
	})
}

func actor(c *fiber.Ctx) string {
	who, err := utils.ActorFromToken(c)
	if err != nil {
		return "system"
	}
	return who
}

// Store registers an uploaded document
func (dc *DocumentController) Store(c *fiber.Ctx) error {
	var req types.DocumentUploadRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	doc, err := dc.Service.Upload(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	dc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Document uploaded successfully",
		Data:    doc,
	})
}

// Index lists documents with filters and pagination
func (dc *DocumentController) Index(c *fiber.Ctx) error {
	page, perPage := utils.ParsePagination(c)

	filter := documentModel.Filter{
		Status: documentModel.DocumentStatus(c.Query("status")),
		Type:   documentModel.DocumentType(c.Query("type")),
	}
	if bookingID, err := strconv.Atoi(c.Query("booking_id")); err == nil {
		filter.BookingID = uint(bookingID)
	}
	if customerID, err := strconv.Atoi(c.Query("customer_id")); err == nil {
		filter.CustomerID = uint(customerID)
	}

	docs, total, err := dc.Service.List(filter, page, perPage)
	if err != nil {
		return fail(c, err)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Documents retrieved successfully",
		Data: types.PaginatedData{
			Items: docs,
			Pagination: types.Pagination{
				Page:       page,
				PerPage:    perPage,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// Show returns a single document
func (dc *DocumentController) Show(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid document id"))
	}

	doc, err := dc.Service.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Document retrieved successfully",
		Data:    doc,
	})
}

// Approve approves a pending document
func (dc *DocumentController) Approve(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid document id"))
	}

	doc, err := dc.Service.Approve(uint(id), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Document approved",
		Data:    doc,
	})
}

// Reject rejects a pending document with a reason
func (dc *DocumentController) Reject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid document id"))
	}

	var req types.DocumentRejectRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return fail(c, errs.Validation("%s", err.Error()))
	}

	doc, err := dc.Service.Reject(uint(id), req.Reason, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Document rejected",
		Data:    doc,
	})
}

// Missing lists the required document types a booking still lacks
func (dc *DocumentController) Missing(c *fiber.Ctx) error {
	bookingID, err := strconv.Atoi(c.Params("booking_id"))
	if err != nil {
		return fail(c, errs.Validation("invalid booking id"))
	}

	missing, err := dc.Service.MissingForBooking(uint(bookingID))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Missing documents retrieved successfully",
		Data:    missing,
	})
}

// ExpiringSoon lists approved documents close to their expiry date
func (dc *DocumentController) ExpiringSoon(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}

	docs, err := dc.Service.ExpiringSoon(time.Now(), days)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Expiring documents retrieved successfully",
		Data:    docs,
	})
}
