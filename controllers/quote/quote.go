package quote

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	"vehicle-shipping/logger"
	quoteModel "vehicle-shipping/models/quote"
	quoteService "vehicle-shipping/services/quote"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// QuoteController handles quote-related HTTP requests
type QuoteController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *quoteService.Service
}

// NewQuoteController creates a new quote controller
func NewQuoteController(db *gorm.DB, asyncLogger *logger.AsyncLogger, service *quoteService.Service) *QuoteController {
	return &QuoteController{
		DB:      db,
		Logger:  asyncLogger,
		Service: service,
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("quote request failed", err)
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

// Store creates a new quote
func (qc *QuoteController) Store(c *fiber.Ctx) error {
	var req types.QuoteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	q, err := qc.Service.Create(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	qc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Quote created successfully",
		Data:    q,
	})
}

// Index lists quotes with filters and pagination
func (qc *QuoteController) Index(c *fiber.Ctx) error {
	page, perPage := utils.ParsePagination(c)

	filter := quoteModel.Filter{
		Status: quoteModel.QuoteStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if customerID, err := strconv.Atoi(c.Query("customer_id")); err == nil {
		filter.CustomerID = uint(customerID)
	}
	if routeID, err := strconv.Atoi(c.Query("route_id")); err == nil {
		filter.RouteID = uint(routeID)
	}

	quotes, total, err := qc.Service.List(filter, page, perPage)
	if err != nil {
		return fail(c, err)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quotes retrieved successfully",
		Data: types.PaginatedData{
			Items: quotes,
			Pagination: types.Pagination{
				Page:       page,
				PerPage:    perPage,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// Show returns a single quote
func (qc *QuoteController) Show(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid quote id"))
	}

	q, err := qc.Service.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quote retrieved successfully",
		Data:    q,
	})
}

// Approve approves a pending quote
func (qc *QuoteController) Approve(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid quote id"))
	}

	q, err := qc.Service.Approve(uint(id), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quote approved successfully",
		Data:    q,
	})
}

// Reject rejects a pending quote
func (qc *QuoteController) Reject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid quote id"))
	}

	var req types.QuoteRejectRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return fail(c, errs.Validation("%s", err.Error()))
	}

	q, err := qc.Service.Reject(uint(id), actor(c), req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quote rejected",
		Data:    q,
	})
}

// Extend pushes a quote's validity window out
func (qc *QuoteController) Extend(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid quote id"))
	}

	var req types.QuoteExtendRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return fail(c, errs.Validation("%s", err.Error()))
	}

	q, err := qc.Service.ExtendValidity(uint(id), req.Days, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quote validity extended",
		Data:    q,
	})
}

// Convert turns an approved quote into a booking
func (qc *QuoteController) Convert(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid quote id"))
	}

	var req types.QuoteConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}

	bk, err := qc.Service.Convert(uint(id), &req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	qc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Quote converted to booking",
		Data:    bk,
	})
}

// ExpiringSoon lists quotes close to their validity deadline
func (qc *QuoteController) ExpiringSoon(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	quotes, err := qc.Service.ExpiringSoon(days)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Expiring quotes retrieved successfully",
		Data:    quotes,
	})
}
