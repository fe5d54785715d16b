package payment

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	"vehicle-shipping/logger"
	paymentModel "vehicle-shipping/models/payment"
	paymentService "vehicle-shipping/services/payment"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// PaymentController handles payment-related HTTP requests
type PaymentController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *paymentService.Service
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *gorm.DB, asyncLogger *logger.AsyncLogger, service *paymentService.Service) *PaymentController {
	return &PaymentController{
		DB:      db,
		Logger:  asyncLogger,
		Service: service,
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("payment request failed", err)
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

// Store records a pending payment
func (pc *PaymentController) Store(c *fiber.Ctx) error {
	var req types.PaymentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	p, err := pc.Service.Create(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment recorded successfully",
		Data:    p,
	})
}

// Index lists payments with filters and pagination
func (pc *PaymentController) Index(c *fiber.Ctx) error {
	page, perPage := utils.ParsePagination(c)

	filter := paymentModel.Filter{
		Status: paymentModel.PaymentStatus(c.Query("status")),
		Method: paymentModel.PaymentMethod(c.Query("method")),
	}
	if bookingID, err := strconv.Atoi(c.Query("booking_id")); err == nil {
		id := uint(bookingID)
		filter.BookingID = &id
	}

	payments, total, err := pc.Service.List(filter, page, perPage)
	if err != nil {
		return fail(c, err)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payments retrieved successfully",
		Data: types.PaginatedData{
			Items: payments,
			Pagination: types.Pagination{
				Page:       page,
				PerPage:    perPage,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// Show returns a single payment
func (pc *PaymentController) Show(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid payment id"))
	}

	p, err := pc.Service.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment retrieved successfully",
		Data:    p,
	})
}

// Complete marks a pending payment completed
func (pc *PaymentController) Complete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid payment id"))
	}

	var req types.PaymentCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}

	p, err := pc.Service.Complete(uint(id), &req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment completed",
		Data:    p,
	})
}

// Fail marks a payment failed
func (pc *PaymentController) Fail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid payment id"))
	}

	var req types.PaymentFailRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}

	p, err := pc.Service.Fail(uint(id), req.GatewayResponse, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment marked as failed",
		Data:    p,
	})
}

// Retry moves a failed payment back to pending
func (pc *PaymentController) Retry(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid payment id"))
	}

	p, err := pc.Service.Retry(uint(id), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment queued for retry",
		Data:    p,
	})
}

// Cancel abandons a pending or failed payment
func (pc *PaymentController) Cancel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid payment id"))
	}

	p, err := pc.Service.Cancel(uint(id), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment cancelled",
		Data:    p,
	})
}

// Refund reverses some or all of a completed payment
func (pc *PaymentController) Refund(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid payment id"))
	}

	var req types.PaymentRefundRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}

	refund, err := pc.Service.Refund(uint(id), &req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	pc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Refund issued",
		Data:    refund,
	})
}

// Overdue lists payments pending past the configured threshold
func (pc *PaymentController) Overdue(c *fiber.Ctx) error {
	payments, err := pc.Service.Overdue(time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Overdue payments retrieved successfully",
		Data:    payments,
	})
}
