package booking

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	"vehicle-shipping/logger"
	bookingModel "vehicle-shipping/models/booking"
	bookingService "vehicle-shipping/services/booking"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *bookingService.Service
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger, service *bookingService.Service) *BookingController {
	return &BookingController{
		DB:      db,
		Logger:  asyncLogger,
		Service: service,
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("booking request failed", err)
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

// Store creates a new booking without a prior quote
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req types.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	bk, err := bc.Service.Create(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    bk,
	})
}

// Index lists bookings with filters and pagination
func (bc *BookingController) Index(c *fiber.Ctx) error {
	page, perPage := utils.ParsePagination(c)

	filter := bookingModel.Filter{
		Status: bookingModel.BookingStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if customerID, err := strconv.Atoi(c.Query("customer_id")); err == nil {
		filter.CustomerID = uint(customerID)
	}
	if routeID, err := strconv.Atoi(c.Query("route_id")); err == nil {
		filter.RouteID = uint(routeID)
	}

	bookings, total, err := bc.Service.List(filter, page, perPage)
	if err != nil {
		return fail(c, err)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings retrieved successfully",
		Data: types.PaginatedData{
			Items: bookings,
			Pagination: types.Pagination{
				Page:       page,
				PerPage:    perPage,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// Show returns a single booking
func (bc *BookingController) Show(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid booking id"))
	}

	bk, err := bc.Service.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking retrieved successfully",
		Data:    bk,
	})
}

// UpdateStatus moves a booking through its lifecycle
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid booking id"))
	}

	var req types.BookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return fail(c, errs.Validation("%s", err.Error()))
	}

	bk, err := bc.Service.UpdateStatus(uint(id), bookingModel.BookingStatus(req.Status), req.Reason, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking status updated",
		Data:    bk,
	})
}

// Cancel cancels a booking
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid booking id"))
	}

	var req types.BookingCancelRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return fail(c, errs.Validation("%s", err.Error()))
	}

	bk, err := bc.Service.Cancel(uint(id), req.Reason, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking cancelled",
		Data:    bk,
	})
}

// History returns the booking's status event trail
func (bc *BookingController) History(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid booking id"))
	}

	events, err := bc.Service.StatusHistory(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking history retrieved successfully",
		Data:    events,
	})
}

// RequiresAttention lists bookings flagged for operator review
func (bc *BookingController) RequiresAttention(c *fiber.Ctx) error {
	items, err := bc.Service.RequiresAttention(time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Attention queue retrieved successfully",
		Data:    items,
	})
}
