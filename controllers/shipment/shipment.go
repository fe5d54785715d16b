package shipment

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	"vehicle-shipping/logger"
	shipmentModel "vehicle-shipping/models/shipment"
	shipmentService "vehicle-shipping/services/shipment"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// ShipmentController handles shipment-related HTTP requests
type ShipmentController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *shipmentService.Service
}

// NewShipmentController creates a new shipment controller
func NewShipmentController(db *gorm.DB, asyncLogger *logger.AsyncLogger, service *shipmentService.Service) *ShipmentController {
	return &ShipmentController{
		DB:      db,
		Logger:  asyncLogger,
		Service: service,
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("shipment request failed", err)
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

// Index lists shipments with filters and pagination
func (sc *ShipmentController) Index(c *fiber.Ctx) error {
	page, perPage := utils.ParsePagination(c)

	filter := shipmentModel.Filter{
		Status:  shipmentModel.ShipmentStatus(c.Query("status")),
		Carrier: c.Query("carrier"),
	}
	if bookingID, err := strconv.Atoi(c.Query("booking_id")); err == nil {
		id := uint(bookingID)
		filter.BookingID = &id
	}

	shipments, total, err := sc.Service.List(filter, page, perPage)
	if err != nil {
		return fail(c, err)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipments retrieved successfully",
		Data: types.PaginatedData{
			Items: shipments,
			Pagination: types.Pagination{
				Page:       page,
				PerPage:    perPage,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// Show returns a single shipment
func (sc *ShipmentController) Show(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid shipment id"))
	}

	sh, err := sc.Service.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment retrieved successfully",
		Data:    sh,
	})
}

// Track resolves a shipment by its public tracking number
func (sc *ShipmentController) Track(c *fiber.Ctx) error {
	trackingNumber := c.Params("tracking_number")
	if trackingNumber == "" {
		return fail(c, errs.Validation("tracking number is required"))
	}

	sh, err := sc.Service.GetByTracking(trackingNumber)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment retrieved successfully",
		Data:    sh,
	})
}

// UpdateStatus moves a shipment along its route
func (sc *ShipmentController) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid shipment id"))
	}

	var req types.ShipmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}

	sh, err := sc.Service.UpdateStatus(uint(id), &req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	sc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment status updated",
		Data:    sh,
	})
}

// History returns the shipment's movement trail
func (sc *ShipmentController) History(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid shipment id"))
	}

	updates, err := sc.Service.History(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment history retrieved successfully",
		Data:    updates,
	})
}

// DetectDelays flags shipments past their estimated arrival
func (sc *ShipmentController) DetectDelays(c *fiber.Ctx) error {
	flagged, err := sc.Service.DetectDelays(time.Now(), actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delay detection completed",
		Data:    flagged,
	})
}
