package route

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	"vehicle-shipping/logger"
	routeModel "vehicle-shipping/models/route"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// RouteController handles shipping route HTTP requests
type RouteController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewRouteController creates a new route controller
func NewRouteController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RouteController {
	return &RouteController{
		DB:     db,
		Logger: asyncLogger,
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("route request failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: err.Error(),
		Data:    nil,
	})
}

// Store opens a new shipping route
func (rc *RouteController) Store(c *fiber.Ctx) error {
	var req types.RouteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return fail(c, errs.Validation("%s", err.Error()))
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	rt := routeModel.Route{
		OriginCountry:      req.OriginCountry,
		OriginCity:         req.OriginCity,
		OriginPort:         &req.OriginPort,
		DestinationCountry: req.DestinationCountry,
		DestinationCity:    req.DestinationCity,
		DestinationPort:    &req.DestinationPort,
		BasePrice:          req.BasePrice,
		Currency:           currency,
		EstimatedDays:      req.EstimatedDays,
		IsActive:           true,
	}
	if err := rc.DB.Create(&rt).Error; err != nil {
		return fail(c, err)
	}

	rc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Route created successfully",
		Data:    rt,
	})
}

// Index lists routes with filters and pagination
func (rc *RouteController) Index(c *fiber.Ctx) error {
	page, perPage := utils.ParsePagination(c)

	filter := routeModel.Filter{
		OriginCountry:      c.Query("origin_country"),
		DestinationCountry: c.Query("destination_country"),
	}
	if c.Query("active") == "true" {
		filter.ActiveOnly = true
	}

	var routes []routeModel.Route
	var total int64
	query := filter.Apply(rc.DB.Model(&routeModel.Route{}))
	if err := query.Count(&total).Error; err != nil {
		return fail(c, err)
	}
	if err := query.Order("origin_country, origin_city").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&routes).Error; err != nil {
		return fail(c, err)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Routes retrieved successfully",
		Data: types.PaginatedData{
			Items: routes,
			Pagination: types.Pagination{
				Page:       page,
				PerPage:    perPage,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// Show returns a single route
func (rc *RouteController) Show(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid route id"))
	}

	var rt routeModel.Route
	if err := rc.DB.First(&rt, id).Error; err != nil {
		return fail(c, errs.NotFound("route %d not found", id))
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Route retrieved successfully",
		Data:    rt,
	})
}

// Update adjusts a route. Price changes only affect quotes issued afterwards.
func (rc *RouteController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid route id"))
	}

	var rt routeModel.Route
	if err := rc.DB.First(&rt, id).Error; err != nil {
		return fail(c, errs.NotFound("route %d not found", id))
	}

	var req types.RouteUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}

	if req.BasePrice != nil {
		if !req.BasePrice.IsPositive() {
			return fail(c, errs.Validation("base_price must be positive"))
		}
		rt.BasePrice = *req.BasePrice
	}
	if req.EstimatedDays != nil {
		if *req.EstimatedDays <= 0 {
			return fail(c, errs.Validation("estimated_days must be positive"))
		}
		rt.EstimatedDays = *req.EstimatedDays
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}

	if err := rc.DB.Save(&rt).Error; err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Route updated successfully",
		Data:    rt,
	})
}
