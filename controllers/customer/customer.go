package customer

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	"vehicle-shipping/logger"
	customerModel "vehicle-shipping/models/customer"
	customerService "vehicle-shipping/services/customer"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// CustomerController handles customer-related HTTP requests
type CustomerController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *customerService.Service
}

// NewCustomerController creates a new customer controller
func NewCustomerController(db *gorm.DB, asyncLogger *logger.AsyncLogger, service *customerService.Service) *CustomerController {
	return &CustomerController{
		DB:      db,
		Logger:  asyncLogger,
		Service: service,
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("customer request failed", err)
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

// Store registers a new customer
func (cc *CustomerController) Store(c *fiber.Ctx) error {
	var req types.CustomerCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	cust, err := cc.Service.Create(&req, actor(c))
	if err != nil {
		return fail(c, err)
	}

	cc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Customer created successfully",
		Data:    cust,
	})
}

// Index lists customers with filters and pagination
func (cc *CustomerController) Index(c *fiber.Ctx) error {
	page, perPage := utils.ParsePagination(c)

	filter := customerModel.Filter{
		Status: customerModel.CustomerStatus(c.Query("status")),
		Search: c.Query("search"),
	}

	customers, total, err := cc.Service.List(filter, page, perPage)
	if err != nil {
		return fail(c, err)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Customers retrieved successfully",
		Data: types.PaginatedData{
			Items: customers,
			Pagination: types.Pagination{
				Page:       page,
				PerPage:    perPage,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// Show returns a single customer
func (cc *CustomerController) Show(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid customer id"))
	}

	cust, err := cc.Service.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Customer retrieved successfully",
		Data:    cust,
	})
}

// Update applies partial changes to a customer
func (cc *CustomerController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid customer id"))
	}

	var req types.CustomerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errs.Validation("invalid request body"))
	}

	cust, err := cc.Service.Update(uint(id), &req, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Customer updated successfully",
		Data:    cust,
	})
}

// Stats returns the derived totals and tier for a customer
func (cc *CustomerController) Stats(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, errs.Validation("invalid customer id"))
	}

	stats, err := cc.Service.Stats(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Customer stats retrieved successfully",
		Data:    stats,
	})
}
