package analytics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/errs"
	"vehicle-shipping/logger"
	analyticsService "vehicle-shipping/services/analytics"
	"vehicle-shipping/types"
	"vehicle-shipping/utils"
)

// AnalyticsController handles reporting HTTP requests
type AnalyticsController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *analyticsService.Service
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(db *gorm.DB, asyncLogger *logger.AsyncLogger, service *analyticsService.Service) *AnalyticsController {
	return &AnalyticsController{
		DB:      db,
		Logger:  asyncLogger,
		Service: service,
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := errs.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error("analytics request failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: err.Error(),
		Data:    nil,
	})
}

func period(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, end, err := utils.ParsePeriod(c)
	if err != nil {
		return start, end, errs.Validation("%s", err.Error())
	}
	return start, end, nil
}

// Funnel reports the quote-to-delivery conversion rates
func (ac *AnalyticsController) Funnel(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return fail(c, err)
	}

	funnel, err := ac.Service.ConversionFunnel(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Conversion funnel retrieved successfully",
		Data:    funnel,
	})
}

// Revenue reports the revenue summary with growth against the previous window
func (ac *AnalyticsController) Revenue(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return fail(c, err)
	}

	summary, err := ac.Service.Revenue(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Revenue summary retrieved successfully",
		Data:    summary,
	})
}

// RevenueByDay reports per-day revenue buckets
func (ac *AnalyticsController) RevenueByDay(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return fail(c, err)
	}

	days, err := ac.Service.RevenueByDay(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Daily revenue retrieved successfully",
		Data:    days,
	})
}

// Methods reports per-method payment performance
func (ac *AnalyticsController) Methods(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return fail(c, err)
	}

	stats, err := ac.Service.MethodPerformance(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment method performance retrieved successfully",
		Data:    stats,
	})
}

// Tiers reports the customer tier distribution
func (ac *AnalyticsController) Tiers(c *fiber.Ctx) error {
	dist, err := ac.Service.TierDistribution()
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tier distribution retrieved successfully",
		Data:    dist,
	})
}

// Retention reports the repeat customer rate
func (ac *AnalyticsController) Retention(c *fiber.Ctx) error {
	retention, err := ac.Service.CustomerRetention()
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Customer retention retrieved successfully",
		Data:    retention,
	})
}

// Deliveries reports on-time rate and transit times
func (ac *AnalyticsController) Deliveries(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return fail(c, err)
	}

	perf, err := ac.Service.Deliveries(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery performance retrieved successfully",
		Data:    perf,
	})
}

// Operations reports the live backlog counts
func (ac *AnalyticsController) Operations(c *fiber.Ctx) error {
	metrics, err := ac.Service.Operations(time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Operational metrics retrieved successfully",
		Data:    metrics,
	})
}

// Dashboard bundles the headline KPIs for the overview screen
func (ac *AnalyticsController) Dashboard(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return fail(c, err)
	}

	dashboard, err := ac.Service.DashboardKPIs(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard retrieved successfully",
		Data:    dashboard,
	})
}
