package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"vehicle-shipping/constants"
	analyticsController "vehicle-shipping/controllers/analytics"
	bookingController "vehicle-shipping/controllers/booking"
	customerController "vehicle-shipping/controllers/customer"
	documentController "vehicle-shipping/controllers/document"
	paymentController "vehicle-shipping/controllers/payment"
	quoteController "vehicle-shipping/controllers/quote"
	routeController "vehicle-shipping/controllers/route"
	shipmentController "vehicle-shipping/controllers/shipment"
	"vehicle-shipping/logger"
	"vehicle-shipping/middleware"
	analyticsService "vehicle-shipping/services/analytics"
	bookingService "vehicle-shipping/services/booking"
	customerService "vehicle-shipping/services/customer"
	documentService "vehicle-shipping/services/document"
	notificationService "vehicle-shipping/services/notification"
	paymentService "vehicle-shipping/services/payment"
	quoteService "vehicle-shipping/services/quote"
	shipmentService "vehicle-shipping/services/shipment"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)

	notifier := notificationService.NewService()
	shipments := shipmentService.NewService(db, notifier)
	bookings := bookingService.NewService(db, notifier, shipments)
	shipments.SetBookingCascader(bookings)
	quotes := quoteService.NewService(db, notifier, os.Getenv("PORTAL_URL"))
	customers := customerService.NewService(db)
	documents := documentService.NewService(db, notifier)
	payments := paymentService.NewService(db, notifier)
	analytics := analyticsService.NewService(db)

	quoteCtrl := quoteController.NewQuoteController(db, asyncLogger, quotes)
	bookingCtrl := bookingController.NewBookingController(db, asyncLogger, bookings)
	customerCtrl := customerController.NewCustomerController(db, asyncLogger, customers)
	routeCtrl := routeController.NewRouteController(db, asyncLogger)
	documentCtrl := documentController.NewDocumentController(db, asyncLogger, documents)
	paymentCtrl := paymentController.NewPaymentController(db, asyncLogger, payments)
	shipmentCtrl := shipmentController.NewShipmentController(db, asyncLogger, shipments)
	analyticsCtrl := analyticsController.NewAnalyticsController(db, asyncLogger, analytics)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "vehicle-shipping", "status": "ok"})
	})

	api := app.Group("/api")

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api.Get("/track/:tracking_number", shipmentCtrl.Track)

	/*=============================================================================
	| Customer Routes
	===============================================================================*/
	customerGroup := api.Group("/customers")
	customerGroup.Post("/", middleware.RequirePermissions(constants.StaffPermissions...), customerCtrl.Store)
	customerGroup.Get("/", middleware.RequirePermissions(constants.StaffPermissions...), customerCtrl.Index)
	customerGroup.Get("/:id", middleware.RequirePermissions(constants.StaffPermissions...), customerCtrl.Show)
	customerGroup.Put("/:id", middleware.RequirePermissions(constants.StaffPermissions...), customerCtrl.Update)
	customerGroup.Get("/:id/stats", middleware.RequirePermissions(constants.StaffPermissions...), customerCtrl.Stats)

	/*=============================================================================
	| Route Routes
	===============================================================================*/
	routeGroup := api.Group("/routes")
	routeGroup.Post("/", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermManagerFull,
	), routeCtrl.Store)
	routeGroup.Get("/", middleware.RequireAuthentication(), routeCtrl.Index)
	routeGroup.Get("/:id", middleware.RequireAuthentication(), routeCtrl.Show)
	routeGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermManagerFull,
	), routeCtrl.Update)

	/*=============================================================================
	| Quote Routes
	===============================================================================*/
	quoteGroup := api.Group("/quotes")
	quoteGroup.Post("/", middleware.RequirePermissions(constants.QuoteDecisionPermissions...), quoteCtrl.Store)
	quoteGroup.Get("/", middleware.RequirePermissions(constants.StaffPermissions...), quoteCtrl.Index)
	quoteGroup.Get("/expiring", middleware.RequirePermissions(constants.StaffPermissions...), quoteCtrl.ExpiringSoon)
	quoteGroup.Get("/:id", middleware.RequirePermissions(constants.StaffPermissions...), quoteCtrl.Show)
	quoteGroup.Post("/:id/approve", middleware.RequirePermissions(constants.QuoteDecisionPermissions...), quoteCtrl.Approve)
	quoteGroup.Post("/:id/reject", middleware.RequirePermissions(constants.QuoteDecisionPermissions...), quoteCtrl.Reject)
	quoteGroup.Post("/:id/extend", middleware.RequirePermissions(constants.QuoteDecisionPermissions...), quoteCtrl.Extend)
	quoteGroup.Post("/:id/convert", middleware.RequirePermissions(constants.QuoteDecisionPermissions...), quoteCtrl.Convert)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings")
	bookingGroup.Post("/", middleware.RequirePermissions(constants.QuoteDecisionPermissions...), bookingCtrl.Store)
	bookingGroup.Get("/", middleware.RequirePermissions(constants.StaffPermissions...), bookingCtrl.Index)
	bookingGroup.Get("/attention", middleware.RequirePermissions(constants.StaffPermissions...), bookingCtrl.RequiresAttention)
	bookingGroup.Get("/:id", middleware.RequirePermissions(constants.StaffPermissions...), bookingCtrl.Show)
	bookingGroup.Post("/:id/status", middleware.RequirePermissions(constants.ShipmentPermissions...), bookingCtrl.UpdateStatus)
	bookingGroup.Post("/:id/cancel", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermManagerFull,
	), bookingCtrl.Cancel)
	bookingGroup.Get("/:id/history", middleware.RequirePermissions(constants.StaffPermissions...), bookingCtrl.History)

	/*=============================================================================
	| Document Routes
	===============================================================================*/
	documentGroup := api.Group("/documents")
	documentGroup.Post("/", middleware.RequireAuthentication(), documentCtrl.Store)
	documentGroup.Get("/", middleware.RequirePermissions(constants.DocumentReviewPermissions...), documentCtrl.Index)
	documentGroup.Get("/expiring", middleware.RequirePermissions(constants.DocumentReviewPermissions...), documentCtrl.ExpiringSoon)
	documentGroup.Get("/missing/:booking_id", middleware.RequirePermissions(constants.StaffPermissions...), documentCtrl.Missing)
	documentGroup.Get("/:id", middleware.RequirePermissions(constants.DocumentReviewPermissions...), documentCtrl.Show)
	documentGroup.Post("/:id/approve", middleware.RequirePermissions(constants.DocumentReviewPermissions...), documentCtrl.Approve)
	documentGroup.Post("/:id/reject", middleware.RequirePermissions(constants.DocumentReviewPermissions...), documentCtrl.Reject)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	paymentGroup := api.Group("/payments")
	paymentGroup.Post("/", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Store)
	paymentGroup.Get("/", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Index)
	paymentGroup.Get("/overdue", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Overdue)
	paymentGroup.Get("/:id", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Show)
	paymentGroup.Post("/:id/complete", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Complete)
	paymentGroup.Post("/:id/fail", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Fail)
	paymentGroup.Post("/:id/retry", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Retry)
	paymentGroup.Post("/:id/cancel", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Cancel)
	paymentGroup.Post("/:id/refund", middleware.RequirePermissions(constants.PaymentPermissions...), paymentCtrl.Refund)

	/*=============================================================================
	| Shipment Routes
	===============================================================================*/
	shipmentGroup := api.Group("/shipments")
	shipmentGroup.Get("/", middleware.RequirePermissions(constants.StaffPermissions...), shipmentCtrl.Index)
	shipmentGroup.Post("/detect-delays", middleware.RequirePermissions(constants.ShipmentPermissions...), shipmentCtrl.DetectDelays)
	shipmentGroup.Get("/:id", middleware.RequirePermissions(constants.StaffPermissions...), shipmentCtrl.Show)
	shipmentGroup.Post("/:id/status", middleware.RequirePermissions(constants.ShipmentPermissions...), shipmentCtrl.UpdateStatus)
	shipmentGroup.Get("/:id/history", middleware.RequirePermissions(constants.StaffPermissions...), shipmentCtrl.History)

	/*=============================================================================
	| Analytics Routes
	===============================================================================*/
	analyticsGroup := api.Group("/analytics").Use(middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermManagerFull, constants.PermFinanceFull,
	))
	analyticsGroup.Get("/dashboard", analyticsCtrl.Dashboard)
	analyticsGroup.Get("/funnel", analyticsCtrl.Funnel)
	analyticsGroup.Get("/revenue", analyticsCtrl.Revenue)
	analyticsGroup.Get("/revenue/daily", analyticsCtrl.RevenueByDay)
	analyticsGroup.Get("/payment-methods", analyticsCtrl.Methods)
	analyticsGroup.Get("/tiers", analyticsCtrl.Tiers)
	analyticsGroup.Get("/retention", analyticsCtrl.Retention)
	analyticsGroup.Get("/deliveries", analyticsCtrl.Deliveries)
	analyticsGroup.Get("/operations", analyticsCtrl.Operations)
}
