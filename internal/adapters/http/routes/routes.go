package routes

import (
	"transit-backoffice/internal/adapters/cache"
	"transit-backoffice/internal/adapters/events"
	"transit-backoffice/internal/adapters/http/handlers"
	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/adapters/persistence/repositories"
	"transit-backoffice/internal/config"
	"transit-backoffice/internal/core/authz"
	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/metrics"
	"transit-backoffice/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Deps carries the shared infrastructure handed down from main
type Deps struct {
	DB        *gorm.DB
	Cache     *cache.Cache
	Publisher *events.Publisher
	Storage   services.ObjectStorage
	Codec     *token.Codec
}

// Setup configures all routes for the application and returns the
// notification service for the scheduler.
func Setup(app *fiber.App, cfg *config.Config, deps Deps) *services.NotificationService {
	// Repositories
	userRepo := repositories.NewUserRepository(deps.DB)
	roleRepo := repositories.NewRoleRepository(deps.DB)
	locationRepo := repositories.NewLocationRepository(deps.DB)
	notificationRepo := repositories.NewNotificationRepository(deps.DB)
	employeeRepo := repositories.NewEmployeeRepository(deps.DB)
	payrollRepo := repositories.NewPayrollRepository(deps.DB)
	budgetRepo := repositories.NewBudgetRepository(deps.DB)
	expenseRepo := repositories.NewExpenseRepository(deps.DB)
	fleetRepo := repositories.NewFleetRepository(deps.DB)
	fileRepo := repositories.NewFileRepository(deps.DB)

	// Services
	authService := services.NewAuthService(userRepo, deps.Codec)
	notificationService := services.NewNotificationService(notificationRepo, deps.Publisher)
	reportService := services.NewReportService(fleetRepo, deps.Cache)
	employeeService := services.NewEmployeeService(employeeRepo)
	payrollService := services.NewPayrollService(payrollRepo, employeeRepo)
	budgetService := services.NewBudgetService(budgetRepo, locationRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	fleetService := services.NewFleetService(fleetRepo, locationRepo)
	fileService := services.NewFileService(fileRepo, deps.Storage)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	masterHandler := handlers.NewMasterHandler(locationRepo, roleRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	payrollHandler := handlers.NewPayrollHandler(payrollService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	fleetHandler := handlers.NewFleetHandler(fleetService)
	fileHandler := handlers.NewFileHandler(fileService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", metrics.Handler())

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group: every request gets the session resolved once; each
	// route states its own access predicate.
	apiV1 := app.Group("/api/v1", middleware.Session(authService))

	// Auth
	auth := apiV1.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authHandler.Me)
	auth.Get("/permissions", middleware.Require(authz.Authenticated), authHandler.Permissions)

	// Master data: any authenticated user
	apiV1.Get("/locations", middleware.Require(authz.Authenticated), masterHandler.ListLocations)
	apiV1.Get("/roles", middleware.Require(authz.Authenticated), masterHandler.ListRoles)

	// Notifications: any authenticated user; broadcast is admin-only
	notifications := apiV1.Group("/notifications", middleware.Require(authz.Policies[authz.SectionNotifications]))
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Post("/broadcast", middleware.Require(authz.IsAdmin), notificationHandler.Broadcast)

	// Reports: Business Manager, Accountant or Admin-class
	apiV1.Get("/reports/routes-vehicles", middleware.Require(authz.Policies[authz.SectionReports]), reportHandler.RoutesVehicles)

	// Employees: Business Manager or Admin-class
	employees := apiV1.Group("/employees", middleware.Require(authz.Policies[authz.SectionEmployees]))
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Deactivate)

	// Payrolls: Accountant or Admin-class
	payrolls := apiV1.Group("/payrolls", middleware.Require(authz.Policies[authz.SectionPayrolls]))
	payrolls.Get("/", payrollHandler.List)
	payrolls.Post("/", payrollHandler.Create)
	payrolls.Patch("/:id/pay", payrollHandler.MarkPaid)

	// Budgets: Business Manager, Accountant or Admin-class
	budgets := apiV1.Group("/budgets", middleware.Require(authz.Policies[authz.SectionBudgets]))
	budgets.Get("/", budgetHandler.List)
	budgets.Post("/", budgetHandler.Create)
	budgets.Patch("/:id", budgetHandler.UpdateAmount)

	// Expenses: any authenticated user (the Cashier-accessible section)
	expenses := apiV1.Group("/expenses", middleware.Require(authz.Policies[authz.SectionExpenses]))
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)

	// Fleet: listings are visible to every report-eligible role (they
	// feed the routes-vehicles report); writes stay with fleet admins.
	fleetRead := middleware.Require(authz.Policies[authz.SectionReports])
	fleetWrite := middleware.Require(authz.Policies[authz.SectionFleet])
	apiV1.Get("/routes", fleetRead, fleetHandler.ListRoutes)
	apiV1.Post("/routes", fleetWrite, fleetHandler.CreateRoute)
	apiV1.Put("/routes/:id", fleetWrite, fleetHandler.UpdateRoute)
	apiV1.Get("/vehicles", fleetRead, fleetHandler.ListVehicles)
	apiV1.Post("/vehicles", fleetWrite, fleetHandler.CreateVehicle)
	apiV1.Put("/vehicles/:id", fleetWrite, fleetHandler.UpdateVehicle)

	// Files: Admin-class or Business Manager
	files := apiV1.Group("/files", middleware.Require(authz.Policies[authz.SectionFiles]))
	files.Post("/", fileHandler.Upload)
	files.Delete("/:id", fileHandler.Delete)

	return notificationService
}
