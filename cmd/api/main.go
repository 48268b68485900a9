package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-atelier-erp/internal/handler"
	"go-atelier-erp/internal/middleware"
	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/repository"
	"go-atelier-erp/internal/service"
	"go-atelier-erp/internal/ws"
	"go-atelier-erp/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Category{}, &model.Product{}, &model.RawMaterial{}, &model.BOMLine{},
		&model.StockLocation{}, &model.StockBalance{}, &model.StockMovement{},
		&model.Customer{}, &model.Order{}, &model.OrderLine{},
		&model.Sale{}, &model.SaleLine{},
		&model.FinanceEntry{}, &model.Shipment{}, &model.CompanySettings{},
	)

	// 3. Seed defaults
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	materialRepo := repository.NewMaterialRepo(db)
	bomRepo := repository.NewBOMRepo(db)
	stockRepo := repository.NewStockRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	financeRepo := repository.NewFinanceRepo(db)
	shipmentRepo := repository.NewShipmentRepo(db)
	companyRepo := repository.NewCompanyRepo(db)

	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, roleRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, materialRepo, bomRepo)
	stockService := service.NewStockService(db, stockRepo, productRepo, wsHub)
	orderService := service.NewOrderService(db, orderRepo, customerRepo, productRepo, stockRepo, saleRepo, wsHub)
	checkoutService := service.NewCheckoutService(db, productRepo, stockRepo, saleRepo, wsHub)
	financeService := service.NewFinanceService(financeRepo)
	reportService := service.NewReportService(saleRepo, orderRepo, financeRepo, productRepo, materialRepo)
	shipmentService := service.NewShipmentService(shipmentRepo)
	customerService := service.NewCustomerService(customerRepo)
	companyService := service.NewCompanyService(companyRepo)

	authHandler := handler.NewAuthHandler(authService)
	adminUserHandler := handler.NewAdminUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	stockHandler := handler.NewStockHandler(stockService)
	orderHandler := handler.NewOrderHandler(orderService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	financeHandler := handler.NewFinanceHandler(financeService)
	reportHandler := handler.NewReportHandler(reportService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	customerHandler := handler.NewCustomerHandler(customerService)
	companyHandler := handler.NewCompanyHandler(companyService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Atelier ERP v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Reports
	protected.Get("/reports/dashboard", middleware.RequirePrivilege("report:view"), reportHandler.Dashboard)
	protected.Get("/reports/profit-loss", middleware.RequirePrivilege("report:view"), reportHandler.ProfitLoss)
	protected.Get("/reports/purchase-suggestions", middleware.RequirePrivilege("report:view"), reportHandler.PurchaseSuggestions)

	// Catalog: products, categories, materials, BOM
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Get("/products/:id/bom", middleware.RequirePrivilege("bom:manage"), catalogHandler.GetBOM)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), catalogHandler.DeleteProduct)

	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", middleware.RequirePrivilege("product:create"), catalogHandler.CreateCategory)
	protected.Delete("/categories/:id", middleware.RequirePrivilege("product:delete"), catalogHandler.DeleteCategory)

	protected.Get("/materials", catalogHandler.GetMaterials)
	protected.Post("/materials", middleware.RequirePrivilege("material:manage"), catalogHandler.CreateMaterial)
	protected.Put("/materials/:id", middleware.RequirePrivilege("material:manage"), catalogHandler.UpdateMaterial)
	protected.Delete("/materials/:id", middleware.RequirePrivilege("material:manage"), catalogHandler.DeleteMaterial)

	protected.Post("/bom", middleware.RequirePrivilege("bom:manage"), catalogHandler.AddBOMLine)
	protected.Delete("/bom/:id", middleware.RequirePrivilege("bom:manage"), catalogHandler.RemoveBOMLine)

	// Stock
	protected.Get("/stock", middleware.RequirePrivilege("stock:view"), stockHandler.GetBalances)
	protected.Get("/stock/movements", middleware.RequirePrivilege("stock:view"), stockHandler.GetMovements)
	protected.Post("/stock/adjust", middleware.RequirePrivilege("stock:adjust"), stockHandler.AdjustStock)

	// Orders
	protected.Get("/orders", middleware.RequirePrivilege("order:view"), orderHandler.GetOrders)
	protected.Get("/orders/:id", middleware.RequirePrivilege("order:view"), orderHandler.GetOrder)
	protected.Post("/orders", middleware.RequirePrivilege("order:manage"), orderHandler.CreateOrder)
	protected.Put("/orders/:id", middleware.RequirePrivilege("order:manage"), orderHandler.UpdateOrder)
	protected.Patch("/orders/:id/status", middleware.RequireAnyPrivilege("order:manage", "order:invoice"), orderHandler.ChangeStatus)
	protected.Delete("/orders/:id", middleware.RequirePrivilege("order:manage"), orderHandler.DeleteOrder)

	// POS
	protected.Post("/pos/quote", middleware.RequirePrivilege("pos:checkout"), checkoutHandler.Quote)
	protected.Post("/pos/checkout", middleware.RequirePrivilege("pos:checkout"), checkoutHandler.Checkout)
	protected.Get("/pos/history", middleware.RequirePrivilege("pos:checkout"), checkoutHandler.History)

	// Finance ledger
	protected.Get("/finance", middleware.RequirePrivilege("finance:manage"), financeHandler.GetEntries)
	protected.Post("/finance", middleware.RequirePrivilege("finance:manage"), financeHandler.CreateEntry)
	protected.Put("/finance/:id", middleware.RequirePrivilege("finance:manage"), financeHandler.UpdateEntry)
	protected.Patch("/finance/:id/toggle", middleware.RequirePrivilege("finance:manage"), financeHandler.ToggleStatus)
	protected.Delete("/finance/:id", middleware.RequirePrivilege("finance:manage"), financeHandler.DeleteEntry)

	// Shipments
	protected.Get("/shipments", middleware.RequirePrivilege("shipment:manage"), shipmentHandler.GetShipments)
	protected.Post("/shipments", middleware.RequirePrivilege("shipment:manage"), shipmentHandler.CreateShipment)
	protected.Put("/shipments/:id", middleware.RequirePrivilege("shipment:manage"), shipmentHandler.UpdateShipment)
	protected.Patch("/shipments/:id/sent", middleware.RequirePrivilege("shipment:manage"), shipmentHandler.MarkSent)

	// Customers
	protected.Get("/customers", middleware.RequirePrivilege("customer:manage"), customerHandler.GetCustomers)
	protected.Get("/customers/:id", middleware.RequirePrivilege("customer:manage"), customerHandler.GetCustomerDetail)
	protected.Post("/customers", middleware.RequirePrivilege("customer:manage"), customerHandler.CreateCustomer)
	protected.Put("/customers/:id", middleware.RequirePrivilege("customer:manage"), customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequirePrivilege("customer:manage"), customerHandler.DeleteCustomer)

	// Company settings
	protected.Get("/company", companyHandler.GetSettings)
	protected.Put("/company", middleware.RequirePrivilege("company:update"), companyHandler.UpdateSettings)

	// Admin user management (separate surface consumed by the admin screen)
	admin := app.Group("/api/admin", middleware.RequireAuth(userRepo))
	admin.Get("/users", middleware.RequirePrivilege("user:view"), adminUserHandler.ListUsers)
	admin.Post("/users", middleware.RequirePrivilege("user:create"), adminUserHandler.CreateUser)
	admin.Put("/users", middleware.RequirePrivilege("user:update"), adminUserHandler.UpdateUser)
	admin.Delete("/users", middleware.RequirePrivilege("user:delete"), adminUserHandler.DeleteUser)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates privileges, roles, the admin user, the default stock
// location and the company settings row when they don't exist yet.
func seedDefaults(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)
	stockRepo := repository.NewStockRepo(db)
	companyRepo := repository.NewCompanyRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	allPrivileges, _ := privilegeRepo.FindAll()

	// MASTER_ADMIN gets ALL privileges
	masterRole, err := roleRepo.FindByCode(model.RoleMasterAdmin)
	if err == nil && len(masterRole.Privileges) == 0 {
		db.Model(&masterRole).Association("Privileges").Replace(allPrivileges)
		log.Println("MASTER_ADMIN role assigned all privileges")
	}

	// ADMIN runs the business but does not manage accounts
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		adminPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if p.Code != "user:create" && p.Code != "user:update" && p.Code != "user:delete" {
				adminPrivileges = append(adminPrivileges, p)
			}
		}
		db.Model(&adminRole).Association("Privileges").Replace(adminPrivileges)
		log.Println("ADMIN role assigned limited privileges")
	}

	// OPERADOR covers the shop floor: POS, stock and order viewing
	operatorRole, err := roleRepo.FindByCode(model.RoleOperator)
	if err == nil && len(operatorRole.Privileges) == 0 {
		operatorCodes := map[string]bool{
			"pos:checkout": true, "stock:view": true,
			"order:view": true, "shipment:manage": true,
		}
		operatorPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if operatorCodes[p.Code] {
				operatorPrivileges = append(operatorPrivileges, p)
			}
		}
		db.Model(&operatorRole).Association("Privileges").Replace(operatorPrivileges)
		log.Println("OPERADOR role assigned shop-floor privileges")
	}

	if err := stockRepo.SeedDefaultLocation(); err != nil {
		log.Printf("Warning: Failed to seed default stock location: %v", err)
	}
	if err := companyRepo.SeedDefault(); err != nil {
		log.Printf("Warning: Failed to seed company settings: %v", err)
	}

	// Default admin account
	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		masterRole, _ := roleRepo.FindByCode(model.RoleMasterAdmin)

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Master Administrator",
			RoleID:     &masterRole.ID,
			IsActive:   true,
			Privileges: masterRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (MASTER_ADMIN)")
		}
	}
}
