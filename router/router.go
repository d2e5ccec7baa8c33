package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/cache"
	"github.com/yeremiapane/restaurant-manager/config"
	"github.com/yeremiapane/restaurant-manager/controllers"
	"github.com/yeremiapane/restaurant-manager/middlewares"
	"github.com/yeremiapane/restaurant-manager/queue"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
)

// Dependencies -> komponen opsional, nilai nol tetap menghasilkan router yang jalan
type Dependencies struct {
	Config    *config.Config
	Cache     *cache.Store
	Publisher queue.Publisher
	Limiter   *middlewares.RateLimiter
}

func SetupRouter(db *gorm.DB, deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Publisher == nil {
		deps.Publisher = queue.NoopPublisher{}
	}
	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders(cfg.IsProduction()))
	r.Use(middlewares.CORSMiddlewares(cfg.HTTP.AllowedOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if deps.Limiter != nil {
		r.Use(deps.Limiter.RateLimit())
	}

	// Inisialisasi controller
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuController(db, deps.Cache)
	employeeCtrl := controllers.NewEmployeeController(db)
	orderCtrl := controllers.NewOrderController(db, deps.Publisher)
	reservationCtrl := controllers.NewReservationController(db, deps.Publisher)
	feedbackCtrl := controllers.NewFeedbackController(db)
	authCtrl := controllers.NewAuthController(cfg.Auth)

	admin := middlewares.AdminAuth(cfg.Auth)
	adminForWrites := middlewares.AdminForWrites(cfg.Auth)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/", controllers.Index)
	r.GET("/ping", controllers.Ping)

	// Rate limiter khusus login
	auth := r.Group("/auth")
	{
		auth.POST("/login", middlewares.NewStrictRateLimiter(12*time.Second, 5), authCtrl.Login)
		auth.POST("/logout", admin, authCtrl.Logout)
	}

	// WebSocket layar staf
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware(cfg.Auth.JWTSecret), middlewares.RequireRole(utils.RoleAdmin))
	{
		ws.GET("", controllers.KDSHandler)
	}

	// ----------------------------------------------------------------
	//          GET publik, tulis (POST/PUT/DELETE) khusus admin
	// ----------------------------------------------------------------
	tables := r.Group("/tables", adminForWrites)
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.GET("/available", tableCtrl.GetAvailableTables)
		tables.GET("/:id", tableCtrl.GetTableByID)
		tables.GET("/:id/availability", tableCtrl.CheckAvailability)
		tables.POST("", tableCtrl.CreateTable)
		tables.PUT("/:id", tableCtrl.UpdateTable)
		tables.DELETE("/:id", tableCtrl.DeleteTable)
	}

	// Menu jarang berubah, GET dilayani dari cache Redis bila tersedia
	menu := r.Group("/menu", adminForWrites, deps.Cache.Middleware())
	{
		menu.GET("", menuCtrl.GetAllMenus)
		menu.GET("/available", menuCtrl.GetAvailableMenus)
		menu.GET("/category/:category", menuCtrl.GetMenuByCategory)
		menu.GET("/:id", menuCtrl.GetMenuByID)
		menu.POST("", menuCtrl.CreateMenu)
		menu.PUT("/:id", menuCtrl.UpdateMenu)
		menu.DELETE("/:id", menuCtrl.DeleteMenu)
	}

	employees := r.Group("/employees", adminForWrites)
	{
		employees.GET("", employeeCtrl.GetAllEmployees)
		employees.GET("/:id", employeeCtrl.GetEmployeeByID)
		employees.POST("", employeeCtrl.CreateEmployee)
		employees.PUT("/:id", employeeCtrl.UpdateEmployee)
		employees.DELETE("/:id", employeeCtrl.DeleteEmployee)
	}

	orders := r.Group("/orders", adminForWrites)
	{
		orders.GET("", orderCtrl.GetAllOrders)
		orders.GET("/active", orderCtrl.GetActiveOrders)
		orders.GET("/date/:date", orderCtrl.GetOrdersByDate)
		orders.GET("/:id", orderCtrl.GetOrderByID)
		orders.POST("", orderCtrl.CreateOrder)
		orders.PUT("/:id", orderCtrl.UpdateOrder)
		orders.PUT("/:id/status", orderCtrl.UpdateOrderStatus)
		orders.DELETE("/:id", orderCtrl.DeleteOrder)
		orders.POST("/:id/items", orderCtrl.AddOrderItems)
		orders.PUT("/:id/items/:item_id", orderCtrl.UpdateOrderItem)
		orders.DELETE("/:id/items/:item_id", orderCtrl.DeleteOrderItem)
	}

	// Tamu boleh booking tanpa login
	reservations := r.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.GetAllReservations)
		reservations.GET("/upcoming", reservationCtrl.GetUpcomingReservations)
		reservations.GET("/date/:date", reservationCtrl.GetReservationsByDate)
		reservations.GET("/:id", reservationCtrl.GetReservationByID)
		reservations.POST("", reservationCtrl.CreateReservation)
		reservations.PUT("/:id", admin, reservationCtrl.UpdateReservation)
		reservations.DELETE("/:id", admin, reservationCtrl.DeleteReservation)
	}

	feedback := r.Group("/feedback")
	{
		feedback.GET("", feedbackCtrl.GetAllFeedback)
		feedback.GET("/published", feedbackCtrl.GetPublishedFeedback)
		feedback.GET("/stats", feedbackCtrl.GetFeedbackStats)
		feedback.GET("/:id", feedbackCtrl.GetFeedbackByID)
		feedback.POST("", feedbackCtrl.CreateFeedback)
		feedback.PUT("/:id", admin, feedbackCtrl.UpdateFeedback)
		feedback.PUT("/:id/toggle", admin, feedbackCtrl.TogglePublish)
		feedback.DELETE("/:id", admin, feedbackCtrl.DeleteFeedback)
	}

	return r
}
