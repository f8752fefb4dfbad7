package route

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"resto/auth"
	"resto/controller"
	"resto/model"
	"resto/pos"
	"resto/utils"
)

// Deps is what the routes are built from.
type Deps struct {
	Restaurant         *pos.Restaurant
	Tokens             *utils.Tokens
	DefaultPermissions []string
	RolePermissions    map[string][]string
	Logger             *zap.Logger
}

func POSRoutes(router *gin.Engine, d Deps) {
	r := d.Restaurant
	pc := controller.NewPOSController(r, d.Logger)
	authHandler := auth.NewHandler(r, d.Tokens, d.RolePermissions)

	posGroup := router.Group("/pos")
	posGroup.Use(utils.SessionMiddleware(d.Tokens, d.DefaultPermissions))
	{
		employees := posGroup.Group("/employees")
		employees.GET("/roles", pc.EmployeeRoles)
		employees.PATCH("/:id/toggle-status", pc.ToggleEmployeeStatus)
		(&controller.EntityController[model.Employee]{Repo: r.Employees, Query: pos.EmployeeQuery, Form: r.EmployeeForm}).Register(employees)

		inventory := posGroup.Group("/inventory")
		inventory.GET("/alerts", pc.InventoryAlerts)
		inventory.GET("/categories", pc.InventoryCategories)
		inventory.PATCH("/:id/adjust", pc.AdjustStock)
		(&controller.EntityController[model.InventoryItem]{Repo: r.Inventory, Query: pos.InventoryQuery, Form: r.InventoryForm}).Register(inventory)

		suppliers := posGroup.Group("/suppliers")
		(&controller.EntityController[model.Supplier]{Repo: r.Suppliers, Query: pos.SupplierQuery, Form: r.SupplierForm}).Register(suppliers)

		deliveries := posGroup.Group("/deliveries")
		deliveries.PATCH("/:id/toggle", pc.ToggleDelivery)
		(&controller.EntityController[model.Delivery]{Repo: r.Deliveries, Query: pos.DeliveryQuery, Form: r.DeliveryForm}).Register(deliveries)

		tables := posGroup.Group("/tables")
		tables.POST("/:id/seats/:seat/orders", pc.AddSeatOrder)
		tables.DELETE("/:id/seats/:seat/orders/:line", pc.RemoveSeatOrder)
		tables.GET("/:id/seats/:seat/bill", pc.SeatBill)
		(&controller.EntityController[model.Table]{Repo: r.Tables, Query: pos.TableQuery, Form: r.TableForm}).Register(tables)

		payments := posGroup.Group("/payments")
		(&controller.EntityController[model.Payment]{Repo: r.Payments, Query: pos.PaymentQuery, Form: r.PaymentForm}).Register(payments)

		menu := posGroup.Group("/menu")
		menu.PATCH("/:id/clear-category", pc.ClearMenuCategory)
		(&controller.EntityController[model.MenuItem]{Repo: r.Menu, Query: pos.MenuQuery, Form: r.MenuForm}).Register(menu)

		posGroup.GET("/orders", pc.Orders)
		posGroup.GET("/catalog", pc.Catalog)

		posGroup.GET("/cart", pc.GetCart)
		posGroup.POST("/cart/items", pc.AddCartItem)
		posGroup.PATCH("/cart/items/:id", pc.ChangeCartQuantity)
		posGroup.DELETE("/cart/items/:id", pc.RemoveCartItem)
		posGroup.POST("/cart/checkout", pc.Checkout)

		posGroup.POST("/import/:entity", pc.Import)
	}
	router.POST("/pos/auth/session", authHandler.Session)
	router.POST("/pos/refresh-token", authHandler.RefreshToken)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
	})
}
