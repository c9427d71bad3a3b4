package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockwatchhq/stockwatch-backend/api/controllers"
	"github.com/stockwatchhq/stockwatch-backend/api/middleware"
	"github.com/stockwatchhq/stockwatch-backend/internal/alerts"
	"github.com/stockwatchhq/stockwatch-backend/internal/bundles"
	"github.com/stockwatchhq/stockwatch-backend/internal/companies"
	"github.com/stockwatchhq/stockwatch-backend/internal/inventory"
	"github.com/stockwatchhq/stockwatch-backend/internal/products"
	"github.com/stockwatchhq/stockwatch-backend/internal/suppliers"
	"github.com/stockwatchhq/stockwatch-backend/internal/warehouses"
	"github.com/stockwatchhq/stockwatch-backend/pkg/config"
	"github.com/stockwatchhq/stockwatch-backend/pkg/db"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
	"github.com/stockwatchhq/stockwatch-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	companyService companies.Service,
	warehouseService warehouses.Service,
	supplierService suppliers.Service,
	productService products.Service,
	inventoryService inventory.Service,
	bundleService bundles.Service,
	alertService alerts.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/companies", func(r chi.Router) {
			r.Post("/", controllers.CreateCompany(companyService, logg))
			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/", controllers.GetCompany(companyService, logg))
				r.Post("/warehouses", controllers.CreateWarehouse(warehouseService, logg))
				r.Get("/warehouses", controllers.ListWarehouses(warehouseService, logg))
				r.Get("/alerts/low-stock", controllers.GetLowStockAlerts(alertService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Route("/{productID}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(productService, logg))
				r.Post("/components", controllers.AddBundleComponent(bundleService, logg))
				r.Get("/components", controllers.ListBundleComponents(bundleService, logg))
				r.Route("/warehouses/{warehouseID}", func(r chi.Router) {
					r.Post("/adjustments", controllers.AdjustInventory(inventoryService, logg))
					r.Get("/history", controllers.ListInventoryHistory(inventoryService, logg))
				})
			})
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", controllers.CreateSupplier(supplierService, logg))
			r.Post("/{supplierID}/products/{productID}", controllers.LinkSupplierProduct(supplierService, logg))
		})
	})

	return r
}
