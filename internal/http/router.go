package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/andrelima-dev/meuestoque/docs"
	"github.com/andrelima-dev/meuestoque/internal/http/handlers"
)

// NewRouter builds the full route table. Everything below the auth group
// requires a valid bearer token; unauthenticated access gets a 401.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RateLimitMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Post("/refresh", handlers.RefreshTokenHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/products", handlers.CreateProductHandler)
		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/search", handlers.FilterProductsHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/{id}/adjust", handlers.AdjustQuantityHandler)
		r.Post("/products/{id}/merge", handlers.MergeProductHandler)
		r.Get("/products/{id}/movements", handlers.GetMovementsHandler)
		r.Get("/products/{id}/movements/export", handlers.ExportMovementsHandler)

		r.Post("/sales", handlers.CreateSaleHandler)
		r.Get("/sales", handlers.GetSalesHandler)
		r.Get("/sales/export", handlers.ExportSalesHandler)
		r.Delete("/sales/{id}", handlers.DeleteSaleHandler)

		r.Post("/tasks", handlers.CreateTaskHandler)
		r.Get("/tasks", handlers.GetTasksHandler)
		r.Get("/tasks/{id}", handlers.GetTaskByIDHandler)
		r.Put("/tasks/{id}", handlers.UpdateTaskHandler)
		r.Delete("/tasks/{id}", handlers.DeleteTaskHandler)

		r.Get("/dashboard/weekly", handlers.GetWeeklyRegistrationsHandler)
		r.Get("/dashboard/categories", handlers.GetCategoryDistributionHandler)
		r.Get("/dashboard/balance", handlers.GetSalesBalanceHandler)
		r.Get("/dashboard/stock-history", handlers.GetStockHistoryHandler)
		r.Get("/dashboard/metrics", handlers.GetDashboardMetricsHandler)

		r.Get("/settings/profile", handlers.GetProfileHandler)
		r.Put("/settings/profile", handlers.UpdateProfileHandler)
		r.Put("/settings/password", handlers.ChangePasswordHandler)
		r.Put("/settings/reset-reference", handlers.SetResetReferenceHandler)
		r.Delete("/settings/reset-reference", handlers.ClearResetReferenceHandler)
	})

	return r
}
