package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "portfoliocms/docs"
	"portfoliocms/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAdmin gates the REST mutation surface; the legacy boundary endpoint
// authenticates itself from the request body.
func NewRouter(
	content *controllers.ContentController,
	admin *controllers.AdminController,
	contact *controllers.ContactController,
	requireAdmin func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Public read path
	mux.HandleFunc("GET /portfolio", content.ListSections)
	mux.HandleFunc("GET /portfolio/{section}", content.ListSection)

	// Contact page
	mux.HandleFunc("POST /contact", contact.Submit)

	// Admin
	mux.HandleFunc("POST /admin/verify", admin.Verify)
	mux.HandleFunc("POST /admin/portfolio", admin.Boundary)
	mux.HandleFunc("GET /admin/entries", requireAdmin(admin.ListEntries))
	mux.HandleFunc("POST /admin/entries", requireAdmin(admin.CreateEntry))
	mux.HandleFunc("PUT /admin/entries/{id}", requireAdmin(admin.UpdateEntry))
	mux.HandleFunc("DELETE /admin/entries/{id}", requireAdmin(admin.DeleteEntry))
	mux.HandleFunc("POST /admin/images", requireAdmin(admin.UploadImage))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
