package routes

import (
	"net/http"

	"github.com/proofdesk/portal/internal/app"
	"github.com/proofdesk/portal/internal/handler"
	"github.com/proofdesk/portal/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	dashboard := handler.NewDashboardHandler(app.ReconcilerService)
	artwork := handler.NewArtworkHandler(app.ArtworkService, app.ApprovalService, app.Cfg.UploadMaxSize)
	bin := handler.NewBinHandler(app.ArtworkService, app.ReconcilerService)
	thread := handler.NewThreadHandler(app.ThreadService, app.Cfg.UploadMaxSize)

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", health.Health)

	// Customer dashboard (reconciled view)
	mux.HandleFunc("GET /app/dashboard", middleware.RequireCustomer(dashboard.Dashboard))

	// Artwork lifecycle
	uploadLimiter := middleware.RateLimitUploads(app.Cfg.UploadRateLimit)
	mux.HandleFunc("GET /app/artwork", middleware.RequireCustomer(artwork.List))
	mux.HandleFunc("POST /app/artwork", uploadLimiter(middleware.RequireCustomer(artwork.Upload)))
	mux.HandleFunc("GET /app/artwork/{id}", middleware.RequireCustomer(artwork.Get))
	mux.HandleFunc("POST /app/artwork/{id}/approval", middleware.RequireCustomer(artwork.SubmitApproval))
	mux.HandleFunc("DELETE /app/artwork/{id}", middleware.RequireCustomer(artwork.Delete))

	// Thread
	mux.HandleFunc("GET /app/artwork/{id}/comments", middleware.RequireCustomer(thread.List))
	mux.HandleFunc("POST /app/artwork/{id}/comments", uploadLimiter(middleware.RequireCustomer(thread.Post)))

	// Bin
	mux.HandleFunc("GET /app/bin", middleware.RequireCustomer(bin.List))
	mux.HandleFunc("POST /app/bin/{id}/restore", middleware.RequireCustomer(bin.Restore))
	mux.HandleFunc("DELETE /app/bin/{id}", middleware.RequireCustomer(bin.PermanentlyDelete))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Auth(app.Cfg.JWTSecret),
	)
}
