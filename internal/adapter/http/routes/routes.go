package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "trades_marketplace/docs"
	"trades_marketplace/internal/adapter/http/handlers"
	"trades_marketplace/internal/adapter/http/middleware"
	"trades_marketplace/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	PathJobRequests = "/job-requests"
	PathQuotes      = "/quotes"
	PathAuth        = "/auth"

	shutdownTimeout = 10 * time.Second
)

// Dependencies is everything the router needs from the composition root.
type Dependencies struct {
	JobRequests   *handlers.JobRequestHandler
	Quotes        *handlers.QuoteHandler
	Auth          *handlers.AuthHandler
	Authenticator middleware.Authenticator
	Metrics       middleware.HTTPObserver
	Gatherer      prometheus.Gatherer
	Logger        *zap.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, deps)
	registerValidations()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v1.Use(middleware.SessionAuth(deps.Authenticator))
	addPingRoutes(v1)
	addJobRequestRoutes(v1, deps.JobRequests)
	addQuoteRoutes(v1, deps.Quotes)
	addAuthRoutes(v1, deps.Auth)

	return router
}

// Run serves router on addr until ctx is cancelled, then drains in-flight
// requests.
func Run(ctx context.Context, addr string, router http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func setMiddlewares(router *gin.Engine, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		usecase.RegisterValidations(v)
	}
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", handlers.Ping)
}

func addJobRequestRoutes(rg *gin.RouterGroup, h *handlers.JobRequestHandler) {
	jobs := rg.Group(PathJobRequests)
	{
		jobs.POST("", h.Create)
		jobs.GET("", h.List)
		jobs.GET("/:id", h.Get)
		jobs.PUT("/:id", h.Update)
		jobs.POST("/:id/cancel", h.Cancel)
		jobs.POST("/:id/complete", h.Complete)
		jobs.POST("/:id/reconcile", h.Reconcile)
	}
}

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", h.Create)
		quotes.GET("", h.List)
		quotes.GET("/:id", h.Get)
		quotes.PUT("/:id", h.Update)
		quotes.POST("/:id/accept", h.Accept)
		quotes.POST("/:id/decline", h.Decline)
		quotes.POST("/:id/withdraw", h.Withdraw)
	}
}

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.POST("/login-code", h.RequestLoginCode)
		auth.POST("/login-code/verify", h.VerifyLoginCode)
		auth.POST("/switch-role", h.SwitchRole)
		auth.POST("/link-draft-jobs", h.LinkDraftJobs)
	}
}
