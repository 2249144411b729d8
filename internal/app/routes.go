package app

import (
	"net/http"

	"taskflow/internal/auth"
	"taskflow/internal/cache"
	"taskflow/internal/classifier"
	"taskflow/internal/config"
	"taskflow/internal/handlers"
	"taskflow/internal/repo"
	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, log *logrus.Logger, db *pgxpool.Pool, rdb *redis.Client) {
	cl := NewClassifier(cfg.AI, log)
	registerMetaRoutes(r, cfg, cl)

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())
	userSvc := service.NewUserService(repo.NewPGUserRepo(db))
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc, cfg.Session.Secure)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireSession(sessionStore))
	protected.GET("/auth/me", authHandler.Me)

	todoSvc := service.NewTodoService(
		repo.NewPGTodoRepo(db),
		cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration()),
		cl,
		log,
		service.WithBatchConcurrency(cfg.AI.BatchConcurrency),
	)
	registerTodoRoutes(protected, handlers.NewTodoHandler(todoSvc))
	registerAIRoutes(protected, handlers.NewAIHandler(cl, cl))
}

func registerMetaRoutes(r *gin.Engine, cfg config.Config, cl classifier.Service) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg, cl))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "TaskFlow API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config, cl classifier.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"ok": true, "env": cfg.App.Env, "ai": cfg.AI.Active()}
		if b, ok := cl.(*classifier.Breaker); ok {
			body["ai_breaker"] = b.State()
		}
		c.JSON(http.StatusOK, body)
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTodoRoutes(api *gin.RouterGroup, h *handlers.TodoHandler) {
	api.POST("/todos", h.Create)
	api.GET("/todos", h.List)
	api.GET("/todos/search", h.Search)
	api.GET("/todos/overdue", h.Overdue)
	api.GET("/todos/stats", h.Stats)
	api.POST("/todos/auto-categorize", h.AutoCategorize)
	api.GET("/todos/:id", h.GetByID)
	api.PATCH("/todos/:id", h.Update)
	api.PUT("/todos/:id", h.Update)
	api.DELETE("/todos/:id", h.Delete)
	api.POST("/todos/:id/complete", h.Complete)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}

func registerAIRoutes(api *gin.RouterGroup, h *handlers.AIHandler) {
	api.POST("/ai/categorize", h.Categorize)
	api.POST("/ai/matrix-categorize", h.MatrixCategorize)
}
