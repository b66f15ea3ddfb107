// Package httpapi exposes the entity services over HTTP with gin.
package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/thomasdelmas/Ecommerce-sub000/bulk"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
)

// EntityService is what the router needs from one entity kind.
type EntityService[I any, E any] interface {
	Kind() string
	CreateBatch(ctx context.Context, inputs []I) (bulk.CreationResult[I, E], error)
	DeleteBatch(ctx context.Context, ids []string) (bulk.DeletionResult, error)
	DeleteOne(ctx context.Context, id string) (string, bool, error)
	ReadFiltered(ctx context.Context, spec entity.FilterSpec, page, pageSize int) ([]E, error)
}

// Deps carries the services and settings the router is built from.
type Deps struct {
	Products EntityService[entity.ProductInput, *entity.Product]
	Users    EntityService[entity.UserInput, *entity.User]
	Logger   *log.Logger
	// CORSOrigins enables CORS for the listed origins when not empty.
	CORSOrigins []string
}

// NewRouter builds the gin engine serving /api/products and /api/users.
func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = deps.CORSOrigins
		cfg.AddAllowHeaders("X-Request-ID")
		cfg.AddExposeHeaders("X-Request-ID")
		r.Use(cors.New(cfg))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Warn("failed to set trusted proxies", "err", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.Products != nil {
		mount(api.Group("/products"), deps.Products, http.StatusBadRequest)
	}
	if deps.Users != nil {
		mount(api.Group("/users"), deps.Users, http.StatusConflict)
	}

	return r
}

// mount registers the batch routes of one kind. rejectedStatus is returned
// when every input of a creation batch was rejected.
func mount[I any, E any](g *gin.RouterGroup, svc EntityService[I, E], rejectedStatus int) {
	h := &handler[I, E]{svc: svc, rejectedStatus: rejectedStatus}

	g.POST("/batch", h.createBatch)
	g.DELETE("", h.deleteBatch)
	g.DELETE("/:id", h.deleteOne)
	g.POST("/search", h.search)
}
