package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	api "github.com/glekoz/uvsearch/api/v1"
)

// NewServer создаёт http.Handler с маршрутами из OpenAPI спецификации.
// Маршруты: GET /search, GET /get-uv-data, GET /healthz
func NewServer(handler *Handler) http.Handler {
	router := gin.New()

	router.Use(
		recovery(handler.logger),
		requestID(),
		requestLogger(handler.logger),
		secure.New(secure.Config{
			FrameDeny:          true,
			ContentTypeNosniff: true,
			BrowserXssFilter:   true,
			ReferrerPolicy:     "strict-origin-when-cross-origin",
		}),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization", RequestIDHeader},
			ExposeHeaders:   []string{RequestIDHeader},
			MaxAge:          12 * time.Hour,
		}),
		jsonBody(),
	)

	api.RegisterHandlersWithOptions(router, handler, api.GinServerOptions{
		ErrorHandler: handler.bindError,
	})

	return router
}
