package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paggo-backend/internal/config"
	"paggo-backend/internal/documents"
	"paggo-backend/internal/shared/auth"
	"paggo-backend/internal/shared/server/middleware"
	"paggo-backend/internal/shared/server/respond"
	"paggo-backend/internal/users"
)

// RouterDeps carries the explicitly wired capabilities the router needs.
type RouterDeps struct {
	Config    config.Config
	Tokens    *auth.Tokens
	Users     *users.Handler
	Documents *documents.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Register/login stay public; everything else sits behind the auth guard.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	usersGroup := r.Group("/users")
	deps.Users.RegisterPublicRoutes(usersGroup)

	usersProtected := usersGroup.Group("")
	usersProtected.Use(middleware.Auth(deps.Tokens))
	deps.Users.RegisterProtectedRoutes(usersProtected)

	docsGroup := r.Group("/documents")
	docsGroup.Use(middleware.Auth(deps.Tokens))
	deps.Documents.RegisterRoutes(docsGroup)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
