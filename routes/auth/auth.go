package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ChatKeep/controllers"
)

// RegisterPublic registers the unauthenticated account endpoints.
func RegisterPublic(r *gin.Engine, db *gorm.DB) {
	r.POST("/auth/register", controllers.Register(db))
	r.POST("/auth/login", controllers.Login(db))
}

// RegisterProtected registers endpoints that require a valid token.
func RegisterProtected(g *gin.RouterGroup) {
	g.POST("/auth/logout", controllers.Logout())
}
