package uploads

import (
	"github.com/gin-gonic/gin"

	"ChatKeep/controllers"
	svc "ChatKeep/pkg/services"
)

// Register registers the upload credential endpoint (protected).
func Register(g *gin.RouterGroup, uploads *svc.UploadService) {
	g.GET("/upload-credentials", controllers.UploadCredentials(uploads))
}
