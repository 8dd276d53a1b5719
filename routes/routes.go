package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ChatKeep/middleware"
	svc "ChatKeep/pkg/services"
	"ChatKeep/pkg/store"
	"ChatKeep/pkg/ws"

	authRoutes "ChatKeep/routes/auth"
	chatRoutes "ChatKeep/routes/chats"
	eventRoutes "ChatKeep/routes/events"
	uploadRoutes "ChatKeep/routes/uploads"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	hub := ws.NewHub()
	conv := svc.NewConversationService(store.NewTranscriptStore(db), store.NewUserIndexStore(db), hub)
	uploads := svc.NewUploadService()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "chat history backend running"})
	})

	authRoutes.RegisterPublic(r, db)
	eventRoutes.Register(r, hub)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	authRoutes.RegisterProtected(protected)
	chatRoutes.Register(protected, conv)
	uploadRoutes.Register(protected, uploads)
}
