package chats

import (
	"github.com/gin-gonic/gin"

	"ChatKeep/controllers"
	"ChatKeep/middleware"
	svc "ChatKeep/pkg/services"
)

// Register registers the chat history routes (protected). Writes carry the
// token bucket rate limit; reads are unthrottled.
func Register(g *gin.RouterGroup, conv *svc.ConversationService) {
	g.POST("/chats", middleware.RateLimit(), controllers.CreateChat(conv))
	g.GET("/chats/:id", controllers.GetChat(conv))
	g.PUT("/chats/:id", middleware.RateLimit(), controllers.AppendToChat(conv))
	g.GET("/conversations", controllers.ListConversations(conv))
}
