package events

import (
	"github.com/gin-gonic/gin"

	"ChatKeep/controllers"
	"ChatKeep/pkg/ws"
)

// Register registers the websocket event feed. Authentication happens inside
// the handler (query token) since websocket dials cannot set headers.
func Register(r *gin.Engine, hub *ws.Hub) {
	r.GET("/events", controllers.Events(hub))
}
