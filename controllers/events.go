package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"ChatKeep/middleware"
	"ChatKeep/pkg/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS layer for the REST surface
	},
}

// Events handles GET /events?token=JWT. The socket carries server→client
// notifications only: the owner's other tabs learn a chat was created or
// appended to and re-fetch over REST.
func Events(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Browsers cannot set headers on websocket dials, so the token
		// rides in the query string.
		tokenStr := strings.TrimSpace(c.Query("token"))
		userID, _, _, ok := middleware.VerifyToken(tokenStr)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Unauthenticated"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.WithError(err).Warn("ws upgrade failed")
			return
		}

		client := hub.Add(userID, conn)
		defer hub.Remove(client)

		// Inbound frames are ignored; reading only to detect close.
		conn.SetReadLimit(1 << 10)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
