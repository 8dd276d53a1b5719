package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	svc "ChatKeep/pkg/services"
)

// UploadCredentials handles GET /upload-credentials: fresh signed parameters
// the client hands to the upload provider. Images never pass through this
// server; only the opaque reference comes back later in PUT /chats/:id.
func UploadCredentials(uploads *svc.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, uploads.AuthenticationParameters())
	}
}
