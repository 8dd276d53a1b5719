package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"ChatKeep/middleware"
	"ChatKeep/models"
	svc "ChatKeep/pkg/services"
	"ChatKeep/pkg/store"
)

func currentUserID(c *gin.Context) string {
	uidRaw, _ := c.Get(middleware.ContextUserIDKey)
	uid, _ := uidRaw.(string)
	return uid
}

// CreateChat handles POST /chats. Responds 201 with the new chat id.
func CreateChat(conv *svc.ConversationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := currentUserID(c)

		var body struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Text is required"})
			return
		}

		chatID, err := conv.CreateConversation(c.Request.Context(), uid, body.Text)
		if errors.Is(err, models.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Text is required"})
			return
		}
		if err != nil {
			log.WithError(err).WithField("userId", uid).Error("create chat failed")
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create chat"})
			return
		}
		c.JSON(http.StatusCreated, chatID)
	}
}

// ListConversations handles GET /conversations. A user with no chats gets [].
func ListConversations(conv *svc.ConversationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := currentUserID(c)

		entries, err := conv.ListConversations(c.Request.Context(), uid)
		if err != nil {
			log.WithError(err).WithField("userId", uid).Error("list conversations failed")
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to list conversations"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// GetChat handles GET /chats/:id. A chat that does not exist — or belongs to
// someone else — comes back as a 200 null body, never a 404.
func GetChat(conv *svc.ConversationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := currentUserID(c)

		chat, err := conv.GetConversation(c.Request.Context(), c.Param("id"), uid)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		if err != nil {
			log.WithError(err).WithField("userId", uid).Error("get chat failed")
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to fetch chat"})
			return
		}
		c.JSON(http.StatusOK, chat)
	}
}

// AppendToChat handles PUT /chats/:id. Appends the optional question turn and
// the answer turn as one batch and acknowledges the write. An unknown or
// unowned id acknowledges zero matches rather than revealing anything.
func AppendToChat(conv *svc.ConversationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := currentUserID(c)

		var body struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
			Img      string `json:"img"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "answer is required"})
			return
		}

		appended, err := conv.AppendExchange(c.Request.Context(), c.Param("id"), uid, body.Question, body.Answer, body.Img)
		if errors.Is(err, models.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "answer is required"})
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"matched": 0, "appended": 0})
			return
		}
		if err != nil {
			log.WithError(err).WithField("userId", uid).Error("append exchange failed")
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to add conversation"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"matched": 1, "appended": appended})
	}
}
