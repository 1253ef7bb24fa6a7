package chat

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"warungchat/internal/catalog"
	"warungchat/internal/menu"
	"warungchat/internal/nlu"
	"warungchat/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /chat
// --------------------------------------------------
func (h *Handler) Chat(c *gin.Context) {
	var req session.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     ErrEmptyMessage.Error(),
			"sessionId": session.NewID(session.ServerPrefix),
		})
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), req)
	if errors.Is(err, ErrEmptyMessage) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"sessionId": reply.SessionID,
		})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("session_id", reply.SessionID).Msg("error communicating with rasa")

		msg := FallbackMessage(err)
		c.JSON(http.StatusInternalServerError, session.ChatReply{
			Error:            msg,
			SessionID:        reply.SessionID,
			Responses:        []nlu.Response{{Text: msg, Buttons: []nlu.Button{}}},
			RecommendedMenus: []menu.Record{},
		})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// --------------------------------------------------
// GET /conversation/:sessionId
// --------------------------------------------------
func (h *Handler) GetConversation(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.History(c.Param("sessionId")))
}

// --------------------------------------------------
// DELETE /conversation/:sessionId
// --------------------------------------------------
func (h *Handler) DeleteConversation(c *gin.Context) {
	sessionID := c.Param("sessionId")
	h.service.ClearHistory(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Conversation history cleared",
		"sessionId": sessionID,
	})
}

// --------------------------------------------------
// GET /conversation/:sessionId/menus
// --------------------------------------------------

// Menus renders the latest recommended menus as HTML cards.
func (h *Handler) Menus(c *gin.Context) {
	var buf bytes.Buffer
	if err := catalog.RenderHTML(&buf, h.service.LatestMenus(c.Param("sessionId"))); err != nil {
		log.Error().Err(err).Msg("failed to render menus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render menus"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// --------------------------------------------------
// GET /conversation/:sessionId/menus/:index
// --------------------------------------------------
func (h *Handler) MenuDetail(c *gin.Context) {
	menus := h.service.LatestMenus(c.Param("sessionId"))

	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 || i >= len(menus) {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}

	var buf bytes.Buffer
	if err := catalog.RenderDetailHTML(&buf, menus[i]); err != nil {
		log.Error().Err(err).Msg("failed to render menu detail")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render menu"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// --------------------------------------------------
// GET /status
// --------------------------------------------------
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Status(c.Request.Context()))
}
