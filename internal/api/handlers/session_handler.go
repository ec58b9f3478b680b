package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hirehub/voice-agents/internal/models"
	"github.com/hirehub/voice-agents/internal/services"
	"github.com/hirehub/voice-agents/internal/utils"
)

type SessionHandler struct {
	svc services.SessionService
}

func NewSessionHandler(svc services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type CreateSessionRequest struct {
	Type   string            `json:"type" binding:"required"` // interview|posting
	Room   string            `json:"room" binding:"required"`
	Job    models.JobContext `json:"job"`
	Resume models.Resume     `json:"resume"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	const op = "SessionHandler.Create"

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	var (
		info services.SessionInfo
		err  error
	)
	switch req.Type {
	case services.SessionTypeInterview:
		info, err = h.svc.StartInterview(c.Request.Context(), services.StartInterviewRequest{
			Room:   req.Room,
			Job:    req.Job,
			Resume: req.Resume,
		})
	case services.SessionTypePosting:
		info, err = h.svc.StartPosting(c.Request.Context(), req.Room)
	default:
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "type must be interview or posting", nil))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

func (h *SessionHandler) Progress(c *gin.Context) {
	progress, err := h.svc.Progress(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *SessionHandler) Transcript(c *gin.Context) {
	transcript, err := h.svc.Transcript(c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if transcript == nil {
		transcript = []models.TranscriptEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"transcript": transcript})
}

func (h *SessionHandler) End(c *gin.Context) {
	result, err := h.svc.End(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
