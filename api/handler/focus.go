package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/auroraminds/backend/api/transport"
	"github.com/auroraminds/backend/pkg/httpcontext"
	focusUC "github.com/auroraminds/backend/usecase/focus"
)

type FocusHandler struct {
	baseHandler
	uc *focusUC.UseCase
}

func NewFocusHandler(uc *focusUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FocusHandler {
	return &FocusHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Record a finished focus session
// @Tags focus
// @Router /api/v1/focus-sessions [post]
func (h *FocusHandler) CreateSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.FocusSessionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	input := focusUC.CreateInput{
		TaskID:          req.TaskID,
		DurationSeconds: req.Duration,
		Status:          req.Status,
		Notes:           req.Notes,
	}
	if req.StartedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartedAt)
		if err != nil {
			h.respondInvalid(ctx, "startedAt must be RFC3339")
			return
		}
		input.StartedAt = parsed
	}
	if req.EndedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.EndedAt)
		if err != nil {
			h.respondInvalid(ctx, "endedAt must be RFC3339")
			return
		}
		input.EndedAt = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, userID, input)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary List focus sessions, newest first
// @Tags focus
// @Router /api/v1/focus-sessions [get]
func (h *FocusHandler) GetSessions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sessions, err := h.uc.List(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sessions)
}

// @Summary List focus sessions for a task
// @Tags focus
// @Router /api/v1/focus-sessions/task/{taskId} [get]
func (h *FocusHandler) GetSessionsByTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	taskID, _ := ctx.UserValue("taskId").(string)
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sessions, err := h.uc.ListByTask(stdCtx, userID, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sessions)
}

// @Summary All-time focus statistics
// @Tags focus
// @Router /api/v1/focus-sessions/stats [get]
func (h *FocusHandler) GetStats(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Stats(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}
