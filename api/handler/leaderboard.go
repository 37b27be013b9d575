package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/auroraminds/backend/pkg/httpcontext"
	leaderboardUC "github.com/auroraminds/backend/usecase/leaderboard"
)

type LeaderboardHandler struct {
	baseHandler
	uc *leaderboardUC.UseCase
}

func NewLeaderboardHandler(uc *leaderboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Top users by XP
// @Tags leaderboard
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 0)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.Top(stdCtx, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
