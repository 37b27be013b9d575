package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/auroraminds/backend/pkg/httpcontext"
	analyticsUC "github.com/auroraminds/backend/usecase/analytics"
)

type AnalyticsHandler struct {
	baseHandler
	uc *analyticsUC.UseCase
}

func NewAnalyticsHandler(uc *analyticsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Focus summary for a period
// @Tags analytics
// @Router /api/v1/analytics/focus-summary [get]
func (h *AnalyticsHandler) GetFocusSummary(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	period := string(ctx.QueryArgs().Peek("period"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Summarize(stdCtx, userID, period)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}

// @Summary Consecutive-day streak
// @Tags analytics
// @Router /api/v1/analytics/streak [get]
func (h *AnalyticsHandler) GetStreak(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	streak, err := h.uc.Streak(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, streak)
}

// @Summary Productivity insights for the trailing month
// @Tags analytics
// @Router /api/v1/analytics/insights [get]
func (h *AnalyticsHandler) GetInsights(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	insights, err := h.uc.Insights(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, insights)
}
