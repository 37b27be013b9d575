package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/auroraminds/backend/pkg/httpcontext"
	rewardsUC "github.com/auroraminds/backend/usecase/rewards"
)

type RewardsHandler struct {
	baseHandler
	uc *rewardsUC.UseCase
}

func NewRewardsHandler(uc *rewardsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *RewardsHandler {
	return &RewardsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Reward catalog with claim status
// @Tags rewards
// @Router /api/v1/rewards [get]
func (h *RewardsHandler) GetRewards(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	overview, err := h.uc.List(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, overview)
}

// @Summary Claim a reward
// @Tags rewards
// @Router /api/v1/rewards/claim/{rewardId} [post]
func (h *RewardsHandler) ClaimReward(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	rewardID, _ := ctx.UserValue("rewardId").(string)
	if rewardID == "" {
		h.respondInvalid(ctx, "missing reward id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	claim, err := h.uc.Claim(stdCtx, userID, rewardID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, claim)
}
