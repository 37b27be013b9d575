package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/auroraminds/backend/api/transport"
	"github.com/auroraminds/backend/pkg/httpcontext"
	profileUC "github.com/auroraminds/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get profile
// @Tags profile
// @Success 200 {object} transport.Envelope
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.Get(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profile)
}

// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.Update(stdCtx, userID, profileUC.UpdateInput{
		Name:          req.Name,
		Password:      req.Password,
		Theme:         req.Theme,
		Notifications: req.Notifications,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profile)
}

// @Summary List subjects
// @Tags profile
// @Router /api/v1/profile/subjects [get]
func (h *ProfileHandler) GetSubjects(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	subjects, err := h.uc.Subjects(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, subjects)
}

// @Summary Add a subject
// @Tags profile
// @Router /api/v1/profile/subjects [post]
func (h *ProfileHandler) AddSubject(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.SubjectRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Subject == "" {
		h.respondInvalid(ctx, "subject is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	subjects, err := h.uc.AddSubject(stdCtx, userID, req.Subject)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, subjects)
}

// @Summary Remove a subject
// @Tags profile
// @Router /api/v1/profile/subjects/{subject} [delete]
func (h *ProfileHandler) RemoveSubject(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	subject, _ := ctx.UserValue("subject").(string)
	if subject == "" {
		h.respondInvalid(ctx, "missing subject")
		return
	}
	// Subject names may contain spaces and arrive percent-encoded.
	if decoded, err := url.QueryUnescape(subject); err == nil {
		subject = decoded
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	subjects, err := h.uc.RemoveSubject(stdCtx, userID, subject)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, subjects)
}
