package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/application/usage"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

// SubscriptionHandler exposes the caller's plan and quota usage.
type SubscriptionHandler struct {
	service subscriptionService
	logger  logger.Interface
}

func NewSubscriptionHandler(service subscriptionService, logger logger.Interface) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		logger:  logger,
	}
}

type SubscriptionResponse struct {
	Subscription *usage.SubscriptionOverview `json:"subscription"`
}

// @Summary		Get subscription
// @Description	Current plan, billing period and video usage; subscription is null for unprovisioned users
// @Tags			subscription
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=SubscriptionResponse}	"Subscription"
// @Failure		401	{object}	utils.APIResponse								"Unauthorized"
// @Router			/api/subscription [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	overview, err := h.service.Overview(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", SubscriptionResponse{Subscription: overview})
}

type VideoLimitResponse struct {
	Allowed bool   `json:"allowed"`
	Plan    string `json:"plan"`
	Current int    `json:"current"`
	Limit   *int   `json:"limit"`
}

// @Summary		Get video limit
// @Description	Whether the caller can start another generation. Advisory only; the slot is taken on submit.
// @Tags			subscription
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=VideoLimitResponse}	"Video limit"
// @Failure		401	{object}	utils.APIResponse							"Unauthorized"
// @Router			/api/subscription/limit [get]
func (h *SubscriptionHandler) Limit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.service.CheckVideoLimit(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", VideoLimitResponse{
		Allowed: result.Allowed,
		Plan:    result.Plan.String(),
		Current: result.Current,
		Limit:   result.Limit,
	})
}

// @Summary		Ensure subscription
// @Description	Provision the free subscription for the caller if none exists
// @Tags			subscription
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse	"Subscription ensured"
// @Failure		401	{object}	utils.APIResponse	"Unauthorized"
// @Router			/api/auth/ensure-subscription [post]
func (h *SubscriptionHandler) Ensure(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.EnsureFreeSubscription(c.Request.Context(), userID); err != nil {
		h.logger.Errorw("failed to ensure subscription", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "subscription ensured", nil)
}
