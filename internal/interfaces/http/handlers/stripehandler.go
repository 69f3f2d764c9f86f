package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/application/billing/usecases"
	"github.com/reelpop-inc/reelpop/internal/shared/constants"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

const maxWebhookBodyBytes = 1 << 20

// StripeHandler creates hosted Stripe sessions and receives Stripe webhooks.
type StripeHandler struct {
	checkoutUseCase createCheckoutSessionUseCase
	portalUseCase   createPortalSessionUseCase
	webhookUseCase  handleStripeWebhookUseCase
	logger          logger.Interface
}

func NewStripeHandler(
	checkoutUC createCheckoutSessionUseCase,
	portalUC createPortalSessionUseCase,
	webhookUC handleStripeWebhookUseCase,
	logger logger.Interface,
) *StripeHandler {
	return &StripeHandler{
		checkoutUseCase: checkoutUC,
		portalUseCase:   portalUC,
		webhookUseCase:  webhookUC,
		logger:          logger,
	}
}

type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// @Summary		Create checkout session
// @Description	Start a hosted Stripe Checkout for a paid plan
// @Tags			billing
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			request	body		CheckoutRequest										true	"Plan to purchase"
// @Success		200		{object}	utils.APIResponse{data=usecases.SessionResult}	"Checkout URL"
// @Failure		400		{object}	utils.APIResponse									"Bad request"
// @Failure		401		{object}	utils.APIResponse									"Unauthorized"
// @Failure		502		{object}	utils.APIResponse									"Stripe error"
// @Router			/api/stripe/checkout [post]
func (h *StripeHandler) Checkout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("plan is required"))
		return
	}

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), usecases.CreateCheckoutSessionCommand{
		UserID: userID,
		Email:  c.GetString(constants.ContextKeyUserEmail),
		Plan:   req.Plan,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// @Summary		Create billing portal session
// @Tags			billing
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=usecases.SessionResult}	"Portal URL"
// @Failure		404	{object}	utils.APIResponse									"No billing account"
// @Router			/api/stripe/portal [post]
func (h *StripeHandler) Portal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.portalUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// @Summary		Stripe webhook
// @Description	Receives signed Stripe events. The raw body is verified against the Stripe-Signature header.
// @Tags			billing
// @Accept			json
// @Produce		json
// @Param			Stripe-Signature	header		string										true	"Stripe signature"
// @Success		200					{object}	usecases.WebhookResult	"Event received"
// @Failure		400					{object}	utils.APIResponse							"Missing or invalid signature"
// @Failure		500					{object}	utils.APIResponse							"Processing failed, Stripe retries"
// @Router			/api/stripe/webhook [post]
func (h *StripeHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read request body"))
		return
	}

	result, err := h.webhookUseCase.Execute(c.Request.Context(), usecases.HandleStripeWebhookCommand{
		Payload:   payload,
		Signature: c.GetHeader(constants.HeaderStripeSignature),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
