package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/application/generation/usecases"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

// GenerationHandler submits video generation tasks and reports their progress.
type GenerationHandler struct {
	submitUseCase submitGenerationUseCase
	statusUseCase getGenerationStatusUseCase
	logger        logger.Interface
}

func NewGenerationHandler(
	submitUC submitGenerationUseCase,
	statusUC getGenerationStatusUseCase,
	logger logger.Interface,
) *GenerationHandler {
	return &GenerationHandler{
		submitUseCase: submitUC,
		statusUseCase: statusUC,
		logger:        logger,
	}
}

type GenerateRequest struct {
	ImageURLs    []string `json:"image_urls"`
	StoragePaths []string `json:"storage_paths"`
	Template     string   `json:"template"`
	ProductName  string   `json:"product_name"`
	ProductPrice string   `json:"product_price"`
	Catchphrase  string   `json:"catchphrase"`
}

// @Summary		Submit video generation
// @Description	Reserve one video from the caller's quota and submit a generation task
// @Tags			generation
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			request	body		GenerateRequest											true	"Generation request"
// @Success		200		{object}	utils.APIResponse{data=dto.SubmitGenerationResult}	"Task accepted"
// @Failure		400		{object}	utils.APIResponse										"Bad request"
// @Failure		401		{object}	utils.APIResponse										"Unauthorized"
// @Failure		403		{object}	utils.APIResponse										"Quota exceeded"
// @Failure		429		{object}	utils.APIResponse										"Too many requests"
// @Failure		502		{object}	utils.APIResponse										"Provider error"
// @Router			/api/generate [post]
func (h *GenerationHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for generation", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body"))
		return
	}

	result, err := h.submitUseCase.Execute(c.Request.Context(), usecases.SubmitGenerationCommand{
		UserID:       userID,
		ImageURLs:    req.ImageURLs,
		StoragePaths: req.StoragePaths,
		Template:     req.Template,
		ProductName:  req.ProductName,
		ProductPrice: req.ProductPrice,
		Catchphrase:  req.Catchphrase,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// @Summary		Get generation status
// @Description	Poll the provider for a task owned by the caller and settle it when terminal
// @Tags			generation
// @Produce		json
// @Security		Bearer
// @Param			taskId	path		string													true	"Task ID"
// @Success		200		{object}	utils.APIResponse{data=dto.GenerationStatusResult}	"Task status"
// @Failure		401		{object}	utils.APIResponse										"Unauthorized"
// @Failure		403		{object}	utils.APIResponse										"Not the task owner"
// @Failure		404		{object}	utils.APIResponse										"Task not found"
// @Failure		502		{object}	utils.APIResponse										"Provider error"
// @Router			/api/generate/{taskId} [get]
func (h *GenerationHandler) GetStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	taskID := c.Param("taskId")
	if taskID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("task ID is required"))
		return
	}

	result, err := h.statusUseCase.Execute(c.Request.Context(), usecases.GetGenerationStatusQuery{
		UserID: userID,
		TaskID: taskID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
