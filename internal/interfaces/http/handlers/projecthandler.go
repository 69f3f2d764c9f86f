package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/application/generation/usecases"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

type ProjectHandler struct {
	listUseCase listProjectsUseCase
	getUseCase  getProjectUseCase
	logger      logger.Interface
}

func NewProjectHandler(listUC listProjectsUseCase, getUC getProjectUseCase, logger logger.Interface) *ProjectHandler {
	return &ProjectHandler{
		listUseCase: listUC,
		getUseCase:  getUC,
		logger:      logger,
	}
}

// @Summary		List projects
// @Description	List the caller's projects, newest first, with images and videos
// @Tags			projects
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=[]dto.ProjectDTO}	"Projects"
// @Failure		401	{object}	utils.APIResponse							"Unauthorized"
// @Router			/api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.listUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", projects)
}

// @Summary		Get project
// @Tags			projects
// @Produce		json
// @Security		Bearer
// @Param			id	path		string									true	"Project ID"
// @Success		200	{object}	utils.APIResponse{data=dto.ProjectDTO}	"Project"
// @Failure		404	{object}	utils.APIResponse						"Not found"
// @Router			/api/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	project, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetProjectQuery{
		UserID:    userID,
		ProjectID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", project)
}
