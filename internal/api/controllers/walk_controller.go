package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"photowalk/internal/models/request_models"
	"photowalk/internal/services"
	"photowalk/pkg/utils"
)

type WalkController struct {
	walkService services.WalkServiceInterface
}

func NewWalkController(walkService services.WalkServiceInterface) *WalkController {
	return &WalkController{
		walkService: walkService,
	}
}

// SaveWalk godoc
// @Summary Save a finished walk
// @Description Numbers may be sent as strings. When storage is down the walk is acknowledged with a local id.
// @Tags Walks
// @Accept json
// @Produce json
// @Param request body request_models.CreateWalkRequest true "Walk"
// @Success 200 {object} response_models.SaveWalkResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /walks [post]
func (w *WalkController) SaveWalk(c *gin.Context) {
	var req request_models.CreateWalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	utils.RespondSuccess(c, w.walkService.SaveWalk(c.Request.Context(), req))
}

// ListWalks godoc
// @Summary Walk history
// @Description Newest first. When storage is down the list is empty and a message explains why.
// @Tags Walks
// @Produce json
// @Success 200 {object} response_models.ListWalksResponse
// @Router /walks [get]
func (w *WalkController) ListWalks(c *gin.Context) {
	utils.RespondSuccess(c, w.walkService.ListWalks(c.Request.Context()))
}

// GetWalk godoc
// @Summary One saved walk
// @Tags Walks
// @Produce json
// @Param id path string true "Walk ID"
// @Success 200 {object} response_models.WalkResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /walks/{id} [get]
func (w *WalkController) GetWalk(c *gin.Context) {
	resp, err := w.walkService.GetWalk(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp)
}
