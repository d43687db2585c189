package controllers

import (
	"github.com/gin-gonic/gin"
	"photowalk/internal/models/request_models"
	"photowalk/internal/services"
	"photowalk/pkg/utils"
)

type MissionController struct {
	missionService services.MissionServiceInterface
}

func NewMissionController(missionService services.MissionServiceInterface) *MissionController {
	return &MissionController{
		missionService: missionService,
	}
}

// GenerateMissions godoc
// @Summary Generate photo missions
// @Description Three missions for the planned walk. Falls back to the default batch when generation is unavailable, so this never fails.
// @Tags Missions
// @Accept json
// @Produce json
// @Param request body request_models.GenerateMissionsRequest true "Walk plan"
// @Success 200 {object} response_models.GenerateMissionsResponse
// @Router /missions/generate [post]
func (m *MissionController) GenerateMissions(c *gin.Context) {
	var req request_models.GenerateMissionsRequest
	// a broken body still gets missions
	_ = c.ShouldBindJSON(&req)

	resp := m.missionService.GenerateMissions(c.Request.Context(), req)
	utils.RespondSuccess(c, resp)
}
