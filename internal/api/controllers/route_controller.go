package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"photowalk/internal/models/request_models"
	"photowalk/internal/models/response_models"
	"photowalk/internal/services"
	"photowalk/pkg/utils"
)

type RouteController struct {
	routeService services.RouteServiceInterface
}

func NewRouteController(routeService services.RouteServiceInterface) *RouteController {
	return &RouteController{
		routeService: routeService,
	}
}

// GetRoute godoc
// @Summary Walking route between two addresses
// @Tags Route
// @Accept json
// @Produce json
// @Param request body request_models.RouteRequest true "Start and end addresses"
// @Success 200 {object} response_models.RouteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /route [post]
func (r *RouteController) GetRoute(c *gin.Context) {
	var req request_models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(req.StartAddress) == "" || strings.TrimSpace(req.EndAddress) == "" {
		utils.RespondError(c, http.StatusBadRequest, "スタート地点とゴール地点を入力してください")
		return
	}

	route, err := r.routeService.Route(c.Request.Context(), req.StartAddress, req.EndAddress)
	if err != nil {
		if isRoutingError(err) {
			utils.HandleServiceError(c, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "ルート取得中にエラーが発生しました")
		return
	}

	utils.RespondSuccess(c, response_models.RouteResponse{Success: true, Route: *route})
}

func isRoutingError(err error) bool {
	return errors.Is(err, utils.ErrAddressNotFound) ||
		errors.Is(err, utils.ErrRoutingNotConfigured) ||
		errors.Is(err, utils.ErrRouteTooLong) ||
		errors.Is(err, utils.ErrNoRoute)
}
