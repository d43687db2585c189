package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"photowalk/internal/models/request_models"
	"photowalk/internal/services"
	"photowalk/pkg/utils"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
}

func NewSessionController(sessionService services.SessionServiceInterface) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// StartSession godoc
// @Summary Start a walk
// @Description Opens a server-held session. Without missions the default batch is used.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body request_models.StartSessionRequest false "Start and end points, optional mission drafts"
// @Success 200 {object} response_models.SessionResponse
// @Router /sessions [post]
func (s *SessionController) StartSession(c *gin.Context) {
	var req request_models.StartSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	utils.RespondSuccess(c, s.sessionService.Start(c.Request.Context(), req))
}

// GetSession godoc
// @Summary Current state of a walk
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} response_models.SessionResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{id} [get]
func (s *SessionController) GetSession(c *gin.Context) {
	resp, err := s.sessionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp)
}

// Capture godoc
// @Summary Record a mission photo
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body request_models.CaptureRequest true "Mission and position"
// @Success 200 {object} response_models.CaptureResponse
// @Failure 400 {object} utils.ErrorResponse "no position"
// @Failure 404 {object} utils.ErrorResponse "unknown session or mission"
// @Failure 409 {object} utils.ErrorResponse "mission already completed"
// @Router /sessions/{id}/captures [post]
func (s *SessionController) Capture(c *gin.Context) {
	var req request_models.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := s.sessionService.Capture(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp)
}

// Favorite godoc
// @Summary Record a free photo
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body request_models.LocationRequest true "Position"
// @Success 200 {object} response_models.CaptureResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /sessions/{id}/favorites [post]
func (s *SessionController) Favorite(c *gin.Context) {
	var req request_models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := s.sessionService.Favorite(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp)
}

// RoutePoint godoc
// @Summary Append a position sample
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body request_models.LocationRequest true "Position"
// @Success 200 {object} walk.RoutePoint
// @Failure 400 {object} utils.ErrorResponse
// @Router /sessions/{id}/route [post]
func (s *SessionController) RoutePoint(c *gin.Context) {
	var req request_models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	point, err := s.sessionService.RoutePoint(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, point)
}

// Summary godoc
// @Summary Walk summary so far
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} walk.Summary
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{id}/summary [get]
func (s *SessionController) Summary(c *gin.Context) {
	summary, err := s.sessionService.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, summary)
}

// Complete godoc
// @Summary Finish a walk
// @Description Saves the walk to history and closes the session.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} response_models.CompleteSessionResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{id}/complete [post]
func (s *SessionController) Complete(c *gin.Context) {
	resp, err := s.sessionService.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp)
}
