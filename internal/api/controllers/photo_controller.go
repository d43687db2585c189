package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"photowalk/internal/services"
	"photowalk/pkg/utils"
)

type PhotoController struct {
	photoService services.PhotoServiceInterface
}

func NewPhotoController(photoService services.PhotoServiceInterface) *PhotoController {
	return &PhotoController{
		photoService: photoService,
	}
}

// UploadPhoto godoc
// @Summary Upload one photo
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file, UPLOAD_MAX_BYTES max"
// @Param photoId formData string false "Device photo id"
// @Param walkId formData string false "Walk id, if already known"
// @Param missionName formData string false "Mission the photo was taken for"
// @Success 200 {object} response_models.UploadResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /photos [post]
func (p *PhotoController) UploadPhoto(c *gin.Context) {
	header, _ := c.FormFile("file")

	resp, err := p.photoService.Upload(c.Request.Context(), services.FileFromHeader(header), services.UploadMeta{
		PhotoID:     c.PostForm("photoId"),
		WalkID:      c.PostForm("walkId"),
		MissionName: c.PostForm("missionName"),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp)
}

// UploadPhotos godoc
// @Summary Upload several photos
// @Description Files are stored one at a time. Each result reports its own failure.
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Image files"
// @Param photoIds formData []string false "Device photo ids, same order as files"
// @Param walkId formData string false "Walk id"
// @Success 200 {object} response_models.BatchUploadResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /photos [put]
func (p *PhotoController) UploadPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, utils.UploadMessage(utils.ErrMissingFile))
		return
	}

	headers := form.File["files"]
	files := make([]*services.IncomingFile, 0, len(headers))
	for _, h := range headers {
		files = append(files, services.FileFromHeader(h))
	}

	resp, err := p.photoService.UploadBatch(c.Request.Context(), files, form.Value["photoIds"], c.PostForm("walkId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp)
}

// ListUploadedImages godoc
// @Summary Uploaded images
// @Description Everything recorded in the uploaded image table, optionally for one walk.
// @Tags Photos
// @Produce json
// @Param walkId query string false "Walk id"
// @Success 200 {array} response_models.UploadedImageResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /photos/uploaded [get]
func (p *PhotoController) ListUploadedImages(c *gin.Context) {
	images, err := p.photoService.ListUploadedImages(c.Request.Context(), c.Query("walkId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"images": images})
}

// ClearUploadedImages godoc
// @Summary Forget uploaded images
// @Tags Photos
// @Produce json
// @Param walkId query string false "Only this walk"
// @Success 200 {object} map[string]int64
// @Failure 500 {object} utils.ErrorResponse
// @Router /photos/uploaded [delete]
func (p *PhotoController) ClearUploadedImages(c *gin.Context) {
	n, err := p.photoService.ClearUploadedImages(c.Request.Context(), c.Query("walkId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"deleted": n})
}
