package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "10MB", HumanSize(10*1024*1024))
	assert.Equal(t, "2.5MB", HumanSize(5*1024*1024/2))
	assert.Equal(t, "1KB", HumanSize(1024))
	assert.Equal(t, "100B", HumanSize(100))
}

func TestUploadMessageUsesLimit(t *testing.T) {
	err := fmt.Errorf("upload: %w", &SizeLimitError{Limit: 3 * 1024 * 1024})
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, "ファイルサイズは3MB以下にしてください", UploadMessage(err))
	assert.Equal(t, "ファイルサイズが大きすぎます", UploadMessage(ErrFileTooLarge))
}

func TestHandleServiceErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{ErrRequestInFlight, http.StatusConflict},
		{&SizeLimitError{Limit: 1024}, http.StatusBadRequest},
		{ErrSessionNotFound, http.StatusNotFound},
		{ErrMissionCompleted, http.StatusConflict},
		{ErrDatabaseError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		HandleServiceError(c, tt.err)
		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}
