package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(viper.New())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openai", cfg.MissionProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "JP", cfg.MapboxCountry)
	assert.Equal(t, int64(10*1024*1024), cfg.UploadMaxBytes)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchUploadPause)
	assert.Equal(t, 5*time.Minute, cfg.ReconcileInterval)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Origins())
	assert.False(t, cfg.HasCloudinary())
	assert.False(t, cfg.HasS3())
}

func TestFromViperEnvironment(t *testing.T) {
	t.Setenv("MISSION_PROVIDER", " Gemini ")
	t.Setenv("UPLOAD_MAX_BYTES", "5242880")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	t.Setenv("BATCH_UPLOAD_PAUSE", "1s")

	cfg := FromViper(viper.New())

	assert.Equal(t, "gemini", cfg.MissionProvider)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
	assert.True(t, cfg.HasCloudinary())
	assert.Equal(t, time.Second, cfg.BatchUploadPause)
}

func TestHasMissionCredentials(t *testing.T) {
	assert.False(t, Config{MissionProvider: "openai", GeminiAPIKey: "g"}.HasMissionCredentials())
	assert.True(t, Config{MissionProvider: "openai", OpenAIAPIKey: "o"}.HasMissionCredentials())
	assert.True(t, Config{MissionProvider: "gemini", GeminiAPIKey: "g"}.HasMissionCredentials())
	assert.False(t, Config{MissionProvider: "gemini", OpenAIAPIKey: "o"}.HasMissionCredentials())
}
