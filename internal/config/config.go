package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is built once at startup and handed to every component. Empty
// credentials are valid: each gateway degrades on its own.
type Config struct {
	Port           string `mapstructure:"PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	PostgresURL string `mapstructure:"POSTGRES_URL"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	MissionProvider string `mapstructure:"MISSION_PROVIDER"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel     string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL   string `mapstructure:"OPENAI_BASE_URL"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string `mapstructure:"GEMINI_MODEL"`

	MapboxAccessToken string `mapstructure:"MAPBOX_ACCESS_TOKEN"`
	MapboxCountry     string `mapstructure:"MAPBOX_COUNTRY"`

	ImageStore          string `mapstructure:"IMAGE_STORE"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	S3Endpoint          string `mapstructure:"S3_ENDPOINT"`
	S3Region            string `mapstructure:"S3_REGION"`
	S3Bucket            string `mapstructure:"S3_BUCKET"`
	S3AccessKeyID       string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey   string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3PublicBaseURL     string `mapstructure:"S3_PUBLIC_BASE_URL"`
	UploadDir           string `mapstructure:"UPLOAD_DIR"`
	UploadPublicPath    string `mapstructure:"UPLOAD_PUBLIC_PATH"`
	UploadMaxBytes      int64  `mapstructure:"UPLOAD_MAX_BYTES"`

	BatchUploadPause  time.Duration `mapstructure:"BATCH_UPLOAD_PAUSE"`
	ReconcileInterval time.Duration `mapstructure:"RECONCILE_INTERVAL"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"ALLOWED_ORIGINS":       "http://localhost:3000",
	"LOG_LEVEL":             "info",
	"DB_DRIVER":             "postgres",
	"POSTGRES_URL":          "",
	"SQLITE_PATH":           "photowalk.db",
	"MISSION_PROVIDER":      "openai",
	"OPENAI_API_KEY":        "",
	"OPENAI_MODEL":          "gpt-4o-mini",
	"OPENAI_BASE_URL":       "",
	"GEMINI_API_KEY":        "",
	"GEMINI_MODEL":          "gemini-1.5-flash",
	"MAPBOX_ACCESS_TOKEN":   "",
	"MAPBOX_COUNTRY":        "JP",
	"IMAGE_STORE":           "cloudinary",
	"CLOUDINARY_CLOUD_NAME": "",
	"CLOUDINARY_API_KEY":    "",
	"CLOUDINARY_API_SECRET": "",
	"S3_ENDPOINT":           "",
	"S3_REGION":             "auto",
	"S3_BUCKET":             "",
	"S3_ACCESS_KEY_ID":      "",
	"S3_SECRET_ACCESS_KEY":  "",
	"S3_PUBLIC_BASE_URL":    "",
	"UPLOAD_DIR":            "public/uploads",
	"UPLOAD_PUBLIC_PATH":    "/uploads",
	"UPLOAD_MAX_BYTES":      10 * 1024 * 1024,
	"BATCH_UPLOAD_PAUSE":    "500ms",
	"RECONCILE_INTERVAL":    "5m",
	"SESSION_TTL":           "12h",
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper resolves the config from v with defaults applied.
func FromViper(v *viper.Viper) Config {
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	_ = v.Unmarshal(&cfg)

	cfg.MissionProvider = strings.ToLower(strings.TrimSpace(cfg.MissionProvider))
	cfg.ImageStore = strings.ToLower(strings.TrimSpace(cfg.ImageStore))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	return cfg
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) HasCloudinary() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c Config) HasS3() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

// HasMissionCredentials reports whether the selected mission provider has a key.
func (c Config) HasMissionCredentials() bool {
	if c.MissionProvider == "gemini" {
		return c.GeminiAPIKey != ""
	}
	return c.OpenAIAPIKey != ""
}
