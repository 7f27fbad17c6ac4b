package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	STTProviderGoogle = "google"
	STTProviderGemini = "gemini"
)

// MaxStorableAudioBytes leaves headroom under MongoDB's 16 MiB document limit
// for the transcript and metadata stored beside the inline audio.
const MaxStorableAudioBytes int64 = 15 << 20

// Settings is built once at startup and passed by value afterwards.
type Settings struct {
	AppName    string
	AppVersion string
	Debug      bool
	Host       string
	Port       int

	MongoURI string
	MongoDB  string

	RedisAddr          string
	ExtractionCacheTTL time.Duration

	GoogleProject  string
	GoogleLocation string
	GoogleAPIKey   string

	LLMModel    string
	STTProvider string
	STTLanguage string
	STTModel    string

	WarmProviders       bool
	AudioBucket         string
	MaxAudioBytes       int64
	CollaboratorTimeout time.Duration

	JWTSecret string
	LogLevel  string
	LogRedact bool
}

func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads .env (if present), then an optional YAML file named by
// CONFIG_FILE, then the process environment. Environment wins.
func Load() (Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	if err := v.BindEnv("mongo_uri", "MONGO_URI", "MONGODB_URL"); err != nil {
		return Settings{}, fmt.Errorf("bind env: %w", err)
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := Settings{
		AppName:    v.GetString("app_name"),
		AppVersion: v.GetString("app_version"),
		Debug:      v.GetBool("debug"),
		Host:       v.GetString("host"),
		Port:       v.GetInt("port"),

		MongoURI: v.GetString("mongo_uri"),
		MongoDB:  v.GetString("mongo_db"),

		RedisAddr:          strings.TrimSpace(v.GetString("redis_addr")),
		ExtractionCacheTTL: v.GetDuration("extraction_cache_ttl"),

		GoogleProject:  v.GetString("google_cloud_project"),
		GoogleLocation: v.GetString("google_cloud_location"),
		GoogleAPIKey:   v.GetString("google_api_key"),

		LLMModel:    v.GetString("llm_model"),
		STTProvider: strings.ToLower(strings.TrimSpace(v.GetString("stt_provider"))),
		STTLanguage: v.GetString("stt_language"),
		STTModel:    v.GetString("stt_model"),

		WarmProviders:       v.GetBool("warm_providers"),
		AudioBucket:         strings.TrimSpace(v.GetString("audio_bucket")),
		MaxAudioBytes:       v.GetInt64("max_audio_bytes"),
		CollaboratorTimeout: v.GetDuration("collaborator_timeout"),

		JWTSecret: v.GetString("jwt_secret"),
		LogLevel:  v.GetString("log_level"),
		LogRedact: v.GetBool("log_redact"),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("validate config: %w", err)
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "Telepatia AI Backend API")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("debug", false)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_db", "telepatia")
	v.SetDefault("redis_addr", "")
	v.SetDefault("extraction_cache_ttl", time.Hour)
	v.SetDefault("google_cloud_project", "")
	v.SetDefault("google_cloud_location", "us-central1")
	v.SetDefault("google_api_key", "")
	v.SetDefault("llm_model", "gemini-2.0-flash")
	v.SetDefault("stt_provider", STTProviderGoogle)
	v.SetDefault("stt_language", "es-ES")
	v.SetDefault("stt_model", "gemini-2.0-flash")
	v.SetDefault("warm_providers", true)
	v.SetDefault("audio_bucket", "")
	v.SetDefault("max_audio_bytes", MaxStorableAudioBytes)
	v.SetDefault("collaborator_timeout", 60*time.Second)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_redact", true)
}

func (s Settings) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("port out of range: %d", s.Port)
	}
	if strings.TrimSpace(s.MongoURI) == "" {
		return fmt.Errorf("mongo_uri is required")
	}
	if strings.TrimSpace(s.MongoDB) == "" {
		return fmt.Errorf("mongo_db is required")
	}
	switch s.STTProvider {
	case STTProviderGoogle, STTProviderGemini:
	default:
		return fmt.Errorf("unknown stt_provider %q", s.STTProvider)
	}
	if s.MaxAudioBytes <= 0 {
		return fmt.Errorf("max_audio_bytes must be positive")
	}
	if s.MaxAudioBytes > MaxStorableAudioBytes {
		return fmt.Errorf("max_audio_bytes %d exceeds the storable limit of %d", s.MaxAudioBytes, MaxStorableAudioBytes)
	}
	if s.CollaboratorTimeout <= 0 {
		return fmt.Errorf("collaborator_timeout must be positive")
	}
	return nil
}
