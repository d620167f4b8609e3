package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию приложения. Читается один раз при старте;
// отсутствие обязательного ключа доступа - фатальная ошибка запуска.
type Config struct {
	AppEnv      string `env:"APP_ENV" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	LogEncoding string `env:"LOG_ENCODING" env-default:"json"`
	SecretsDir  string `env:"SECRETS_DIR" env-default:"/run/secrets"`

	HTTP    HTTPConfig
	Session SessionConfig
	Image   ImageConfig
	Voice   VoiceConfig

	// AI читается отдельно через envconfig с префиксом AI_
	AI AIConfig
}

// HTTPConfig - настройки HTTP API для веб-клиента.
type HTTPConfig struct {
	Port               string        `env:"HTTP_PORT" env-default:"8080"`
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	ShutdownTimeout    time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	TurnsPerMinute     int           `env:"TURNS_PER_MINUTE" env-default:"20"`
	TurnBurst          int           `env:"TURN_BURST" env-default:"5"`
}

// SessionConfig - где хранятся сессии.
type SessionConfig struct {
	Store         string        `env:"SESSION_STORE" env-default:"memory"` // memory | redis
	TTL           time.Duration `env:"SESSION_TTL" env-default:"24h"`
	RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
}

// ImageConfig - сервис генерации изображений.
type ImageConfig struct {
	BaseURL      string        `env:"IMAGE_API" env-required:"true"`
	HDMode       bool          `env:"IMAGE_HD_MODE" env-default:"false"`
	Seed         string        `env:"IMAGE_SEED" env-default:"12345"`
	Timeout      time.Duration `env:"IMAGE_TIMEOUT" env-default:"60s"`
	DefaultStyle string        `env:"DEFAULT_IMAGE_STYLE" env-default:"Cinematic"`
	// Секретное поле без env тега
	APIKey string
}

// VoiceConfig - сервис синтеза речи (OpenAI-совместимый /audio/speech).
type VoiceConfig struct {
	Enabled      bool          `env:"TTS_ENABLED" env-default:"true"`
	BaseURL      string        `env:"TTS_BASE_URL" env-default:"http://localhost:5050/v1"`
	Model        string        `env:"TTS_MODEL" env-default:"tts-1"`
	Timeout      time.Duration `env:"TTS_TIMEOUT" env-default:"60s"`
	DefaultStyle string        `env:"DEFAULT_VOICE_STYLE" env-default:"Emma"`
	// Секретное поле без env тега; необязательно
	APIKey string
}

// AIConfig - настройки языковой модели, ведущей историю.
type AIConfig struct {
	ClientType       string        `envconfig:"CLIENT_TYPE" default:"openai"` // openai | ollama
	BaseURL          string        `envconfig:"BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model            string        `envconfig:"MODEL" default:"gemini-1.5-flash-latest"`
	Temperature      float64       `envconfig:"TEMPERATURE" default:"2.0"`
	Timeout          time.Duration `envconfig:"TIMEOUT" default:"120s"`
	SystemPromptFile string        `envconfig:"SYSTEM_PROMPT_FILE"`
	// Секретное поле БЕЗ envconfig тега
	APIKey string `ignored:"true"`
}

// Load загружает конфигурацию из .env (если есть), переменных окружения и секретов.
func Load() (*Config, error) {
	// .env нужен только для локальной разработки, его отсутствие не ошибка
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	if err := envconfig.Process("AI", &cfg.AI); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации AI: %w", err)
	}

	var err error
	if cfg.AI.ClientType != "ollama" {
		cfg.AI.APIKey, err = ReadSecret(cfg.SecretsDir, "ai_api_key", "GEMINI_KEY", "AI_API_KEY")
		if err != nil {
			return nil, err
		}
	}
	cfg.Image.APIKey, err = ReadSecret(cfg.SecretsDir, "image_key", "IMAGE_KEY")
	if err != nil {
		return nil, err
	}
	if cfg.Voice.Enabled {
		// Локальные мосты edge-tts ключ не проверяют
		cfg.Voice.APIKey, _ = ReadSecret(cfg.SecretsDir, "tts_api_key", "TTS_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate проверяет значения, которые теги не покрывают.
func (c *Config) Validate() error {
	switch c.AI.ClientType {
	case "openai", "ollama":
	default:
		return fmt.Errorf("неизвестный тип AI клиента: '%s'", c.AI.ClientType)
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("неизвестный тип хранилища сессий: '%s'", c.Session.Store)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	return nil
}

// AllowedOrigins разбирает CORS_ALLOWED_ORIGINS (через запятую).
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.HTTP.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ReadSecret ищет ключ доступа сначала в переменных окружения envKeys,
// затем в файле Docker Secrets <dir>/<secretName>.
func ReadSecret(dir, secretName string, envKeys ...string) (string, error) {
	for _, key := range envKeys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, nil
		}
	}

	filePath := filepath.Join(dir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("secret %s is not set (env %s) and file %s is unreadable: %w",
			secretName, strings.Join(envKeys, "/"), filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// MaskedSummary - строка для лога при старте, без ключей доступа.
func (c *Config) MaskedSummary() map[string]any {
	return map[string]any{
		"app_env":        c.AppEnv,
		"ai_client_type": c.AI.ClientType,
		"ai_base_url":    c.AI.BaseURL,
		"ai_model":       c.AI.Model,
		"ai_timeout":     c.AI.Timeout.String(),
		"image_api":      c.Image.BaseURL,
		"image_hd_mode":  c.Image.HDMode,
		"tts_enabled":    c.Voice.Enabled,
		"tts_base_url":   c.Voice.BaseURL,
		"session_store":  c.Session.Store,
		"http_port":      c.HTTP.Port,
	}
}
