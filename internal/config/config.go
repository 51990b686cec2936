package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every service setting.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Auth   AuthConfig
	Mood   MoodConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	auth, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	moodCfg, err := loadMoodConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Auth: auth, Mood: moodCfg}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the generative-language upstream.
type AIConfig struct {
	APIKey        string
	Model         string
	BaseURL       string
	Region        string
	Temperature   *float64
	MaxTokens     *int
	SearchEnabled bool
}

// Enabled reports whether a usable credential was provided.
func (c AIConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// NewChatModel builds a model instance from this configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("generative service credential missing: set GENAI_API_KEY and GENAI_MODEL")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("GENAI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}
	if temperature == nil {
		// The companion persona reads best with mild sampling variety.
		val := 0.7
		temperature = &val
	}

	maxTokens, err := parseOptionalIntEnv("GENAI_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	search, err := parseBoolEnv("GENAI_SEARCH_ENABLED", true)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:        strings.TrimSpace(os.Getenv("GENAI_API_KEY")),
		Model:         strings.TrimSpace(os.Getenv("GENAI_MODEL")),
		BaseURL:       getEnvOrDefault("GENAI_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:        getEnvOrDefault("GENAI_REGION", "cn-beijing"),
		Temperature:   temperature,
		MaxTokens:     maxTokens,
		SearchEnabled: search,
	}, nil
}

// AuthConfig describes token issuance and session lifetime.
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

func loadAuthConfig() (AuthConfig, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	ttlHours := 24
	if override, err := parseOptionalIntEnv("SESSION_TTL_HOURS"); err != nil {
		return AuthConfig{}, err
	} else if override != nil {
		if *override < 1 {
			ttlHours = 1
		} else {
			ttlHours = *override
		}
	}

	return AuthConfig{
		JWTSecret:  secret,
		SessionTTL: time.Duration(ttlHours) * time.Hour,
	}, nil
}

// MoodConfig describes the optional remote mood source.
type MoodConfig struct {
	SyncURL string
	Timeout time.Duration
}

// RemoteEnabled reports whether a remote mood source is configured.
func (c MoodConfig) RemoteEnabled() bool {
	return c.SyncURL != ""
}

func loadMoodConfig() (MoodConfig, error) {
	timeout, err := parseOptionalIntEnv("MOOD_SYNC_TIMEOUT")
	if err != nil {
		return MoodConfig{}, err
	}
	timeoutSeconds := 5
	if timeout != nil {
		timeoutSeconds = *timeout
	}

	return MoodConfig{
		SyncURL: strings.TrimSpace(os.Getenv("MOOD_SYNC_URL")),
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
