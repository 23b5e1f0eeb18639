package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type TelemetryConfig struct {
	LogLevel     string `yaml:"log_level"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`
}

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type Config struct {
	ServiceName string           `yaml:"service_name"`
	Environment string           `yaml:"environment"`
	HTTP        HTTPConfig       `yaml:"http"`
	Telemetry   TelemetryConfig  `yaml:"telemetry"`
	RateLimit   RateLimitConfig  `yaml:"rate_limit"`
	LLM         LLMConfig        `yaml:"llm"`
	Moderation  ModerationConfig `yaml:"moderation"`
	Bus         BusConfig        `yaml:"bus"`
}

type RateLimitConfig struct {
	MaxRequests          int     `yaml:"max_requests"`
	WindowSeconds        float64 `yaml:"window_seconds"`
	SweepIntervalSeconds int     `yaml:"sweep_interval_seconds"`
}

type LLMConfig struct {
	Mode           string  `yaml:"mode"` // mock, openai, exec
	Endpoint       string  `yaml:"endpoint"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	Command        string  `yaml:"command"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

type ModerationConfig struct {
	BlockedTerms []string `yaml:"blocked_terms"`
}

type BusConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Servers        []string `yaml:"servers"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	Token          string   `yaml:"token"`
	TLSInsecure    bool     `yaml:"tls_insecure"`
	ConnectTimeout int      `yaml:"connect_timeout_ms"`
}

func Default() Config {
	return Config{
		ServiceName: "briefgen",
		Environment: "development",
		HTTP: HTTPConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Telemetry: TelemetryConfig{
			LogLevel:     "info",
			OTLPEndpoint: "",
			OTLPInsecure: true,
		},
		RateLimit: RateLimitConfig{
			MaxRequests:          10,
			WindowSeconds:        3600,
			SweepIntervalSeconds: 300,
		},
		LLM: LLMConfig{
			Mode:           "mock",
			Endpoint:       "https://api.openai.com",
			Model:          "gpt-4o-mini",
			MaxTokens:      600,
			Temperature:    0.4,
			TimeoutSeconds: 30,
		},
		Bus: BusConfig{
			Enabled:        false,
			Servers:        []string{"nats://localhost:4222"},
			ConnectTimeout: 2000,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.ServiceName, "BRIEFGEN_SERVICE_NAME")
	overrideString(&cfg.Environment, "BRIEFGEN_ENVIRONMENT")
	overrideString(&cfg.HTTP.Bind, "BRIEFGEN_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "BRIEFGEN_HTTP_PORT")
	overrideString(&cfg.Telemetry.LogLevel, "BRIEFGEN_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "BRIEFGEN_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "BRIEFGEN_TELEMETRY_OTLP_INSECURE")
	overrideInt(&cfg.RateLimit.MaxRequests, "BRIEFGEN_RATE_LIMIT_MAX_REQUESTS")
	overrideFloat(&cfg.RateLimit.WindowSeconds, "BRIEFGEN_RATE_LIMIT_WINDOW_SECONDS")
	overrideInt(&cfg.RateLimit.SweepIntervalSeconds, "BRIEFGEN_RATE_LIMIT_SWEEP_INTERVAL_SECONDS")
	overrideString(&cfg.LLM.Mode, "BRIEFGEN_LLM_MODE")
	overrideString(&cfg.LLM.Endpoint, "BRIEFGEN_LLM_ENDPOINT")
	overrideString(&cfg.LLM.APIKey, "BRIEFGEN_LLM_API_KEY")
	overrideString(&cfg.LLM.Model, "BRIEFGEN_LLM_MODEL")
	overrideString(&cfg.LLM.Command, "BRIEFGEN_LLM_COMMAND")
	overrideInt(&cfg.LLM.MaxTokens, "BRIEFGEN_LLM_MAX_TOKENS")
	overrideFloat(&cfg.LLM.Temperature, "BRIEFGEN_LLM_TEMPERATURE")
	overrideInt(&cfg.LLM.TimeoutSeconds, "BRIEFGEN_LLM_TIMEOUT_SECONDS")
	overrideStringSlice(&cfg.Moderation.BlockedTerms, "BRIEFGEN_MODERATION_BLOCKED_TERMS")
	overrideBool(&cfg.Bus.Enabled, "BRIEFGEN_BUS_ENABLED")
	overrideStringSlice(&cfg.Bus.Servers, "BRIEFGEN_BUS_SERVERS")
	overrideString(&cfg.Bus.Username, "BRIEFGEN_BUS_USERNAME")
	overrideString(&cfg.Bus.Password, "BRIEFGEN_BUS_PASSWORD")
	overrideString(&cfg.Bus.Token, "BRIEFGEN_BUS_TOKEN")
	overrideBool(&cfg.Bus.TLSInsecure, "BRIEFGEN_BUS_TLS_INSECURE")
	overrideInt(&cfg.Bus.ConnectTimeout, "BRIEFGEN_BUS_CONNECT_TIMEOUT_MS")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		parts := strings.Split(value, ",")
		var trimmed []string
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			*target = trimmed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	if cfg.ServiceName == "" {
		return errors.New("service_name must not be empty")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return errors.New("http.port must be between 1 and 65535")
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		return errors.New("rate_limit.max_requests must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return errors.New("rate_limit.window_seconds must be positive")
	}
	if cfg.RateLimit.SweepIntervalSeconds < 0 {
		return errors.New("rate_limit.sweep_interval_seconds must be >= 0")
	}
	switch cfg.LLM.Mode {
	case "mock", "openai", "exec":
	default:
		return errors.New("llm.mode must be one of mock|openai|exec")
	}
	if cfg.LLM.Mode == "openai" {
		if cfg.LLM.APIKey == "" {
			return errors.New("llm.api_key must be set when mode=openai (BRIEFGEN_LLM_API_KEY)")
		}
		if cfg.LLM.Endpoint == "" {
			return errors.New("llm.endpoint must be set when mode=openai")
		}
		if cfg.LLM.Model == "" {
			return errors.New("llm.model must be set when mode=openai")
		}
	}
	if cfg.LLM.Mode == "exec" && cfg.LLM.Command == "" {
		return errors.New("llm.command must be set when mode=exec")
	}
	if cfg.LLM.MaxTokens <= 0 {
		return errors.New("llm.max_tokens must be positive")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 0.5 {
		return errors.New("llm.temperature must be between 0 and 0.5")
	}
	if cfg.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	if cfg.Bus.Enabled && len(cfg.Bus.Servers) == 0 {
		return errors.New("bus.servers must not be empty when bus is enabled")
	}
	return nil
}
