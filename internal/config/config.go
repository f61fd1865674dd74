package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	VLLM   VLLMConfig
}

type ServerConfig struct {
	Host           string `envconfig:"MCP_HOST" default:"0.0.0.0"`
	Port           string `envconfig:"MCP_PORT" default:"3002"`
	Transport      string `envconfig:"MCP_TRANSPORT" default:"streamable-http"`
	ExamplePayload string `envconfig:"MCP_EXAMPLE_PAYLOAD" default:"data/example/vllm_payload.json"`
}

type VLLMConfig struct {
	BaseURL string        `envconfig:"VLLM_BASE_URL" default:"http://89.169.110.141:8000"`
	Model   string        `envconfig:"VLLM_MODEL" default:"transhumanist-already-exists/C2S-Scale-Gemma-2-27B-age-prediction-fullft"`
	APIKey  string        `envconfig:"VLLM_API_KEY" default:"EMPTY"`
	Timeout time.Duration `envconfig:"VLLM_TIMEOUT" default:"60s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
