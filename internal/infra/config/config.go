package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig describes the process configuration.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	Port   int    `envconfig:"PORT" default:"8080"`

	Telegram struct {
		Token       string `envconfig:"TG_BOT_TOKEN"`
		PollTimeout int    `envconfig:"TG_POLL_TIMEOUT" default:"30"`
	} `envconfig:""`

	Anthropic struct {
		APIKey  string        `envconfig:"ANTHROPIC_API_KEY"`
		Model   string        `envconfig:"ANTHROPIC_MODEL" default:"claude-3-haiku-20240307"`
		Timeout time.Duration `envconfig:"ANTHROPIC_TIMEOUT" default:"60s"`
	} `envconfig:""`

	Papers struct {
		BaseURL      string        `envconfig:"PAPERS_BASE_URL" default:"https://huggingface.co"`
		FetchTimeout time.Duration `envconfig:"PAPERS_FETCH_TIMEOUT" default:"30s"`
	} `envconfig:""`

	PGDSN string `envconfig:"PG_DSN"`

	UpdateInterval time.Duration `envconfig:"UPDATE_INTERVAL" default:"1h"`
}

// Load reads the config from the environment.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
