package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Port string `env:"PORT" envDefault:"5300"`

		// Allowed CORS origins, comma separated. "*" allows all.
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Catalog struct {
		// Origin prefixed onto relative image paths
		BackendOrigin string `env:"BACKEND_ORIGIN" envDefault:"http://localhost:5300"`

		// Upper bound of the price filter range
		PriceCeiling int64 `env:"PRICE_CEILING" envDefault:"40000000"`

		// Top-K limits of the derived listing views
		LatestLimit  int `env:"LATEST_LIMIT" envDefault:"8"`
		RelatedLimit int `env:"RELATED_LIMIT" envDefault:"4"`
		NearbyLimit  int `env:"NEARBY_LIMIT" envDefault:"6"`
	}

	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/immolist.db"`
	}

	Source struct {
		// Base URL of the upstream catalog feed; empty disables remote refresh
		BaseURL string `env:"SOURCE_BASE_URL"`

		// Minutes between scheduled snapshot refreshes
		RefreshMinutes int `env:"SOURCE_REFRESH_MINUTES" envDefault:"15"`

		// Per-request timeout in seconds
		TimeoutSeconds int `env:"SOURCE_TIMEOUT" envDefault:"10"`
	}

	Auth struct {
		AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
		AdminPassword string `env:"ADMIN_PASSWORD"`
		JWTSecret     string `env:"JWT_SECRET"`
		TokenTTL      int    `env:"TOKEN_TTL_MINUTES" envDefault:"60"`
	}

	BatchProcessing struct {
		// Maximum number of listings to accumulate before processing
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Maximum time to wait before processing a non-full batch (in seconds)
		MaxBatchWaitTime int `env:"BATCH_WAIT_TIME" envDefault:"30"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}

	Telegram struct {
		Enabled  bool   `env:"TELEGRAM_ENABLED" envDefault:"false"`
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `env:"TELEGRAM_CHAT_ID"`
	}
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
