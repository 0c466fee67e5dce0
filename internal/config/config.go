package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8085" validate:"min=1000,max=65535"`

	PostgresHost     string `env:"POSTGRES_HOST"     envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT"     envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER"     envDefault:"edustream_user"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"edustream_password"`
	PostgresDb       string `env:"POSTGRES_DB"       envDefault:"edustream_db"`

	JwtSecret    string `env:"JWT_SECRET"     envDefault:"dev-secret-change" validate:"min=8"`
	CorsAllowUrl string `env:"CORS_ALLOW_URL" envDefault:"http://localhost:3000"`

	LivekitApiKey    string `env:"LIVEKIT_API_KEY"    envDefault:"devkey"`
	LivekitApiSecret string `env:"LIVEKIT_API_SECRET" envDefault:"devsecret-devsecret-devsecret-32" validate:"min=8"`
	LivekitUrl       string `env:"LIVEKIT_URL"        envDefault:"ws://localhost:7880"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
