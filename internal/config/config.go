package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Upload     UploadConfig
	Blockchain BlockchainConfig
	Pinata     PinataConfig
	CORS       CORSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration.
// URL is either a postgres:// DSN or a SQLite file path.
type DatabaseConfig struct {
	URL string
}

// IsPostgres reports whether the configured database is Postgres
func (c DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	Dir          string
	MaxSizeBytes int64
}

// BlockchainConfig holds chain RPC and signer configuration
type BlockchainConfig struct {
	RPCURL             string
	DeployerPrivateKey string
	ContractAddress    string
	ArtifactPath       string
}

// PinataConfig holds pinning service credentials
type PinataConfig struct {
	APIKey    string
	APISecret string
}

// CORSConfig holds the allowed frontend origin
type CORSConfig struct {
	FrontendOrigin string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "dev.db"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "uploads"),
			MaxSizeBytes: 20 * 1024 * 1024, // 20MB
		},
		Blockchain: BlockchainConfig{
			RPCURL:             getEnv("RPC_URL", "http://127.0.0.1:7545"),
			DeployerPrivateKey: getEnv("DEPLOYER_PRIVATE_KEY", ""),
			ContractAddress:    getEnv("CONTRACT_ADDRESS", ""),
			ArtifactPath:       getEnv("CONTRACT_ARTIFACT_PATH", filepath.Join("contracts", "build", "contract.json")),
		},
		Pinata: PinataConfig{
			APIKey:    getEnv("PINATA_API_KEY", ""),
			APISecret: getEnv("PINATA_SECRET_API_KEY", ""),
		},
		CORS: CORSConfig{
			FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
