package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string

	JWTPublicKey string

	StagingDir           string
	MaxOriginalSizeBytes int64
	CompressionQuality   int
	PreviewEnabled       bool
	FFmpegPath           string
	FFprobePath          string
	TranscodeTimeout     time.Duration
	WorkerConcurrency    int
	PurgeRetention       time.Duration
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("BUCKET", "stories")
	viper.SetDefault("STAGING_DIR", "/tmp/stories")
	viper.SetDefault("MAX_ORIGINAL_SIZE_BYTES", 50<<20)
	viper.SetDefault("COMPRESSION_QUALITY", 85)
	viper.SetDefault("PREVIEW_ENABLED", true)
	viper.SetDefault("FFMPEG_PATH", "ffmpeg")
	viper.SetDefault("FFPROBE_PATH", "ffprobe")
	viper.SetDefault("TRANSCODE_TIMEOUT_SECONDS", 120)
	viper.SetDefault("WORKER_CONCURRENCY", 4)
	viper.SetDefault("PURGE_RETENTION_HOURS", 24)

	if !viper.IsSet("MARIADB_DSN") {
		return nil, fmt.Errorf("MARIADB_DSN is required")
	}
	if !viper.IsSet("MARIADB_MAX_OPEN_CONN") {
		return nil, fmt.Errorf("MARIADB_MAX_OPEN_CONN is required")
	}
	if !viper.IsSet("MARIADB_MAX_IDLE_CONNS") {
		return nil, fmt.Errorf("MARIADB_MAX_IDLE_CONNS is required")
	}
	if !viper.IsSet("MARIADB_CONN_MAX_LIFETIME") {
		return nil, fmt.Errorf("MARIADB_CONN_MAX_LIFETIME is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		Bucket:         viper.GetString("BUCKET"),

		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),

		StagingDir:           viper.GetString("STAGING_DIR"),
		MaxOriginalSizeBytes: viper.GetInt64("MAX_ORIGINAL_SIZE_BYTES"),
		CompressionQuality:   viper.GetInt("COMPRESSION_QUALITY"),
		PreviewEnabled:       viper.GetBool("PREVIEW_ENABLED"),
		FFmpegPath:           viper.GetString("FFMPEG_PATH"),
		FFprobePath:          viper.GetString("FFPROBE_PATH"),
		TranscodeTimeout:     time.Duration(viper.GetInt("TRANSCODE_TIMEOUT_SECONDS")) * time.Second,
		WorkerConcurrency:    viper.GetInt("WORKER_CONCURRENCY"),
		PurgeRetention:       time.Duration(viper.GetInt("PURGE_RETENTION_HOURS")) * time.Hour,
	}, nil
}
