package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// AvatarSize is the pixel size requested from the avatar service.
const AvatarSize = 50

type Config struct {
	Port      string
	GinMode   string
	FEOrigins []string

	DBUser         string
	DBPass         string
	DBHost         string
	DBName         string
	MigrationsPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PageCacheTTL  time.Duration

	UploadsBucket string
}

var conf *Config

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("FE_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DB_USER", "root")
	viper.SetDefault("DB_PASS", "")
	viper.SetDefault("DB_HOST", "localhost:3306")
	viper.SetDefault("DB_NAME", "yatube")
	viper.SetDefault("MIGRATIONS_PATH", "db/migrations")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PAGE_CACHE_TTL", "20s")
	viper.SetDefault("UPLOADS_BUCKET", "")
}

// Init loads configuration from config.yaml (if present) and the environment.
// Environment variables win over file values.
func Init() {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal().Err(err).Msg("failed to read config file")
		}
	}

	conf = &Config{
		Port:           viper.GetString("PORT"),
		GinMode:        viper.GetString("GIN_MODE"),
		FEOrigins:      strings.Split(viper.GetString("FE_ORIGINS"), ";"),
		DBUser:         viper.GetString("DB_USER"),
		DBPass:         viper.GetString("DB_PASS"),
		DBHost:         viper.GetString("DB_HOST"),
		DBName:         viper.GetString("DB_NAME"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		RedisAddr:      viper.GetString("REDIS_ADDR"),
		RedisPassword:  viper.GetString("REDIS_PASSWORD"),
		RedisDB:        viper.GetInt("REDIS_DB"),
		PageCacheTTL:   viper.GetDuration("PAGE_CACHE_TTL"),
		UploadsBucket:  viper.GetString("UPLOADS_BUCKET"),
	}
}

func Get() *Config {
	if conf == nil {
		Init()
	}
	return conf
}
