package common

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

type Config struct {
	Viper *viper.Viper
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	TimeZone   string
	SqlitePath string
}

type JwtConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

type ChatConfig struct {
	HistoryLimit int
	DeliveryMode string
	SendBuffer   int
	InboxBuffer  int
}

func NewViper() *Config {
	config := viper.New()
	config.SetConfigFile(".env")
	config.SetConfigType("env")
	config.AutomaticEnv()

	log.Trace("Checking file .env ....")
	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			panic("failed read config")
		}
		log.Info("No .env file found, using environment variables")
	}
	return New(config)
}

// New wraps an existing viper instance and fills in defaults for every key the
// application reads.
func New(v *viper.Viper) *Config {
	v.SetDefault("APP_NAME", "campus-event-chat")
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_SQLITE_PATH", "campus-event-chat.db")

	v.SetDefault("JWT_ISSUER", "campus-event-chat")
	v.SetDefault("JWT_TTL", "1h")

	v.SetDefault("CHAT_HISTORY_LIMIT", 50)
	v.SetDefault("CHAT_DELIVERY_MODE", "room")
	v.SetDefault("CHAT_SEND_BUFFER", 64)
	v.SetDefault("CHAT_INBOX_BUFFER", 16)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "logs")
	return &Config{Viper: v}
}

func (c *Config) GetAppConfig() (appName, port string) {
	return c.Viper.GetString("APP_NAME"), c.Viper.GetString("APP_PORT")
}

func (c *Config) GetShutdownTimeout() time.Duration {
	return c.Viper.GetDuration("SHUTDOWN_TIMEOUT")
}

func (c *Config) GetCorsConfig() (allowOrigins string) {
	return c.Viper.GetString("CORS_ORIGINS")
}

func (c *Config) GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:     strings.ToLower(c.Viper.GetString("DB_DRIVER")),
		Host:       c.Viper.GetString("DB_HOSTNAME"),
		User:       c.Viper.GetString("DB_USER"),
		Password:   c.Viper.GetString("DB_PASSWORD"),
		Name:       c.Viper.GetString("DB_NAME"),
		Port:       c.Viper.GetString("DB_PORT"),
		TimeZone:   c.Viper.GetString("DB_TIMEZONE"),
		SqlitePath: c.Viper.GetString("DB_SQLITE_PATH"),
	}
}

func (c *Config) GetJwtConfig() JwtConfig {
	return JwtConfig{
		Secret: []byte(c.Viper.GetString("JWT_SECRET")),
		Issuer: c.Viper.GetString("JWT_ISSUER"),
		TTL:    c.Viper.GetDuration("JWT_TTL"),
	}
}

func (c *Config) GetChatConfig() ChatConfig {
	return ChatConfig{
		HistoryLimit: c.Viper.GetInt("CHAT_HISTORY_LIMIT"),
		DeliveryMode: strings.ToLower(c.Viper.GetString("CHAT_DELIVERY_MODE")),
		SendBuffer:   c.Viper.GetInt("CHAT_SEND_BUFFER"),
		InboxBuffer:  c.Viper.GetInt("CHAT_INBOX_BUFFER"),
	}
}

func (c *Config) GetLogConfig() (level, dir string) {
	return c.Viper.GetString("LOG_LEVEL"), c.Viper.GetString("LOG_DIR")
}
