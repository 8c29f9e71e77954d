package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMongo = "mongo"
	BackendOxiDB = "oxidb"
	BackendRedis = "redis"
)

// DefaultCORSOrigins are the deployed frontend and backend origins.
var DefaultCORSOrigins = []string{
	"https://frontendpaystacktestmode.onrender.com",
	"https://backendpaystacktestmode.onrender.com",
}

type Config struct {
	Port         int
	StoreBackend string

	MongoURI string
	MongoDB  string

	OxiDBHost     string
	OxiDBPort     int
	OxiDBPoolSize int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UploadDir string
	JWTSecret string

	PaystackSecretKey string
	PaystackBaseURL   string

	CORSOrigins []string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	LogLevel string
	GelfAddr string
}

// Load reads .env (if present), an optional YAML file, and the environment.
// Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Port:              v.GetInt("PORT"),
		StoreBackend:      strings.ToLower(v.GetString("STORE_BACKEND")),
		MongoURI:          v.GetString("MONGO_URI"),
		MongoDB:           v.GetString("MONGO_DB"),
		OxiDBHost:         v.GetString("OXIDB_HOST"),
		OxiDBPort:         v.GetInt("OXIDB_PORT"),
		OxiDBPoolSize:     v.GetInt("OXIDB_POOL_SIZE"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		UploadDir:         v.GetString("UPLOAD_DIR"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		PaystackSecretKey: v.GetString("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:   v.GetString("PAYSTACK_BASE_URL"),
		CORSOrigins:       splitList(v.GetString("CORS_ORIGINS")),
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		GelfAddr:          v.GetString("GELF_ADDR"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 5000)
	v.SetDefault("STORE_BACKEND", BackendMongo)
	v.SetDefault("MONGO_URI", "mongodb://127.0.0.1:27017")
	v.SetDefault("MONGO_DB", "formdesk")
	v.SetDefault("OXIDB_HOST", "127.0.0.1")
	v.SetDefault("OXIDB_PORT", 4444)
	v.SetDefault("OXIDB_POOL_SIZE", 3)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("PAYSTACK_SECRET_KEY", "")
	v.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co")
	v.SetDefault("CORS_ORIGINS", strings.Join(DefaultCORSOrigins, ","))
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "password123")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("GELF_ADDR", "")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.StoreBackend {
	case BackendMongo, BackendOxiDB, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c *Config) OxiDBAddr() string {
	return net.JoinHostPort(c.OxiDBHost, strconv.Itoa(c.OxiDBPort))
}
