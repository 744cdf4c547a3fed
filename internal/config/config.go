package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite3"
	DriverOracle = "oracle"

	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Scraper ScraperConfig
	Cache   CacheConfig
	Logger  LoggerConfig
	Client  ClientConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Driver   string
	Path     string // sqlite3 only
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig leaves Address empty to disable the quiz detail cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LLMConfig struct {
	Provider  string
	ServerURL string
	Model     string
	APIKey    string
	Timeout   time.Duration
}

type ScraperConfig struct {
	UserAgent        string
	Timeout          time.Duration
	MinContentLength int
}

type CacheConfig struct {
	QuizDetailTTL time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// ClientConfig is read by quiz-cli.
type ClientConfig struct {
	ServerURL string
	Timeout   time.Duration
}

func setDefaults() {
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 60*time.Second)
	viper.SetDefault("server.write_timeout", 120*time.Second)

	viper.SetDefault("db.driver", DriverSQLite)
	viper.SetDefault("db.path", "wiki_quiz.db")
	viper.SetDefault("db.port", 1521)

	viper.SetDefault("llm.provider", ProviderOllama)
	viper.SetDefault("llm.server_url", "http://localhost:11434")
	viper.SetDefault("llm.model", "qwen3:0.6b")
	viper.SetDefault("llm.timeout", 90*time.Second)

	viper.SetDefault("scraper.user_agent", "QuizGenerator-Scraper/1.0")
	viper.SetDefault("scraper.timeout", 15*time.Second)
	viper.SetDefault("scraper.min_content_length", 100)

	viper.SetDefault("cache.quiz_detail_ttl", 10*time.Minute)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.SetDefault("client.server_url", "http://localhost:8000")
	viper.SetDefault("client.timeout", 120*time.Second)
}

// LoadConfig reads config.yaml (optional) and environment overrides into
// the global viper instance. Env keys replace dots with underscores, so
// db.driver is DB_DRIVER.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(viper.GetString("db.driver")),
			Path:     viper.GetString("db.path"),
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:  strings.ToLower(viper.GetString("llm.provider")),
			ServerURL: viper.GetString("llm.server_url"),
			Model:     viper.GetString("llm.model"),
			APIKey:    viper.GetString("llm.api_key"),
			Timeout:   viper.GetDuration("llm.timeout"),
		},
		Scraper: ScraperConfig{
			UserAgent:        viper.GetString("scraper.user_agent"),
			Timeout:          viper.GetDuration("scraper.timeout"),
			MinContentLength: viper.GetInt("scraper.min_content_length"),
		},
		Cache: CacheConfig{
			QuizDetailTTL: viper.GetDuration("cache.quiz_detail_ttl"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Client: ClientConfig{
			ServerURL: viper.GetString("client.server_url"),
			Timeout:   viper.GetDuration("client.timeout"),
		},
	}

	// OPENAI_API_KEY is honoured when llm.api_key is unset.
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" && config.LLM.APIKey == "" {
		config.LLM.APIKey = openAIKey
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects driver and provider names nothing can serve.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverOracle:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	switch c.LLM.Provider {
	case ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}
	return nil
}

// GetDSN returns the data source name for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == DriverOracle {
		// Oracle DSN format: user/password@host:port/service
		return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
			c.DB.User,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
		)
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", c.DB.Path)
}
