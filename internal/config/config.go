package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`

	DatabaseType            string `mapstructure:"database_type"`
	DatabaseHost            string `mapstructure:"database_host"`
	DatabasePort            string `mapstructure:"database_port"`
	DatabaseName            string `mapstructure:"database_name"`
	DatabaseUser            string `mapstructure:"database_user"`
	DatabasePassword        string `mapstructure:"database_password"`
	DatabaseSSLMode         string `mapstructure:"database_sslmode"`
	DatabasePath            string `mapstructure:"database_path"`
	DatabaseMaxConns        int    `mapstructure:"database_max_conns"`
	DatabaseMaxIdle         int    `mapstructure:"database_max_idle"`
	DatabaseConnMaxLifetime string `mapstructure:"database_conn_max_lifetime"`

	CookieSecure bool   `mapstructure:"cookie_secure"`
	TokenSecret  string `mapstructure:"token_secret"`

	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3Region    string `mapstructure:"s3_region"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`

	CORSOrigins []string `mapstructure:"cors_origins"`
}

// S3Configured reports whether logo uploads can be served
func (c *Config) S3Configured() bool {
	return c.S3Endpoint != "" && c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv() // environment variables override file values
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Printf("Warning: Could not read config file: %s. Using defaults or environment variables.", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
		log.Println("port not specified, using default 8080")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
		log.Println("database_type not specified, using sqlite")
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/jobdeck.db"
		log.Println("database_path not specified, using default data/jobdeck.db")
	}

	if cfg.DatabaseSSLMode == "" {
		cfg.DatabaseSSLMode = "disable"
	}

	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	}

	// Secure cookies only in production unless the config says otherwise
	if !v.IsSet("cookie_secure") {
		cfg.CookieSecure = cfg.Env == "prod"
		log.Printf("cookie_secure not specified, defaulting to %v based on environment", cfg.CookieSecure)
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	return &cfg, nil
}
