package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	BcryptCost     int `mapstructure:"bcrypt_cost"`
	PasswordMinLen int `mapstructure:"password_min_len"`
}

type AppSubConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	App      AppSubConfig   `mapstructure:"app"`
}

// Load reads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory. The returned Config is passed down explicitly; there is no
// package-level instance, so tests can build their own.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. SG_SERVER_PORT=9000; nested keys use
	// underscores (jwt.secret -> SG_JWT_SECRET)
	v.SetEnvPrefix("SG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = 7 * 24
	}
	if c.Security.BcryptCost < 12 {
		c.Security.BcryptCost = 12
	}
	if c.Security.PasswordMinLen <= 0 {
		c.Security.PasswordMinLen = 8
	}
	if c.App.PageSize <= 0 {
		c.App.PageSize = 20
	}
}
