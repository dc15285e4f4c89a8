package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App       AppSettings       `mapstructure:"app"`
	Steam     SteamSettings     `mapstructure:"steam"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
	Redis     RedisSettings     `mapstructure:"redis"`
	Batch     BatchSettings     `mapstructure:"batch"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// SteamSettings configures the Steam Web API endpoint and credentials. The
// api_key and steam_id keys bind to the unprefixed STEAM_API_KEY and STEAM_ID
// environment variables as well; missing values fall back to an interactive
// prompt at startup.
type SteamSettings struct {
	APIBase        string        `mapstructure:"api_base"`
	APIKey         string        `mapstructure:"api_key"`
	SteamID        string        `mapstructure:"steam_id"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// RateLimitSettings configures the sliding admission window. Store selects
// where the window lives: "memory" (per process, the default) or "redis"
// (shared across runs using the same key prefix).
type RateLimitSettings struct {
	WindowDuration time.Duration `mapstructure:"window_duration"`
	MaxRequests    int           `mapstructure:"max_requests"`
	Store          string        `mapstructure:"store"`
	KeyPrefix      string        `mapstructure:"key_prefix"`
	TTL            time.Duration `mapstructure:"ttl"`
}

type RedisSettings struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

// BatchSettings configures the processing run.
type BatchSettings struct {
	ItemDelay     time.Duration `mapstructure:"item_delay"`
	InputFile     string        `mapstructure:"input_file"`
	CommentPrefix string        `mapstructure:"comment_prefix"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("STEAM")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"steam.api_base",
		"steam.api_key",
		"steam.steam_id",
		"steam.request_timeout",
		"rate_limit.window_duration",
		"rate_limit.max_requests",
		"rate_limit.store",
		"rate_limit.key_prefix",
		"rate_limit.ttl",
		"redis.host",
		"redis.port",
		"redis.db",
		"redis.password",
		"batch.item_delay",
		"batch.input_file",
		"batch.comment_prefix",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "steam-friend-adder")
	v.SetDefault("app.env", "development")

	v.SetDefault("steam.api_base", "https://api.steampowered.com")
	v.SetDefault("steam.api_key", "")
	v.SetDefault("steam.steam_id", "")
	v.SetDefault("steam.request_timeout", "10s")

	v.SetDefault("rate_limit.window_duration", "60s")
	v.SetDefault("rate_limit.max_requests", 30)
	v.SetDefault("rate_limit.store", "memory")
	v.SetDefault("rate_limit.key_prefix", "steam-friend-adder:rate-limit")
	v.SetDefault("rate_limit.ttl", "2m")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")

	v.SetDefault("batch.item_delay", "1s")
	v.SetDefault("batch.input_file", "steam_ids.txt")
	v.SetDefault("batch.comment_prefix", "#")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "STEAM_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
