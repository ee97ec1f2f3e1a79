package config

import (
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Addr           string `toml:"addr"`
	Depth          int32  `toml:"depth"`
	ReqTimeout     int    `toml:"req_timeout"`    //in seconds
	RenderSettle   int    `toml:"render_settle"`  //in seconds
	RenderTimeout  int    `toml:"render_timeout"` //in seconds
	Concurrency    int    `toml:"concurrency"`
	UserAgent      string `toml:"user_agent"`
	HistoryBackend string `toml:"history_backend"` // sqlite or redis
	DBPath         string `toml:"db_path"`
	RedisAddr      string `toml:"redis_addr"`
	RedisKey       string `toml:"redis_key"`
	HistoryLimit   int    `toml:"history_limit"`
}

func NewConfig() *Config {
	return &Config{
		Addr:           ":5000",
		Depth:          1,
		ReqTimeout:     5,
		RenderSettle:   3,
		RenderTimeout:  30,
		Concurrency:    1,
		UserAgent:      "emailcrawler/1.0",
		HistoryBackend: "sqlite",
		DBPath:         "emails.db",
		RedisAddr:      "localhost:6379",
		RedisKey:       "emailcrawler:history",
		HistoryLimit:   50,
	}
}

// Load decodes path over the defaults. Keys missing from the file keep their default value.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) ReqTimeoutDuration() time.Duration {
	return time.Duration(c.ReqTimeout) * time.Second
}

func (c *Config) RenderSettleDuration() time.Duration {
	return time.Duration(c.RenderSettle) * time.Second
}

func (c *Config) RenderTimeoutDuration() time.Duration {
	return time.Duration(c.RenderTimeout) * time.Second
}
