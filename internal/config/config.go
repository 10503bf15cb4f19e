package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		RestURL string `yaml:"rest_url"`
		WsURL   string `yaml:"ws_url"`
	} `yaml:"api"`

	Scanner struct {
		// rows from the bottom at which a viewport report triggers the
		// next page
		LoadThresholdRows int `yaml:"load_threshold_rows"`
	} `yaml:"scanner"`

	Subs struct {
		MaxPairs int `yaml:"max_pairs"`
	} `yaml:"subs"`

	Dash struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"dash"`

	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`

	Redis struct {
		Enabled   bool   `yaml:"enabled"`
		Addr      string `yaml:"addr"`
		DB        int    `yaml:"db"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
		RankedKey string `yaml:"ranked_key"`
		MetaNS    string `yaml:"meta_ns"`
	} `yaml:"redis"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Load reads the yaml config, fills defaults and applies the environment
// overlay (.env included) for endpoints and secrets.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	_ = godotenv.Load()
	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SCANNER_REST_URL"); v != "" {
		c.API.RestURL = v
	}
	if v := os.Getenv("SCANNER_WS_URL"); v != "" {
		c.API.WsURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
}

func (c *Config) applyDefaults() {
	if c.API.RestURL == "" {
		c.API.RestURL = "https://api-rs.dexcelerate.com"
	}
	if c.API.WsURL == "" {
		c.API.WsURL = "wss://api-rs.dexcelerate.com/ws"
	}
	if c.Scanner.LoadThresholdRows == 0 {
		c.Scanner.LoadThresholdRows = 10
	}
	if c.Subs.MaxPairs == 0 {
		c.Subs.MaxPairs = 2000
	}
	if c.Dash.ListenAddr == "" {
		c.Dash.ListenAddr = ":8080"
	}
	if c.Redis.RankedKey == "" {
		c.Redis.RankedKey = "scanner:ranked"
	}
	if c.Redis.MetaNS == "" {
		c.Redis.MetaNS = "scanner:pair:"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
