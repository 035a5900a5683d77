package main

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the PLOTDEMO_* environment variables.
type Config struct {
	Width     int    `envconfig:"WIDTH" default:"640"`
	Height    int    `envconfig:"HEIGHT" default:"400"`
	PNG       string `envconfig:"PNG" default:"plot.png"`
	PDF       string `envconfig:"PDF"`
	Title     string `envconfig:"TITLE" default:"<bold>sin</bold>(<italic>t</italic>) sampled at <color=0xc03020>1/20</color> s<y=-0.4><size=0.6>-1</size></y>"`
	TitleFile string `envconfig:"TITLE_FILE"`
	Charset   string `envconfig:"CHARSET" default:"utf-8"`
	Points    int    `envconfig:"POINTS" default:"600"`
	Capacity  int    `envconfig:"CAPACITY" default:"250"`
	Watch     bool   `envconfig:"WATCH"`
	Debug     bool   `envconfig:"DEBUG"`
}

func loadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("plotdemo", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
