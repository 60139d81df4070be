package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type SlackConfig struct {
	BotToken      string `yaml:"bot_token"`
	SigningSecret string `yaml:"signing_secret"`
}

type HubSpotConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

type DigestConfig struct {
	ChannelID string `yaml:"channel_id"`
	Timezone  string `yaml:"timezone"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Slack   SlackConfig   `yaml:"slack"`
	HubSpot HubSpotConfig `yaml:"hubspot"`
	Digest  DigestConfig  `yaml:"digest"`
}

// Load reads config/config.yaml if present, then lets environment variables
// override it (.env files are honored). Credentials still missing after both
// passes are an error; the caller is expected to exit non-zero.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if f, err := os.Open("config/config.yaml"); err == nil {
		err = yaml.NewDecoder(f).Decode(&cfg)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse config.yaml: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.HubSpot.BaseURL == "" {
		cfg.HubSpot.BaseURL = "https://api.hubapi.com"
	}
	if cfg.Digest.Timezone == "" {
		cfg.Digest.Timezone = "Europe/Warsaw"
	}

	var missing []string
	if cfg.Slack.BotToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if cfg.Slack.SigningSecret == "" {
		missing = append(missing, "SLACK_SIGNING_SECRET")
	}
	if cfg.HubSpot.Token == "" {
		missing = append(missing, "HUBSPOT_TOKEN")
	}
	if cfg.Digest.ChannelID == "" {
		missing = append(missing, "DIGEST_CHANNEL_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: check %s", strings.Join(missing, ", "))
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		cfg.Slack.BotToken = v
	}
	if v := os.Getenv("SLACK_SIGNING_SECRET"); v != "" {
		cfg.Slack.SigningSecret = v
	}
	if v := os.Getenv("HUBSPOT_TOKEN"); v != "" {
		cfg.HubSpot.Token = v
	}
	if v := os.Getenv("HUBSPOT_BASE_URL"); v != "" {
		cfg.HubSpot.BaseURL = v
	}
	if v := os.Getenv("DIGEST_CHANNEL_ID"); v != "" {
		cfg.Digest.ChannelID = v
	}
	if v := os.Getenv("DIGEST_TIMEZONE"); v != "" {
		cfg.Digest.Timezone = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
}
