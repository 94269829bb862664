package app

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"xprlink/internal/domain"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string `mapstructure:"home"`       // config directory, e.g. $HOME/.xprlink
	Passphrase string `mapstructure:"passphrase"` // seals the session file when set
	LogLevel   string `mapstructure:"log_level"`

	RelayURL      string               `mapstructure:"relay_url"`
	AppIdentifier domain.AppIdentifier `mapstructure:"app_identifier"`
	ChainID       domain.ChainID       `mapstructure:"chain_id"`
	Endpoints     []string             `mapstructure:"endpoints"`
	Timeout       time.Duration        `mapstructure:"timeout"`

	AppName string                    `mapstructure:"app_name"`
	AppLogo string                    `mapstructure:"app_logo"`
	Style   domain.CustomStyleOptions `mapstructure:"style"`

	TokenContract  domain.AccountName `mapstructure:"token_contract"`
	TokenSymbol    string             `mapstructure:"token_symbol"`
	TokenPrecision int                `mapstructure:"token_precision"`
}

// Defaults mirror the values the web app shipped with.
var Defaults = map[string]any{
	"relay_url":      "http://127.0.0.1:8080",
	"app_identifier": "taskly",
	"chain_id":       "384da888112027f0321850a169f737c33e53b388aad48b5adace4bab97f437e0",
	"endpoints":      []string{"https://proton.greymass.com"},
	"timeout":        2 * time.Minute,
	"log_level":      "info",

	"app_name":                      "Tasklyy",
	"app_logo":                      "https://taskly.protonchain.com/static/media/taskly-logo.ad0bfb0f.svg",
	"style.modal_background_color":  "#F4F7FA",
	"style.logo_background_color":   "white",
	"style.is_logo_round":           true,
	"style.option_background_color": "white",
	"style.option_font_color":       "black",
	"style.primary_font_color":      "black",
	"style.secondary_font_color":    "#6B727F",
	"style.link_color":              "#752EEB",

	"token_contract":  "eosio.token",
	"token_symbol":    "XPR",
	"token_precision": 4,
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	for k, val := range Defaults {
		v.SetDefault(k, val)
	}
}

// Get unmarshals the global viper state into a Config.
func Get() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// LinkOptions builds the options the session controller passes on login.
func (c *Config) LinkOptions() domain.LinkOptions {
	return domain.LinkOptions{
		Endpoints:      c.Endpoints,
		ChainID:        c.ChainID,
		RequestAccount: c.AppIdentifier,
		Selector: domain.SelectorOptions{
			AppName:     c.AppName,
			AppLogo:     c.AppLogo,
			CustomStyle: c.Style,
		},
	}
}
