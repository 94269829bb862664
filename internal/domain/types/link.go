package types

// LinkOptions configures a session request to the wallet-link collaborator.
type LinkOptions struct {
	Endpoints      []string
	ChainID        ChainID
	RestoreSession bool
	RequestAccount AppIdentifier
	Selector       SelectorOptions
}

// SelectorOptions describe how the application presents itself to the user
// while a wallet is being chosen.
type SelectorOptions struct {
	AppName     string             `json:"app_name" mapstructure:"app_name"`
	AppLogo     string             `json:"app_logo,omitempty" mapstructure:"app_logo"`
	CustomStyle CustomStyleOptions `json:"custom_style" mapstructure:"style"`
}

// CustomStyleOptions are cosmetic hints forwarded to the wallet.
type CustomStyleOptions struct {
	ModalBackgroundColor  string `json:"modal_background_color,omitempty" mapstructure:"modal_background_color"`
	LogoBackgroundColor   string `json:"logo_background_color,omitempty" mapstructure:"logo_background_color"`
	IsLogoRound           bool   `json:"is_logo_round" mapstructure:"is_logo_round"`
	OptionBackgroundColor string `json:"option_background_color,omitempty" mapstructure:"option_background_color"`
	OptionFontColor       string `json:"option_font_color,omitempty" mapstructure:"option_font_color"`
	PrimaryFontColor      string `json:"primary_font_color,omitempty" mapstructure:"primary_font_color"`
	SecondaryFontColor    string `json:"secondary_font_color,omitempty" mapstructure:"secondary_font_color"`
	LinkColor             string `json:"link_color,omitempty" mapstructure:"link_color"`
}

// LoginPrompt is handed to a Presenter while the client waits for a wallet
// to answer an identity request.
type LoginPrompt struct {
	Selector  SelectorOptions
	URI       string
	ChainID   ChainID
	RequestID string
}

// StoredSession is the persisted form of a linked session, enough to restore
// it without another handshake.
type StoredSession struct {
	AppID       AppIdentifier   `json:"app_id"`
	ChainID     ChainID         `json:"chain_id"`
	Auth        PermissionLevel `json:"auth"`
	LinkChannel ChannelID       `json:"link_channel"`
	WalletName  string          `json:"wallet_name,omitempty"`
	Endpoints   []string        `json:"endpoints,omitempty"`
	RequestKey  Ed25519Private  `json:"request_key"`
	CreatedUTC  int64           `json:"created_utc"`
}
