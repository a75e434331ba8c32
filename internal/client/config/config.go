package config

import "time"

// Config holds runtime settings for the CrossClip CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DataDir: directory holding the local session database; empty means
//     <user config dir>/crossclip.
//   - GoogleClientID / GoogleClientSecret: OAuth client of the installed app.
//   - GoogleAuthURL / GoogleTokenURL: Google OAuth 2.0 endpoints.
//   - RedirectURL: redirect URI registered for the OAuth client.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr  string        `env:"CROSSCLIP_SERVER_ADDR"`
	OnlineCheckInterval time.Duration `env:"CROSSCLIP_ONLINE_CHECK_INTERVAL"`
	DataDir             string        `env:"CROSSCLIP_DATA_DIR"`
	GoogleClientID      string        `env:"CROSSCLIP_GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string        `env:"CROSSCLIP_GOOGLE_CLIENT_SECRET"`
	GoogleAuthURL       string        `env:"CROSSCLIP_GOOGLE_AUTH_URL"`
	GoogleTokenURL      string        `env:"CROSSCLIP_GOOGLE_TOKEN_URL"`
	RedirectURL         string        `env:"CROSSCLIP_REDIRECT_URL"`
	LogLevel            string        `env:"CROSSCLIP_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = ""
	c.GoogleAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
	c.GoogleTokenURL = "https://oauth2.googleapis.com/token"
	c.RedirectURL = "http://127.0.0.1:8085/callback"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), CROSSCLIP_* environment variables and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
