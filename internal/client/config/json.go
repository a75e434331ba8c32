package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/crossclip/internal/flagx"
	"github.com/dmitrijs2005/crossclip/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DataDir             string         `json:"data_dir"`
	GoogleClientID      string         `json:"google_client_id"`
	GoogleClientSecret  string         `json:"google_client_secret"`
	GoogleAuthURL       string         `json:"google_auth_url"`
	GoogleTokenURL      string         `json:"google_token_url"`
	RedirectURL         string         `json:"redirect_url"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys absent from the file leave cfg untouched. Read or
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.GoogleClientID, jc.GoogleClientID)
	setString(&cfg.GoogleClientSecret, jc.GoogleClientSecret)
	setString(&cfg.GoogleAuthURL, jc.GoogleAuthURL)
	setString(&cfg.GoogleTokenURL, jc.GoogleTokenURL)
	setString(&cfg.RedirectURL, jc.RedirectURL)
	setString(&cfg.LogLevel, jc.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
