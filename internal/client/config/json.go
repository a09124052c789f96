package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/blindcalc/internal/flagx"
	"github.com/dmitrijs2005/blindcalc/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify durations either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	AccessToken         string         `json:"access_token"`
	DataDir             string         `json:"data_dir"`
	KeystoreDSN         string         `json:"keystore_dsn"`
	KeyBits             int            `json:"key_bits"`
	KeygenTimeout       timex.Duration `json:"keygen_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	StopWords           []string       `json:"stop_words"`
	MinWordLength       int            `json:"min_word_length"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Zero values in the file leave the current setting alone.
// Read or unmarshal errors panic.
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

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.AccessToken != "" {
		cfg.AccessToken = jc.AccessToken
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.KeystoreDSN != "" {
		cfg.KeystoreDSN = jc.KeystoreDSN
	}
	if jc.KeyBits > 0 {
		cfg.KeyBits = jc.KeyBits
	}
	if jc.KeygenTimeout.Duration > 0 {
		cfg.KeygenTimeout = jc.KeygenTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.StopWords != nil {
		cfg.StopWords = jc.StopWords
	}
	if jc.MinWordLength > 0 {
		cfg.MinWordLength = jc.MinWordLength
	}
}
