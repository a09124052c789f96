package config

import "time"

// Config holds runtime settings for the blindcalc CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the evaluator gRPC endpoint.
//   - AccessToken: bearer token sent with every authenticated call.
//   - DataDir: directory (relative to the working directory) holding local state.
//   - KeystoreDSN: SQLite DSN of the key store; a bare file name lives in DataDir.
//   - KeyBits: Paillier modulus size used by keygen.
//   - KeygenTimeout: upper bound for a single keygen run.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - StopWords, MinWordLength: tokenizer policy for searchable records.
//     Both ends of a conversation must use the same policy.
type Config struct {
	ServerEndpointAddr  string
	AccessToken         string
	DataDir             string
	KeystoreDSN         string
	KeyBits             int
	KeygenTimeout       time.Duration
	OnlineCheckInterval time.Duration
	StopWords           []string
	MinWordLength       int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.DataDir = ".blindcalc"
	c.KeystoreDSN = "keystore.db"
	c.KeyBits = 2048
	c.KeygenTimeout = time.Minute
	c.OnlineCheckInterval = 3 * time.Second
	c.StopWords = []string{}
	c.MinWordLength = 1
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
