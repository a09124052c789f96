// Package config loads runtime configuration for the blindcalc CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the evaluator gRPC endpoint
//	-t string   access token
//	-d string   local data directory
//	-k string   key store DSN
//	-b int      Paillier modulus bits
//	-g int      keygen timeout (seconds)
//	-i int      online status check interval (seconds)
//	-w string   comma separated stop words
//	-m int      minimum indexed word length
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "data_dir": ".blindcalc",
//	  "keystore_dsn": "keystore.db",
//	  "key_bits": 2048,
//	  "keygen_timeout": "1m",
//	  "online_check_interval": "3s",
//	  "stop_words": ["the", "a"],
//	  "min_word_length": 2
//	}
package config
