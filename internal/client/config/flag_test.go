package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-t", "tok", "-d", "state", "-k", "keys.db",
			"-b", "512", "-g", "5", "-i", "10", "-w", "the,a", "-m", "2",
		}, expectPanic: false,
			expected: &Config{
				ServerEndpointAddr:  "127.0.0.1:9090",
				AccessToken:         "tok",
				DataDir:             "state",
				KeystoreDSN:         "keys.db",
				KeyBits:             512,
				KeygenTimeout:       5 * time.Second,
				OnlineCheckInterval: 10 * time.Second,
				StopWords:           []string{"the", "a"},
				MinWordLength:       2,
			}},
		{name: "foreign flags ignored", args: []string{"cmd", "-x", "1", "-a", ":1"},
			expected: &Config{ServerEndpointAddr: ":1", StopWords: []string{}}},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
		{name: "incorrect keygen timeout", args: []string{"cmd", "-g", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
			os.Args = tt.args
			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
