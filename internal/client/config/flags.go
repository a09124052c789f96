package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-k", "-b", "-g", "-i", "-w", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	fs.StringVar(&cfg.KeystoreDSN, "k", cfg.KeystoreDSN, "key store DSN")
	fs.IntVar(&cfg.KeyBits, "b", cfg.KeyBits, "Paillier modulus bits")
	keygenTimeout := fs.Int("g", int(cfg.KeygenTimeout.Seconds()), "keygen timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	stopWords := fs.String("w", strings.Join(cfg.StopWords, ","), "stop words, comma separated")
	fs.IntVar(&cfg.MinWordLength, "m", cfg.MinWordLength, "minimum indexed word length")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.KeygenTimeout = time.Duration(*keygenTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.StopWords = flagx.SplitList(*stopWords)
}
