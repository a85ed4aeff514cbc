package launcher

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/dyguan372/rippled/protocol"
)

// Config aggregates everything the launcher derives from the command line.
type Config struct {
	DataDir string
	Rules   protocol.Rules

	LogFormat    string
	LogVerbosity int
	LogColor     bool
	SentryDSN    string

	Metrics     bool
	MetricsAddr string
}

// MakeConfig builds the launcher configuration from CLI flags.
func MakeConfig(ctx *cli.Context) (Config, error) {
	cfg := Config{
		DataDir:      ctx.GlobalString("datadir"),
		LogFormat:    ctx.GlobalString("log.format"),
		LogVerbosity: ctx.GlobalInt("log.verbosity"),
		LogColor:     ctx.GlobalBool("log.color"),
		SentryDSN:    ctx.GlobalString("sentry.dsn"),
		Metrics:      ctx.GlobalBool("metrics"),
		MetricsAddr:  ctx.GlobalString("metrics.addr"),
	}

	switch network := ctx.GlobalString("network"); network {
	case "main":
		cfg.Rules = protocol.MainNetRules()
	case "test":
		cfg.Rules = protocol.TestNetRules()
	case "fake":
		cfg.Rules = protocol.FakeNetRules()
	default:
		return Config{}, fmt.Errorf("unknown network %q", network)
	}
	return cfg, nil
}
