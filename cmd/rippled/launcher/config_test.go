package launcher

import (
	"testing"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/dyguan372/rippled/flags"
	"github.com/dyguan372/rippled/protocol"
)

// runConfigFromArgs feeds synthetic CLI arguments through MakeConfig.
func runConfigFromArgs(t *testing.T, args []string) (Config, error) {
	t.Helper()

	app := cli.NewApp()
	app.HideHelp = true
	app.HideVersion = true
	app.Flags = flags.CommonFlags()

	var got Config
	var cfgErr error
	app.Action = func(c *cli.Context) error {
		got, cfgErr = MakeConfig(c)
		return nil
	}
	if err := app.Run(append([]string{"rippled"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return got, cfgErr
}

func TestMakeConfig_flagOverrides(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			args: nil,
			want: func(t *testing.T, cfg Config) {
				if cfg.Rules.NetworkID != protocol.MainNetworkID {
					t.Errorf("NetworkID = %d, want mainnet", cfg.Rules.NetworkID)
				}
				if cfg.DataDir != "~/.rippled" {
					t.Errorf("DataDir = %q", cfg.DataDir)
				}
			},
		},
		{
			name: "fake network and datadir",
			args: []string{"--network", "fake", "--datadir", "/tmp/fakenet"},
			want: func(t *testing.T, cfg Config) {
				if cfg.Rules.NetworkID != protocol.FakeNetworkID {
					t.Errorf("NetworkID = %d, want fakenet", cfg.Rules.NetworkID)
				}
				if cfg.DataDir != "/tmp/fakenet" {
					t.Errorf("DataDir = %q, want /tmp/fakenet", cfg.DataDir)
				}
			},
		},
		{
			name: "logging and metrics",
			args: []string{"--log.format", "json", "--log.verbosity", "5", "--metrics", "--metrics.addr", "0.0.0.0:9999"},
			want: func(t *testing.T, cfg Config) {
				if cfg.LogFormat != "json" || cfg.LogVerbosity != 5 {
					t.Errorf("logging config = %q/%d", cfg.LogFormat, cfg.LogVerbosity)
				}
				if !cfg.Metrics || cfg.MetricsAddr != "0.0.0.0:9999" {
					t.Errorf("metrics config = %v/%q", cfg.Metrics, cfg.MetricsAddr)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := runConfigFromArgs(t, tt.args)
			if err != nil {
				t.Fatalf("MakeConfig failed: %v", err)
			}
			tt.want(t, cfg)
		})
	}
}

func TestMakeConfig_unknownNetwork(t *testing.T) {
	_, err := runConfigFromArgs(t, []string{"--network", "nope"})
	if err == nil {
		t.Fatal("expected an error for an unknown network")
	}
}
