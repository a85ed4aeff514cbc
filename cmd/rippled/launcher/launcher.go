// Package launcher wires the command line to a running node: flag parsing,
// logging (with optional Sentry error reporting), the metrics endpoint and
// the ledger state the transaction engine applies against.
//
// The networking, consensus and RPC surfaces are separate subsystems; the
// launcher currently brings up the state-transition core and reports
// readiness.
package launcher

import (
	"fmt"
	"net/http"

	"github.com/evalphobia/logrus_sentry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dyguan372/rippled/flags"
	"github.com/dyguan372/rippled/ledger"
	"github.com/dyguan372/rippled/transact"
)

var app = flags.NewApp()

func init() {
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Action = run
}

// Launch parses the command line and starts the node.
func Launch(args []string) error {
	return app.Run(args)
}

func run(ctx *cli.Context) error {
	cfg, err := MakeConfig(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	log := logrus.WithField("module", "launcher")

	if cfg.Metrics {
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, promhttp.Handler()); err != nil {
				log.WithError(err).Warn("metrics endpoint stopped")
			}
		}()
	}

	store := ledger.NewMemStore()
	engine := transact.NewEngine(store, cfg.Rules)

	// Seed the genesis fee schedule so fee queries work before any
	// governance transaction arrives.
	res := engine.Apply(transact.Tx{
		Kind:              transact.TxFee,
		BaseFee:           cfg.Rules.Fees.BaseFee,
		ReferenceFeeUnits: cfg.Rules.Fees.ReferenceFeeUnits,
		ReserveBase:       cfg.Rules.Fees.ReserveBase,
		ReserveIncrement:  cfg.Rules.Fees.ReserveIncrement,
	})
	if !res.OK() {
		store.Discard()
		return fmt.Errorf("genesis fee settings: %s", res)
	}
	digest := store.Commit()

	log.WithFields(logrus.Fields{
		"network": cfg.Rules.Name,
		"datadir": cfg.DataDir,
		"digest":  digest.Hex(),
	}).Info("ledger node ready")
	return nil
}

func setupLogging(cfg Config) error {
	switch cfg.LogFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{ForceColors: cfg.LogColor})
	}
	logrus.SetLevel(logrus.Level(cfg.LogVerbosity))

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return err
		}
		logrus.AddHook(hook)
	}
	return nil
}
