package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/prnotify/internal/app"
	"github.com/maxbolgarin/prnotify/internal/config"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file, environment is used when empty").Short('c').String()
)

func main() {
	kingpin.Version(Version)
	kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()
	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	logze.Init(logze.C().WithConsole().WithLevel(lang.If(cfg.Debug, logze.LevelDebug, logze.LevelInfo)))
	logze.Default().Info("starting prnotify", "version", Version, "commit", Commit, "build_date", BuildDate)

	notifier, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "new notifier")
	}

	if err := notifier.Start(ctx); err != nil {
		return erro.Wrap(err, "start")
	}

	<-ctx.Done()

	return nil
}
