package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/internal/config"
	"github.com/goliatone/go-formschema/internal/demo"
	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/internal/server"
	"github.com/goliatone/go-formschema/internal/theming"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/notify"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "formschema-server: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load("formschema-server", args, os.Stderr)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logging.SetLogger(logger)

	fields, err := loadFields(cfg.FieldsFile)
	if err != nil {
		return err
	}

	selector, err := loadThemes(cfg.Theme)
	if err != nil {
		return err
	}

	srv, err := server.New(fields,
		server.WithDelay(cfg.Delay),
		server.WithLogger(logger),
		server.WithThemeSelector(selector),
		server.WithNotifier(notify.NewLogger(logger.Named("toast"))),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		zap.String("addr", cfg.Addr),
		zap.Duration("delay", cfg.Delay),
		zap.Int("fields", len(fields)),
		zap.Strings("themes", selector.Names()),
	)
	return srv.ListenAndServe(ctx, cfg.Addr, cfg.Grace)
}

func loadFields(path string) ([]model.FieldSchema, error) {
	if path == "" {
		return demo.Fields(), nil
	}
	return model.LoadFieldsFile(path)
}

func loadThemes(cfg config.Theme) (*theming.Selector, error) {
	manifests := make([]*theme.Manifest, 0, len(cfg.Manifests))
	for _, path := range cfg.Manifests {
		manifest, err := theming.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, manifest)
	}
	return theming.NewSelector(cfg.Name, cfg.Variant, manifests...)
}
