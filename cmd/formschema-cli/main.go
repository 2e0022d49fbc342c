package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formschema/internal/logging"
	"github.com/goliatone/go-formschema/pkg/api"
	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/notify"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/renderers/tui"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return
		case errors.Is(err, tui.ErrAborted):
			fmt.Fprintln(os.Stderr, "aborted")
		default:
			fmt.Fprintf(os.Stderr, "formschema-cli: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("formschema-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	baseURL := fs.String("url", "http://localhost:8383", "form server base URL")
	delay := fs.Duration("delay", 0, "per-request delay override sent to the server (0 keeps the server default)")
	output := fs.String("output", string(tui.OutputFormatJSON), "result format (json or pretty)")
	timeout := fs.Duration("timeout", 30*time.Second, "HTTP client timeout")
	logLevel := fs.String("log-level", "error", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format := tui.OutputFormat(*output)
	if format != tui.OutputFormatJSON && format != tui.OutputFormatPrettyText {
		return fmt.Errorf("unknown output format %q", *output)
	}

	logger, err := logging.New(*logLevel, logging.FormatConsole)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logging.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(*baseURL,
		api.WithHTTPClient(&http.Client{Timeout: *timeout}),
		api.WithDelay(*delay),
	)
	ctrl := form.New(
		form.WithSubmitter(client),
		form.WithNotifier(notify.NewTerminal(stderr)),
		form.WithLogger(logger.Named("form")),
	)

	fmt.Fprintln(stderr, "Loading form...")
	if err := ctrl.LoadFields(ctx, client); err != nil {
		return err
	}

	renderer := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(stderr)),
		tui.WithOutputFormat(format),
	)
	if _, err := renderer.Collect(ctx, ctrl); err != nil {
		return err
	}

	echo, err := ctrl.Submit(ctx)
	if err != nil {
		return err
	}

	if format == tui.OutputFormatPrettyText {
		out, err := renderer.Render(ctx, ctrl.Snapshot(), render.RenderOptions{})
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	}
	out, err := json.MarshalIndent(echo, "", "  ")
	if err != nil {
		return fmt.Errorf("encode echo: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}
