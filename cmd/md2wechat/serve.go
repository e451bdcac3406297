package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	md2wechat "github.com/zkkython/md2wechat-skills"
	"github.com/zkkython/md2wechat-skills/internal/config"
	"github.com/zkkython/md2wechat-skills/internal/publisher"
	"github.com/zkkython/md2wechat-skills/internal/webui"
	"github.com/zkkython/md2wechat-skills/internal/wechat"
)

// shutdownGrace is how long in-flight requests get to finish.
const shutdownGrace = 10 * time.Second

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	host    string
	port    string
	envFile string
	verbose bool
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVar(&f.host, "host", "", "listen host (default: MD2WECHAT_HOST or 0.0.0.0)")
	fs.StringVar(&f.port, "port", "", "listen port (default: MD2WECHAT_PORT or 8000)")
	fs.StringVar(&f.envFile, "env", "", ".env file path (default: nearest .env)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")

	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return f, nil
}

// runServe starts the web front end and blocks until interrupted.
func runServe(args []string) error {
	f, err := parseServeFlags(args)
	if err != nil {
		return err
	}
	setupLogging(f.verbose)

	cfg, err := config.LoadFrom(f.envFile)
	if err != nil {
		return err
	}
	cfg.Validate()
	if f.host != "" {
		cfg.Host = f.host
	}
	if f.port != "" {
		cfg.Port = f.port
	}

	client := wechat.NewClient(wechat.Credentials{
		AppID:     cfg.AppID,
		AppSecret: cfg.AppSecret,
	})
	pub := publisher.New(md2wechat.New(), client)
	server := webui.NewServer(pub, client)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", "grace", shutdownGrace.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
