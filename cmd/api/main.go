package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zurichat/zc-messaging/api"
	"github.com/zurichat/zc-messaging/zccore"
)

const (
	defaultBaseURL   = "https://api.zuri.chat"
	defaultPluginKey = "zuri-plugin-messaging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()

	addr := flag.String("addr", "localhost:8080", "HTTP network address")
	baseURL := flag.String("base-url", envOr("ZC_CORE_URL", defaultBaseURL), "Base URL of the core data API")
	pluginKey := flag.String("plugin-key", envOr("ZC_PLUGIN_KEY", defaultPluginKey), "Fragment matching this plugin in the marketplace listing")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	core, err := zccore.Dial(ctx, zccore.Config{
		BaseURL:   *baseURL,
		PluginKey: *pluginKey,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("Could not resolve the plugin id", "error", err.Error())
		os.Exit(1)
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Error("Could not listen", "error", err)
		os.Exit(1)
	}

	api := &api.API{
		Logger:    logger,
		Store:     core,
		Directory: core,
		Validate:  validator.New(),
	}

	srv := &http.Server{
		Handler: api,
	}

	go func() {
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	logger.Info("Ready to accept traffic", "address", *addr)
	if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
		logger.Error("Could not start server", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
