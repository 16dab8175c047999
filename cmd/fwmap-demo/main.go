package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	_ "github.com/toyz/fwmap/internal/demo/app"
	_ "github.com/toyz/fwmap/internal/demo/framework"
	"github.com/toyz/fwmap/pkg/fwmap"
	"github.com/toyz/fwmap/pkg/fwmap/adapters"
)

func main() {
	fx.New(
		fx.Provide(
			fwmap.DefaultServerConfig,
			newLogger,
			newWebServer,
			newApplicationContext,
			fwmap.NewServer,
		),
		fx.Invoke(registerHooks),
		fx.NopLogger,
	).Run()
}

func newLogger(config *fwmap.ServerConfig) (*slog.Logger, error) {
	level, err := config.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, nil
}

func newWebServer(config *fwmap.ServerConfig) (fwmap.WebServerInterface, error) {
	return adapters.New(config.Adapter)
}

func newApplicationContext(logger *slog.Logger) (*fwmap.ApplicationContext, error) {
	appContext := fwmap.NewApplicationContext(fwmap.WithLogger(logger))
	if err := appContext.Refresh(); err != nil {
		return nil, err
	}
	return appContext, nil
}

func registerHooks(lc fx.Lifecycle, server *fwmap.Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			server.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
}
