package main

import (
	"context"
	"fmt"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"campus-event-chat/config"
	"campus-event-chat/config/common"
)

func main() {
	cfg := common.NewViper()

	server, err := config.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	_, port := cfg.GetAppConfig()
	go func() {
		if err := server.App.Listen(":" + port); err != nil {
			server.Log.WithError(err).Error("HTTP server stopped")
		}
	}()

	httpStopped := make(chan struct{})
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.GetShutdownTimeout(),
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				defer close(httpStopped)
				server.Log.Info("Shutting down HTTP server")
				return server.App.ShutdownWithContext(ctx)
			},
			"database": func(ctx context.Context) error {
				select {
				case <-httpStopped:
				case <-ctx.Done():
				}
				server.Log.Info("Closing database pool")
				return server.DB.Close()
			},
		},
	)

	exitCode := <-wait
	server.Log.Infof("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
