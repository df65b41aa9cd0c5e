// Screenshot daemon - captures the full screen at a fixed interval and
// stores lossless PNGs under a timestamp-partitioned tree.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"screenshotd/internal/config"
	"screenshotd/internal/daemon"
	"screenshotd/internal/display"
	"screenshotd/internal/server"
)

func main() {
	cfg := config.Load(os.Args[1:])

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// The display connection is the only long-lived resource; it is
	// acquired once and held until the process is killed.
	session, err := display.Open("")
	if err != nil {
		slog.Error("cannot open display", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	d := daemon.New(session, cfg)

	if cfg.StatusAddr != "" {
		srv := &http.Server{
			Addr:         cfg.StatusAddr,
			Handler:      server.New(d).Handler(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 0, // WebSocket pushes are long-lived
		}
		go func() {
			slog.Info("status server starting", "addr", cfg.StatusAddr)
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				slog.Error("status server error", "error", err)
			}
		}()
	}

	width, height := session.Size()
	slog.Info("screenshot daemon starting",
		"interval", cfg.Interval,
		"dir", cfg.BaseDir,
		"width", width,
		"height", height,
		"skip_unchanged", cfg.SkipUnchanged,
	)

	// Runs until the process is terminated externally; there is no normal
	// exit path past this point.
	d.Run(context.Background())
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
