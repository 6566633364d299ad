package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/waitline/waitline/internal/app"
	"github.com/waitline/waitline/internal/config"
	"github.com/waitline/waitline/internal/prefs"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the waitline config file")
	envPath := flag.String("env", "", "path to a .env file with API settings")
	prefsPath := flag.String("prefs", prefs.DefaultPath(), "path to the UI preferences file")
	pollEvery := flag.Int("poll", 0, "refresh interval in seconds (overrides config)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Options{
		ConfigPath: *configPath,
		EnvPath:    *envPath,
		PrefsPath:  *prefsPath,
		PollEvery:  *pollEvery,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "waitline: %v\n", err)
		os.Exit(1)
	}
}
