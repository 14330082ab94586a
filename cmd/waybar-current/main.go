// Command waybar-current prints the current condition as a waybar payload.
// Any failure prints the fallback payload so the bar never breaks.
package main

import (
	"context"
	"flag"
	"io"
	"os"

	"weatherboy/datasource"
	"weatherboy/waybar"
)

func main() {
	configFile := flag.String("config", "", "Path to configuration file")
	verbose := flag.Bool("v", false, "Log errors to stderr")
	flag.Parse()

	_ = datasource.LoadEnv()

	config, err := datasource.Load(*configFile)
	if err != nil {
		_ = waybar.Write(os.Stdout, waybar.Unavailable)
		return
	}

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	logger := config.Logger(logOut)

	ctx, cancel := context.WithTimeout(context.Background(), config.HTTPTimeout.Duration)
	defer cancel()

	source := config.ConditionSource()
	cond, err := source.CurrentCondition(ctx, config.Location)
	if err != nil {
		logger.Warn("current condition unavailable", "provider", source.Name(), "error", err)
		_ = waybar.Write(os.Stdout, waybar.Unavailable)
		return
	}
	_ = waybar.Write(os.Stdout, waybar.Current(cond))
}
