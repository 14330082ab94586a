// Command waybar-cycle prints one stored forecast day per invocation,
// advancing through the day files on each run.
package main

import (
	"flag"
	"fmt"
	"os"

	"weatherboy/datasource"
	"weatherboy/render"
	"weatherboy/store"
	"weatherboy/waybar"
)

func main() {
	configFile := flag.String("config", "", "Path to configuration file")
	dataDir := flag.String("dir", "", "Directory holding the forecast files (overrides config)")
	flag.Parse()

	_ = datasource.LoadEnv()

	config, err := datasource.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		config.DataDir = *dataDir
	}
	logger := config.Logger(os.Stderr)

	units := render.UnitsFor(config.Units)
	day, ok, err := store.New(config.DataDir, units).NextDay(config.IndexPath())
	if err != nil {
		logger.Error("failed to read forecast day", "error", err)
		os.Exit(1)
	}
	if !ok {
		// no forecast saved yet
		return
	}
	if err := waybar.Write(os.Stdout, waybar.Day(day, units)); err != nil {
		os.Exit(1)
	}
}
