// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

// Command assetforge exports an asset manifest into a directory of
// output artifacts.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo"
	"github.com/juju/pubsub/v2"

	"github.com/assetforge/assetforge/core/export"
	"github.com/assetforge/assetforge/internal/config"
	"github.com/assetforge/assetforge/internal/exporters"
	"github.com/assetforge/assetforge/internal/store"
	"github.com/assetforge/assetforge/internal/version"
)

var logger = loggo.GetLogger("assetforge.cmd")

const debounce = 250 * time.Millisecond

func main() {
	os.Exit(Main(os.Args[1:]))
}

// Main runs the tool and returns the process exit code.
func Main(args []string) int {
	var (
		manifestPath  string
		configPath    string
		outputRoot    string
		watch         bool
		showVersion   bool
		loggingConfig string
	)
	f := gnuflag.NewFlagSet("assetforge", gnuflag.ContinueOnError)
	f.StringVar(&manifestPath, "manifest", "assets.yaml", "path to the asset manifest")
	f.StringVar(&configPath, "config", "assetforge.yaml", "path to the exporter configuration")
	f.StringVar(&outputRoot, "output", "", "override the configured output root")
	f.BoolVar(&watch, "watch", false, "re-export when the manifest or configuration changes")
	f.BoolVar(&showVersion, "version", false, "print version and exit")
	f.StringVar(&loggingConfig, "logging-config", "<root>=WARNING", "loggo configuration")
	if err := f.Parse(true, args); err != nil {
		if err == gnuflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if showVersion {
		fmt.Println(version.Current)
		return 0
	}
	if err := loggo.ConfigureLoggers(loggingConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	hub := pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{
		Logger: loggo.GetLogger("assetforge.hub"),
	})
	unsubscribe := subscribeProgressPrinter(hub, os.Stdout)
	defer unsubscribe()

	run := func() error {
		return runExport(hub, manifestPath, configPath, outputRoot)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "assetforge: %v\n", err)
		if !watch {
			return 1
		}
	}
	if !watch {
		return 0
	}
	if err := watchAndRerun(run, manifestPath, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "assetforge: %v\n", err)
		return 1
	}
	return 0
}

// runExport performs one full export run.
func runExport(hub *pubsub.SimpleHub, manifestPath, configPath, outputOverride string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Trace(err)
	}
	outputRoot := cfg.OutputRoot()
	if outputOverride != "" {
		outputRoot = outputOverride
	}
	graph, err := store.Load(manifestPath)
	if err != nil {
		return errors.Trace(err)
	}
	logger.Infof("loaded %d assets from %q", graph.Len(), manifestPath)

	registry := export.NewRegistry()
	exporters.RegisterAll(registry, graph, cfg)

	pipeline, err := export.NewPipeline(export.PipelineConfig{
		Registry: registry,
		Hub:      hub,
		Clock:    clock.WallClock,
	})
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(pipeline.Export(graph, cfg, outputRoot))
}

// watchAndRerun re-runs the export whenever the manifest or the
// configuration is written to, debounced so editors that write in
// several steps trigger a single run. It returns on SIGINT or SIGTERM.
func watchAndRerun(run func() error, paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Trace(err)
	}
	defer watcher.Close()
	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return errors.Annotatef(err, "watching %q", path)
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	logger.Infof("watching %d files for changes", len(paths))
	var pending <-chan time.Time
	for {
		select {
		case <-interrupt:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = clock.WallClock.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watch error: %v", err)
		case <-pending:
			pending = nil
			if err := run(); err != nil {
				fmt.Fprintf(os.Stderr, "assetforge: %v\n", err)
			}
		}
	}
}
