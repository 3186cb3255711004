package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/metrics"
	"github.com/lixenwraith/vi-snake/render"
	"github.com/lixenwraith/vi-snake/store"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, err := LoadConfig(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		log.Printf("exit with error: %v", err)
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.SetCrashScreen(screen)
	screen.EnableFocus()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(render.RgbBackground))

	// Persistence failure falls back to an in-memory best score
	var scores store.Store
	scores, err = store.Open(cfg.StoreKind, cfg.StorePath)
	if err != nil {
		log.Printf("high score store unavailable, scores will not persist: %v", err)
		scores = store.NewMemoryStore()
	}
	defer scores.Close()

	sound := audio.NewSoundManager(audio.LoadAudioConfig())
	if err := sound.Initialize(); err != nil {
		log.Printf("audio initialization failed: %v (continuing without audio)", err)
	} else {
		defer sound.Cleanup()
	}
	sound.SetMuted(cfg.Mute)

	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if cfg.MetricsFile != "" {
		defer func() {
			if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
				log.Printf("metrics export failed: %v", err)
			}
		}()
	}

	cols, rows := screen.Size()
	width, height := render.FieldFor(cols, rows, cfg.GridSize)

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	game := engine.NewGame(engine.GameConfig{
		Engine:     cfg.EngineConfig(width, height),
		Store:      scores,
		Sinks:      []engine.EventSink{sound, collector},
		Rand:       rng,
		OnSnapshot: collector.Observe,
	})
	// Closed before the store so the last high score is flushed
	defer game.Close()

	log.Printf("started: difficulty=%s field=%dx%d store=%s(%s)",
		cfg.Difficulty, width, height, cfg.StoreKind, cfg.StorePath)

	renderer := render.NewTerminalRenderer(screen)
	router := input.NewRouter(game, render.Measure(cfg.GridSize))

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)

	// Input polling uses raw goroutine as it interacts directly with terminal
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// Fini makes PollEvent return nil
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	renderer.RenderFrame(game.Snapshot())

	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				renderer.UpdateDimensions()
			}
			if !router.HandleEvent(ev) {
				log.Printf("quit requested")
				return nil
			}
		case snap := <-game.Snapshots():
			renderer.RenderFrame(snap)
		}
	}
}
