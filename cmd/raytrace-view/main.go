package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/reallyoldfogie/raytrace-blocks/internal/config"
	"github.com/reallyoldfogie/raytrace-blocks/internal/feedback"
)

func main() {
	configPath := flag.String("config", "raytrace-blocks.yaml", "path to config file (YAML)")
	mute := flag.Bool("mute", false, "disable the explosion sound")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	shapes, err := cfg.Shapes()
	if err != nil {
		log.Fatalf("load shapes: %v", err)
	}
	w, err := cfg.BuildWorld(shapes)
	if err != nil {
		log.Fatalf("build world: %v", err)
	}
	h, err := cfg.Handler(w, nil)
	if err != nil {
		log.Fatalf("handler: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v := newViewer(screen, w, h, cfg.PlayerState())
	sinks := []feedback.Sink{v}
	if !*mute {
		snd, err := feedback.NewSound()
		if err != nil {
			// Non-fatal, run without sound
			v.status = fmt.Sprintf("audio disabled: %v", err)
		} else {
			defer snd.Close()
			sinks = append(sinks, snd)
		}
	}
	h.Feedback = feedback.Multi(sinks...)

	run(v)
}

func run(v *viewer) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	v.draw()
	for ev := range events {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		case *tcell.EventResize:
			v.screen.Sync()
		}
		v.draw()
	}
}
