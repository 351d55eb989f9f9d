package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/reallyoldfogie/raytrace-blocks/internal/config"
	"github.com/reallyoldfogie/raytrace-blocks/internal/feedback"
	"github.com/reallyoldfogie/raytrace-blocks/internal/interact"
	"github.com/reallyoldfogie/raytrace-blocks/loader"
)

func main() {
	configPath := flag.String("config", "raytrace-blocks.yaml", "path to config file (YAML)")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "number of rays traced in parallel")
	startFlag := flag.String("start", "", "ad-hoc ray start as x,y,z")
	dirFlag := flag.String("dir", "", "ad-hoc ray direction as x,y,z")
	radius := flag.Float64("radius", 0, "ad-hoc ray radius (defaults to the config radius)")
	interactFlag := flag.Bool("interact", false, "fire the configured player's right click and replace the struck block")
	shardExport := flag.String("shard-export", "", "split this exporter blocks.json into per-block files and exit")
	shardOut := flag.String("shard-out", "blocks", "output directory for -shard-export")
	flag.Parse()

	if *shardExport != "" {
		n, err := loader.ShardExportFile(*shardExport, *shardOut)
		if err != nil {
			log.Fatalf("shard export: %v", err)
		}
		fmt.Printf("Wrote %d block files to %s\n", n, *shardOut)
		return
	}

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

	fmt.Printf("Using config: %s\n", *configPath)
	fmt.Printf("Block states: %d\n", len(shapes))
	fmt.Printf("Chunks:       %d\n", w.ChunkCount())

	if *interactFlag {
		h, err := cfg.Handler(w, feedback.Log{Logger: log.New(os.Stdout, "", 0)})
		if err != nil {
			log.Fatalf("handler: %v", err)
		}
		p := cfg.PlayerState()
		fmt.Printf("\n=== Right click from %s ===\n", formatVec(p.Eye()))
		out, err := h.Handle(p, interact.RightClickAir)
		if err != nil {
			log.Fatalf("interact: %v", err)
		}
		if out.OK {
			fmt.Printf("replaced %s with %s\n", out.Hit.Voxel, h.ReplaceWith)
		}
		return
	}

	rays, err := cfg.Rays()
	if err != nil {
		log.Fatalf("rays: %v", err)
	}
	if *startFlag != "" || *dirFlag != "" {
		r := *radius
		if r == 0 {
			r = cfg.Radius
		}
		adhoc, err := adHocRay(*startFlag, *dirFlag, r)
		if err != nil {
			log.Fatalf("ad-hoc ray: %v", err)
		}
		rays = append(rays, adhoc)
	}
	if len(rays) == 0 {
		fmt.Println("no rays configured")
		return
	}

	fmt.Printf("\n=== Tracing %d rays on %d workers ===\n", len(rays), *workers)
	began := time.Now()
	results, err := interact.TraceAll(context.Background(), w, rays, *workers)
	if err != nil {
		log.Fatalf("trace: %v", err)
	}
	for _, r := range results {
		fmt.Println(formatResult(r))
	}
	fmt.Printf("Done in %s\n", time.Since(began))
}
