//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"riverflow/internal/app"
	"riverflow/internal/rivers"
	"riverflow/internal/terrain"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	riverCfg := rivers.DefaultConfig()
	if cfg.ConfigPath != "" {
		loaded, err := rivers.LoadFile(cfg.ConfigPath)
		if err != nil {
			log.Fatal(err)
		}
		riverCfg = loaded
	}
	if cfg.Seed != 0 {
		riverCfg.Seed = cfg.Seed
	}

	terrainCfg := terrain.DefaultConfig()
	terrainCfg.Seed = riverCfg.Seed
	field := terrain.New(terrainCfg)

	scene := rivers.NewScene(riverCfg, field)
	scene.OnEditError(func(err error) { log.Printf("edit rejected: %v", err) })
	if cfg.Demo {
		seedDemoNetwork(scene, terrainCfg.Size)
	}

	game := app.New(scene, field, cfg.Scale, cfg.TPS, riverCfg.Seed)

	side := (terrainCfg.Resolution + 1) * cfg.Scale
	ebiten.SetWindowTitle("riverflow")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(side, side)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// seedDemoNetwork queues a small branching network so the scene flows
// immediately. Positions are fractions of the terrain extent.
func seedDemoNetwork(scene *rivers.Scene, size float64) {
	scene.Edit(func(g *rivers.Graph) error {
		at := func(fx, fz float64) rivers.NodeID {
			return g.AddNode(fx*size, fz*size)
		}
		a := at(0.15, 0.18)
		b := at(0.38, 0.32)
		c := at(0.62, 0.28)
		d := at(0.55, 0.55)
		e := at(0.80, 0.62)
		f := at(0.48, 0.82)

		pairs := [][2]rivers.NodeID{
			{a, b}, {c, b}, {b, d}, {d, e}, {d, f},
		}
		for _, p := range pairs {
			if _, err := g.AddEdge(p[0], p[1]); err != nil {
				return err
			}
		}
		return nil
	})
	scene.ApplyEdits()
}
