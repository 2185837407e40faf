// holetool assembles a golf hole without a display and reports what was built.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/config"
	"github.com/Faultbox/greenkeeper/internal/hole"
	"github.com/Faultbox/greenkeeper/internal/logger"
	"github.com/Faultbox/greenkeeper/internal/scoring"
)

var (
	shots        shotList
	flagDump     = flag.Bool("dump", false, "Print the hole as an authoritative YAML payload")
	flagSave     = flag.String("save", "", "Write the authoritative payload to this file")
	flagTextures = flag.Duration("textures", 0, "Wait up to this long for surface textures and report failures")
)

func init() {
	flag.Var(&shots, "shot", "Score a landing at x,z[,surface] in meters (repeatable)")
	flag.Usage = printUsage
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("holetool failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	holeCfg, err := cfg.HoleConfig()
	if err != nil {
		return err
	}

	var loader hole.TextureLoader
	if *flagTextures > 0 {
		loader = cfg.TextureLoader(logger.Log)
	}

	scene := hole.NewMemoryScene()
	h := hole.New(scene, nil, loader,
		hole.WithLogger(logger.Log),
		hole.WithPlacement(cfg.Placement),
		hole.WithTerrain(cfg.Terrain),
	)
	report, err := h.Load(holeCfg)
	if err != nil {
		return err
	}

	if *flagTextures > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), *flagTextures)
		err := h.AwaitTextures(ctx)
		cancel()
		if err != nil {
			logger.Warn("textures still loading", zap.Int("pending", h.PendingTextures()), zap.Error(err))
		}
	}

	frozen := freeze(holeCfg, h)
	if *flagSave != "" {
		if err := frozen.SaveTo(*flagSave); err != nil {
			return err
		}
		logger.Info("payload saved", zap.String("path", *flagSave))
	}
	if *flagDump {
		data, err := frozen.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	out := os.Stdout
	writeReport(out, h, report)

	if len(shots) > 0 {
		scorer := scoring.New(h, logger.Log)
		scorer.Initialize(holeCfg.TargetDistance)
		writeShots(out, h, scorer, shots)
		scorer.Terminate()
	}
	return nil
}

// freeze returns cfg with the placed obstacles recorded, so loading it again
// rebuilds exactly this hole.
func freeze(cfg hole.Config, h *hole.Instance) hole.Config {
	cfg.Obstacles = placementsOf(h.Obstacles())
	return cfg
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `holetool - assemble a golf hole and report it

Usage:
  holetool [options]

Examples:
  holetool -seed 7 -distance 380
  holetool -payload hole.yaml -shot 2,148 -shot 10,90,water
  holetool -seed 7 -dump > hole.yaml

Options:`)
	flag.PrintDefaults()
}
