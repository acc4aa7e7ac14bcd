// Command pickprobe loads a world, builds its picking tree and reports what
// lies under a set of screen points.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/saiko-tech/tile-picker/internal/config"
	"github.com/saiko-tech/tile-picker/pkg/bspterrain"
	"github.com/saiko-tech/tile-picker/pkg/camera"
	"github.com/saiko-tech/tile-picker/pkg/picking"
	"github.com/saiko-tech/tile-picker/pkg/terrain"
)

// bspCellUnits is the world size of one tree cell for BSP maps.
const bspCellUnits = 64

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pickprobe", flag.ContinueOnError)
	cfgPath := fs.String("config", "pickprobe.toml", "config file")

	var points screenPoints
	fs.Var(&points, "at", "screen point x,y to pick at (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	defer log.Sync() //nolint:errcheck

	world, size, err := loadWorld(cfg.World, log)
	if err != nil {
		return err
	}

	if cfg.Tree.Size != 0 {
		size = cfg.Tree.Size
	}

	tree := picking.NewTreeForWorld(world, size, log)

	cam, err := newCamera(cfg.Camera)
	if err != nil {
		return err
	}

	for _, p := range points {
		if err := probe(tree, cam, p, cfg.Tree.Exact, log); err != nil {
			return err
		}
	}

	return nil
}

// loadWorld loads the configured world and returns it with its natural tree size.
func loadWorld(cfg config.WorldConfig, log *zap.Logger) (picking.World, uint32, error) {
	switch cfg.Source {
	case config.SourceBSP:
		m, err := bspterrain.LoadMap(cfg.Path, cfg.MinNormalZ, log)
		if err != nil {
			return nil, 0, err
		}

		return m, bspTreeSize(m), nil

	default:
		w, err := terrain.LoadFile(cfg.Path)
		if err != nil {
			return nil, 0, err
		}

		log.Info("loaded terrain", zap.String("path", cfg.Path), zap.Uint32("cells", w.Cells()))

		return w, w.Cells(), nil
	}
}

func bspTreeSize(m *bspterrain.Map) uint32 {
	b := m.Bounds()
	extent := max(b.Max.X()-b.Min.X(), b.Max.Y()-b.Min.Y())

	return uint32(math.Ceil(float64(extent) / bspCellUnits))
}

func newCamera(cfg config.CameraConfig) (*camera.Camera, error) {
	cam, err := camera.New(cfg.Width, cfg.Height, cfg.Zoom)
	if err != nil {
		return nil, err
	}

	if err := cam.OrbitTo(cfg.Orbit); err != nil {
		return nil, err
	}

	cam.Translate(mgl32.Vec2{cfg.TranslateX, cfg.TranslateY})

	return cam, nil
}

func probe(tree *picking.Tree, cam *camera.Camera, p mgl32.Vec2, exact bool, log *zap.Logger) error {
	line, err := cam.Unproject(p)
	if err != nil {
		return errors.Wrapf(err, "unproject %v", p)
	}

	var (
		hit picking.Hit
		ok  bool
	)
	if exact {
		hit, ok = tree.NearestHit(line)
	} else {
		hit, ok = tree.IntersectsLine(line, cam)
	}

	if !ok {
		log.Info("miss", zap.Float32("x", p.X()), zap.Float32("y", p.Y()))
		return nil
	}

	box := hit.Target.BoundingBox()
	log.Info("hit",
		zap.Float32("x", p.X()),
		zap.Float32("y", p.Y()),
		zap.Stringer("kind", hit.Target.Kind()),
		zap.String("at", fmt.Sprintf("%.3f,%.3f,%.3f", hit.At.X(), hit.At.Y(), hit.At.Z())),
		zap.String("box_min", fmt.Sprintf("%.3f,%.3f,%.3f", box.Min.X(), box.Min.Y(), box.Min.Z())),
		zap.String("box_max", fmt.Sprintf("%.3f,%.3f,%.3f", box.Max.X(), box.Max.Y(), box.Max.Z())),
	)

	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
