package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/saiko-tech/tile-picker/pkg/bspterrain"
)

const (
	SourceYAML = "yaml"
	SourceBSP  = "bsp"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	World   WorldConfig   `toml:"world"`
	Tree    TreeConfig    `toml:"tree"`
	Camera  CameraConfig  `toml:"camera"`
	Logging LoggingConfig `toml:"logging"`
}

type WorldConfig struct {
	Source     string  `toml:"source"` // "yaml" or "bsp"
	Path       string  `toml:"path"`
	MinNormalZ float32 `toml:"min_normal_z"` // bsp only
}

type TreeConfig struct {
	Size  uint32 `toml:"size"`  // 0 = derive from the world
	Exact bool   `toml:"exact"` // pick by exact line parameter instead of camera distance
}

type CameraConfig struct {
	Width      uint16  `toml:"width"`
	Height     uint16  `toml:"height"`
	Zoom       float32 `toml:"zoom"`
	Orbit      uint8   `toml:"orbit"`
	TranslateX float32 `toml:"translate_x"`
	TranslateY float32 `toml:"translate_y"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		World: WorldConfig{
			Source:     SourceYAML,
			Path:       "world.yaml",
			MinNormalZ: bspterrain.DefaultMinNormalZ,
		},
		Camera: CameraConfig{
			Width:  1280,
			Height: 720,
			Zoom:   1,
			Orbit:  3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	switch c.World.Source {
	case SourceYAML, SourceBSP:
	default:
		return errors.Wrapf(ErrInvalid, "world.source %q", c.World.Source)
	}

	if c.World.Path == "" {
		return errors.Wrap(ErrInvalid, "world.path is empty")
	}

	if c.Camera.Width == 0 || c.Camera.Height == 0 {
		return errors.Wrapf(ErrInvalid, "camera size %dx%d", c.Camera.Width, c.Camera.Height)
	}

	if c.Camera.Zoom <= 0 {
		return errors.Wrapf(ErrInvalid, "camera.zoom %v", c.Camera.Zoom)
	}

	if c.Camera.Orbit > 3 {
		return errors.Wrapf(ErrInvalid, "camera.orbit %d", c.Camera.Orbit)
	}

	return nil
}
