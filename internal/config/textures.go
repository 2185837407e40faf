package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/greenkeeper/internal/assets"
	"github.com/Faultbox/greenkeeper/internal/engine/texture"
	"github.com/Faultbox/greenkeeper/internal/hole"
)

// TextureLoader builds the surface texture loader. It returns nil, leaving
// surfaces flat colored, when textures are disabled or the directory is missing.
func (c *Config) TextureLoader(log *zap.Logger) hole.TextureLoader {
	if log == nil {
		log = zap.NewNop()
	}
	if c.Textures.Disabled {
		return nil
	}
	m := assets.NewManager()
	if err := m.AddDir(c.Textures.Dir); err != nil {
		log.Warn("textures unavailable", zap.String("dir", c.Textures.Dir), zap.Error(err))
		return nil
	}
	return texture.NewLoader(m, c.Textures.Overrides, log)
}
