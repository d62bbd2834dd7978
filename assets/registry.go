package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"log"
	"sort"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	TextureEnemyBasic     = "enemy_basic"
	TextureEnemyFreezable = "enemy_freezable"
	TextureEnemySnowman   = "enemy_snowman"
	TextureIceBlock       = "ice_block"
	TextureSnowball       = "snowball"
	TexturePlayer         = "player"
)

var ErrTextureNotFound = errors.New("assets: texture not found")

//go:embed textures.yaml
var texturesYAML []byte

// Texture describes how an object is drawn and how big it is. The core
// only needs the size; the host turns the color into pixels.
type Texture struct {
	Key    string
	Width  float64
	Height float64
	Color  color.RGBA
}

// Placeholder is drawn when a texture is missing.
func Placeholder(key string) Texture {
	return Texture{Key: key, Width: 16, Height: 16, Color: colornames.Magenta}
}

// Registry holds textures by key. It is passed to whatever needs one;
// there is no package-level cache.
type Registry struct {
	textures map[string]Texture
}

func NewRegistry() *Registry {
	return &Registry{textures: make(map[string]Texture)}
}

// LoadDefault builds a registry from the embedded texture list.
func LoadDefault() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadYAML(texturesYAML); err != nil {
		return nil, err
	}
	return r, nil
}

type textureSpec struct {
	Key    string  `yaml:"key"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"`
}

type textureFile struct {
	Textures []textureSpec `yaml:"textures"`
}

// LoadYAML registers every texture in data. Entries with an unknown color
// name or no size are reported together.
func (r *Registry) LoadYAML(data []byte) error {
	var f textureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("assets: unmarshal textures: %w", err)
	}
	var errs []error
	for _, s := range f.Textures {
		c, ok := colornames.Map[s.Color]
		if !ok {
			errs = append(errs, fmt.Errorf("assets: texture %q: unknown color %q", s.Key, s.Color))
			continue
		}
		if s.Key == "" || s.Width <= 0 || s.Height <= 0 {
			errs = append(errs, fmt.Errorf("assets: texture %q: missing key or size", s.Key))
			continue
		}
		r.Register(Texture{Key: s.Key, Width: s.Width, Height: s.Height, Color: c})
	}
	return errors.Join(errs...)
}

func (r *Registry) Register(t Texture) {
	if r == nil || t.Key == "" {
		return
	}
	if r.textures == nil {
		r.textures = make(map[string]Texture)
	}
	r.textures[t.Key] = t
}

func (r *Registry) Lookup(key string) (Texture, error) {
	if r != nil {
		if t, ok := r.textures[key]; ok {
			return t, nil
		}
	}
	return Texture{}, fmt.Errorf("%w: %q", ErrTextureNotFound, key)
}

// Ensure returns the texture for key, registering build() first if the key
// is missing.
func (r *Registry) Ensure(key string, build func() Texture) Texture {
	if t, err := r.Lookup(key); err == nil {
		return t
	}
	t := build()
	t.Key = key
	r.Register(t)
	return t
}

// Resolve returns the texture for key, or logs and falls back to the
// placeholder.
func (r *Registry) Resolve(key string) Texture {
	t, err := r.Lookup(key)
	if err != nil {
		log.Printf("assets: %v, using placeholder", err)
		return Placeholder(key)
	}
	return t
}

// Keys lists registered keys in sorted order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.textures))
	for k := range r.textures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
