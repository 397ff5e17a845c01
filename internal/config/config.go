// Configuration for the photo frame, layered koanf-style:
// defaults, then config files, then PHOTOFRAME_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Random-photo API endpoint; required unless source is photoprism.
	Endpoint string `koanf:"endpoint"`
	// Photo source: "api" or "photoprism".
	Source string `koanf:"source"`

	Interval     time.Duration `koanf:"interval"`
	CacheSize    int           `koanf:"cache_size"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	Backend  string `koanf:"backend"` // "fbdev" or "x11"
	FBDevice string `koanf:"fb_device"`
	FontPath string `koanf:"font_path"`

	// When set, serve the status page on this address.
	StatusAddr string `koanf:"status_addr"`

	PhotoPrism PhotoPrismConfig `koanf:"photoprism"`
}

type PhotoPrismConfig struct {
	Domain   string `koanf:"domain"`
	Token    string `koanf:"token"`
	AlbumUID string `koanf:"album_uid"`
}

// Defaults for the caching variant: change photo every minute, keep
// fifteen prefetched.
func Defaults() Config {
	return Config{
		Source:       "api",
		Interval:     60 * time.Second,
		CacheSize:    15,
		FetchTimeout: 10 * time.Second,
		Backend:      "fbdev",
		FBDevice:     "/dev/fb0",
		FontPath:     "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	}
}

// SimpleDefaults is for the uncached variant, which fetches on the
// tick and so ticks more slowly.
func SimpleDefaults() Config {
	d := Defaults()
	d.Interval = 180 * time.Second
	d.CacheSize = 0
	return d
}

// Load reads the default config file locations over the caching
// defaults.
func Load() (*Config, error) {
	return LoadWith(Defaults(), configPaths()...)
}

// LoadSimple is Load for the uncached variant.
func LoadSimple() (*Config, error) {
	return LoadWith(SimpleDefaults(), configPaths()...)
}

// LoadWith layers the given config files (later wins) over def and
// under the environment.  Missing files are skipped.
func LoadWith(def Config, paths ...string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(def, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("can't load config defaults: %w", err)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("can't load config file %s: %w", path, err)
		}
	}

	// PHOTOFRAME_ENDPOINT -> endpoint,
	// PHOTOFRAME_PHOTOPRISM__TOKEN -> photoprism.token
	if err := k.Load(env.Provider("PHOTOFRAME_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("can't load environment config: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("can't unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Source {
	case "api":
		if c.Endpoint == "" {
			return fmt.Errorf("config: endpoint is required for the api source")
		}
	case "photoprism":
		if c.PhotoPrism.Domain == "" {
			return fmt.Errorf("config: photoprism.domain is required for the photoprism source")
		}
	default:
		return fmt.Errorf("config: unknown source %q", c.Source)
	}
	switch c.Backend {
	case "fbdev", "x11":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("config: interval must be positive")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config: cache_size must not be negative")
	}
	return nil
}

func configPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "photoframe", "config.toml"))
	}
	// ./photoframe.toml wins over the home config.
	paths = append(paths, "photoframe.toml")
	return paths
}

// envTransform maps PHOTOFRAME_* variable names to config keys; a
// double underscore separates nesting levels so that keys like
// cache_size survive.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "PHOTOFRAME_"))
	return strings.ReplaceAll(key, "__", ".")
}
