package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/samdwyer/generals/internal/world"
)

// EnvPrefix prefixes every environment override, e.g. GENERALS_BOARD_SIZE
// or GENERALS_LOG_LEVEL.
const EnvPrefix = "GENERALS"

// Loader reads configuration through viper.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader creates a loader. An empty path means defaults plus environment only.
func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	}
	return &Loader{v: v, path: path}
}

// Load reads the file, if any, and returns the validated configuration.
func (l *Loader) Load() (*Config, error) {
	if l.path != "" {
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", l.path, err)
		}
	}
	return l.decode()
}

// OnChange watches the config file and calls fn with the reloaded
// configuration, or with the error that prevented reloading. It does
// nothing when the loader has no file.
func (l *Loader) OnChange(fn func(*Config, error)) {
	if l.path == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(l.decode())
	})
	l.v.WatchConfig()
}

// BindFlags lets flags that were set on the command line override the
// file and environment. A flag named "board-size" binds board_size and
// "log-level" binds log.level; flags matching no key are skipped.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	keys := make(map[string]bool)
	for _, k := range l.v.AllKeys() {
		keys[k] = true
	}

	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !keys[key] {
			key = strings.Replace(f.Name, "-", ".", 1)
			key = strings.ReplaceAll(key, "-", "_")
		}
		if keys[key] {
			err = l.v.BindPFlag(key, f)
		}
	})
	return err
}

// Load is a shorthand for NewLoader(path).Load().
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("board_size", world.DefaultSize)
	v.SetDefault("players", 2)
	v.SetDefault("tick_interval", "500ms")
	v.SetDefault("frame_rate", 30)

	t := world.DefaultTerrain
	v.SetDefault("terrain.open_weight", t.OpenWeight)
	v.SetDefault("terrain.mountain_weight", t.MountainWeight)
	v.SetDefault("terrain.fortress_weight", t.FortressWeight)
	v.SetDefault("terrain.fortress_min", t.FortressMin)
	v.SetDefault("terrain.fortress_max", t.FortressMax)
	v.SetDefault("terrain.king_units", t.KingUnits)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.dev", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.compress", false)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.headers", "")
}
