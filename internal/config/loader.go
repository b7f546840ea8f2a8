package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables.
const (
	EnvConfig       = "MSGGEN_CONFIG"
	EnvSource       = "MSGGEN_SOURCE"
	EnvRosmsg       = "MSGGEN_ROSMSG"
	EnvPaths        = "MSGGEN_PATHS"
	EnvMaxProcs     = "MSGGEN_MAX_PROCS"
	EnvOutputDir    = "MSGGEN_OUTPUT_DIR"
	EnvRosnodejsDir = "MSGGEN_ROSNODEJS_DIR"
	EnvCacheSize    = "MSGGEN_CACHE_SIZE"
	EnvTimestamps   = "MSGGEN_TIMESTAMPS"
)

// Environment variable prefix for msggen configuration.
const envPrefix = "MSGGEN"

// setting binds a config key to its environment variable and default.
type setting struct {
	key string
	env string
	def any
}

// settings lists every config key in display order.
var settings = []setting{
	{"source.kind", EnvSource, DefaultSourceKind},
	{"source.rosmsg", EnvRosmsg, DefaultRosmsg},
	{"source.paths", EnvPaths, []string{}},
	{"source.maxProcs", EnvMaxProcs, DefaultMaxProcs},
	{"output.dir", EnvOutputDir, DefaultOutputDir},
	{"output.rosnodejsDir", EnvRosnodejsDir, DefaultRosnodejsDir},
	{"cache.size", EnvCacheSize, DefaultCacheSize},
	{"log.timestamps", EnvTimestamps, true},
}

// EnvFor returns the environment variable overriding key, or "" when key is
// not a known setting.
func EnvFor(key string) string {
	for _, s := range settings {
		if s.key == key {
			return s.env
		}
	}
	return ""
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v    *viper.Viper
	file *viper.Viper

	// EnvFile is a dotenv file loaded into the environment before reading
	// settings. Variables already set are not overridden.
	EnvFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, s := range settings {
		_ = v.BindEnv(s.key, s.env)
		v.SetDefault(s.key, s.def)
	}

	return &Loader{v: v, file: viper.New(), EnvFile: ".env"}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values; a missing file
// leaves defaults and environment in effect.
func (l *Loader) Load(configFile string) (*Config, error) {
	if l.EnvFile != "" {
		if err := godotenv.Load(l.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", l.EnvFile, err)
		}
	}

	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	for _, v := range []*viper.Viper{l.v, l.file} {
		v.SetConfigFile(expandedPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Source.Paths = splitPaths(cfg.Source.Paths)

	return &cfg, nil
}

// splitPaths splits entries holding comma separated lists, as set through
// MSGGEN_PATHS.
func splitPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		for _, part := range strings.Split(p, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Provenance reports where the effective value of key came from and the
// lower-precedence values it shadows.
func (l *Loader) Provenance(key string) ResolvedValue {
	rv := ResolvedValue{
		Key:      key,
		Value:    l.v.Get(key),
		Source:   SourceDefault,
		Shadowed: map[ConfigSource]any{},
	}

	env := EnvFor(key)
	envValue, envSet := os.LookupEnv(env)
	inFile := l.file.IsSet(key)

	switch {
	case env != "" && envSet && envValue != "":
		rv.Source = SourceEnv
		rv.Value = envValue
		if inFile {
			rv.Shadowed[SourceConfig] = l.file.Get(key)
		}
	case inFile:
		rv.Source = SourceConfig
	}

	return rv
}

// ResolveAll returns the provenance of every setting.
func (l *Loader) ResolveAll() []ResolvedValue {
	values := make([]ResolvedValue, 0, len(settings))
	for _, s := range settings {
		values = append(values, l.Provenance(s.key))
	}
	return values
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
