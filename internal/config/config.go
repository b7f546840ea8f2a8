// Package config provides configuration loading and management.
package config

// SourceSettings selects the schema source.
type SourceSettings struct {
	// Kind is "rosmsg" or "dir".
	// Env: MSGGEN_SOURCE, Default: rosmsg
	Kind string `json:"kind,omitempty" mapstructure:"kind"`

	// Rosmsg is the rosmsg executable.
	// Env: MSGGEN_ROSMSG, Default: rosmsg
	Rosmsg string `json:"rosmsg,omitempty" mapstructure:"rosmsg"`

	// Paths are the search roots of the dir source. ~ is expanded.
	// Env: MSGGEN_PATHS (comma separated)
	Paths []string `json:"paths,omitempty" mapstructure:"paths"`

	// MaxProcs bounds concurrent rosmsg processes; 0 means unbounded.
	// Env: MSGGEN_MAX_PROCS, Default: 8
	MaxProcs int `json:"maxProcs" mapstructure:"maxProcs"`
}

// OutputConfig controls generated files.
type OutputConfig struct {
	// Dir is where generate writes <package>.js.
	// Env: MSGGEN_OUTPUT_DIR, Default: "."
	Dir string `json:"dir,omitempty" mapstructure:"dir"`

	// RosnodejsDir is the require() path of rosnodejs in generated modules.
	// Env: MSGGEN_ROSNODEJS_DIR, Default: rosnodejs
	RosnodejsDir string `json:"rosnodejsDir,omitempty" mapstructure:"rosnodejsDir"`
}

// CacheConfig sizes the source caches.
type CacheConfig struct {
	// Size is the number of entries per cache; 0 disables caching.
	// Env: MSGGEN_CACHE_SIZE, Default: 512
	Size int `json:"size" mapstructure:"size"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the msggen configuration.
// Loaded from ~/.msggen/config.yaml, validated against embedded CUE schema.
type Config struct {
	Source SourceSettings `json:"source" mapstructure:"source"`
	Output OutputConfig   `json:"output" mapstructure:"output"`
	Cache  CacheConfig    `json:"cache" mapstructure:"cache"`
	Log    LogConfig      `json:"log,omitempty" mapstructure:"log"`
}

// Default values.
const (
	DefaultSourceKind   = "rosmsg"
	DefaultRosmsg       = "rosmsg"
	DefaultMaxProcs     = 8
	DefaultOutputDir    = "."
	DefaultRosnodejsDir = "rosnodejs"
	DefaultCacheSize    = 512
)

// DefaultConfig returns a Config with all default values populated.
// Used by `msggen config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Source: SourceSettings{
			Kind:     DefaultSourceKind,
			Rosmsg:   DefaultRosmsg,
			MaxProcs: DefaultMaxProcs,
		},
		Output: OutputConfig{
			Dir:          DefaultOutputDir,
			RosnodejsDir: DefaultRosnodejsDir,
		},
		Cache: CacheConfig{Size: DefaultCacheSize},
		Log:   LogConfig{Timestamps: &timestamps},
	}
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration with env overrides applied.
	Config *Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Resolved records where each setting came from.
	Resolved []ResolvedValue

	// SourceFlag is the raw --source flag value.
	SourceFlag string

	// PathFlags are the raw --path flag values.
	PathFlags []string

	Verbose bool
}
