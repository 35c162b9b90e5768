// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, and env vars.
// - External errors are wrapped via this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the input CSV snapshots.
	DataDir string `koanf:"data_dir"`

	// OutputDir receives generated ranking CSV artifacts.
	OutputDir string `koanf:"output_dir"`

	// NCAAModel selects the model variant served by default:
	// weighted, final, or finalv3.
	NCAAModel string `koanf:"ncaa_model"`

	// MaxRankingLimit caps GET /rankings?limit and /goat?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// WeightOverrides replaces individual factor weights of the selected
	// model. Overridden weights are renormalized to sum to 1.
	WeightOverrides map[string]float64 `koanf:"weight_overrides"`

	// HomeCourtAdvantage is the points added to the home side in game
	// predictions.
	HomeCourtAdvantage float64 `koanf:"home_court_advantage"`

	// MarginSigma is the standard deviation of the margin distribution
	// used for win probabilities.
	MarginSigma float64 `koanf:"margin_sigma"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8090",
		DataDir:            "data",
		OutputDir:          "data",
		NCAAModel:          "finalv3",
		MaxRankingLimit:    100,
		HomeCourtAdvantage: 3.5,
		MarginSigma:        8,
	}
}
