package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log-file", "", "Also log to this file")
	flagLogFormat = flag.String("log-format", "", "Log format: console or json")
	flagDice      = flag.Int("dice", 0, "Number of dice")
	flagSegments  = flag.Int("segments", 0, "Subdivisions per cube edge")
	flagSeed      = flag.Uint64("seed", 0, "Throw seed (0 seeds from the clock)")
	flagSize      = flag.Int("size", 0, "Preview image size in pixels")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.File = *flagLogFile
	}
	if *flagLogFormat != "" {
		cfg.Logging.Format = *flagLogFormat
	}
	if *flagDice > 0 {
		cfg.Shape.DiceCount = *flagDice
	}
	if *flagSegments > 0 {
		cfg.Shape.Segments = *flagSegments
	}
	if *flagSeed != 0 {
		cfg.Roll.Seed = *flagSeed
	}
	if *flagSize > 0 {
		cfg.Preview.Size = *flagSize
	}
}
