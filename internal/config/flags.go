package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagScene    = flag.String("scene", "", "Path to scene file")
	flagTicks    = flag.Uint64("ticks", 0, "Number of ticks to run (overrides config)")
	flagTickRate = flag.Int("tickrate", 0, "Ticks per second")
	flagRealtime = flag.Bool("realtime", false, "Pace ticks to the wall clock")
	flagForever  = flag.Bool("forever", false, "Run until interrupted")
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
	if *flagScene != "" {
		cfg.Sim.Scene = *flagScene
	}
	if *flagTicks > 0 {
		cfg.Sim.Ticks = *flagTicks
	}
	if *flagTickRate > 0 {
		cfg.Sim.TickRate = *flagTickRate
	}
	if *flagRealtime {
		cfg.Sim.Realtime = true
	}
	if *flagForever {
		cfg.Sim.Ticks = 0
	}
}
