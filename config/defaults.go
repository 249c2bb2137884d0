package config

import "time"

// Default returns the default app configuration.
//
// The default UI selection is empty: the form starts with no asset chosen
// so the balance line reads "0" until the user picks one.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Registry: RegistryConfig{
			Path: "",
		},
		Balances: BalancesConfig{
			Path: "",
			// Nonzero so the pending placeholder is observable with the
			// in-memory provider.
			Latency: 500 * time.Millisecond,
		},
		UI: UIConfig{},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}
