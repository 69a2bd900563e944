// Package config defines the explicit configuration object the rest of
// yhdl is handed. Defaults, a TOML file and YHDL_* environment
// variables layer in that order:
//
//	cfg := config.Default()
//	cfg, _ = config.Load("config.toml") // Load starts from Default
//	cfg = cfg.ApplyEnv()
//
// Nothing reads configuration ambiently; the CLI builds one Config and
// passes it down.
package config
