// Package config loads asyncseq program configuration.
//
// It uses Viper to read a config.yml found under cmd/<name>, config/ or the
// working directory, then ASEQ_ environment variables
// (optionally from a .env file), then any command-line flags the user set,
// each layer overriding the one before.
//
// # Usage
//
//	cfg, err := config.Load("asyncseq", config.WithFlags(flags, map[string]string{
//		"logging.level": "log-level",
//	}))
//
// Nested keys map to underscore-separated variables, so
// ASEQ_EXECUTOR_KIND=pool sets executor.kind.
package config
