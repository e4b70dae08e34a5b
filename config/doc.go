// Package config loads the shell's runtime configuration.
//
// Values come, in increasing priority, from an optional config.yml, an
// optional .env file and <NAME>_* environment variables (viper + godotenv).
// Launch-critical values such as the content port, the plugin set and the
// log targets are deliberately absent: they are fixed by the bootstrapper.
//
// # Usage
//
//	var cfg config.ShellConfig
//	err := config.LoadConfig("gollama", &cfg, config.WithConfigFile(path))
//
// Environment variables use the upper-cased name as prefix with
// underscore-separated paths (e.g. GOLLAMA_LOGGING_LEVEL=debug).
package config
