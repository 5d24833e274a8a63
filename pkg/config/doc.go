// Package config loads typed configuration from environment variables.
//
// Structs are described with caarlos0/env tags. An optional .env file in the
// working directory is read once through godotenv before the first parse.
// Each configuration type is parsed once and cached for the life of the
// process:
//
//	var cfg contact.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadEnv reads additional .env files explicitly. ResetCache and Reload exist
// for tests that change the process environment.
package config
