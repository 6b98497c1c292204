// Package utils exposes the configuration loader and logger factory shared by the CLI.
//
// ConfigurationLoader layers embedded defaults, configuration files, dotenv files,
// and prefixed environment variables through Viper. LoggerFactory builds zap
// loggers that write to standard error.
package utils
