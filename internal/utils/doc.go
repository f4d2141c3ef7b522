// Package utils exposes helpers shared by the winopen command-line interface.
//
// ConfigurationLoader layers embedded defaults, a YAML file, and WINOPEN_*
// environment variables through Viper; LoggerFactory builds zap loggers in
// structured or console form.
package utils
