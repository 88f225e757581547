// Package utils exposes the ambient helpers the git-tools commands share.
//
// It houses the ConfigurationLoader (viper-backed settings with a GITTOOLS
// environment prefix), the LoggerFactory (zap loggers with an optional file
// sink), and the CommandContextAccessor that carries the resolved manifest
// path from the root command down to its subcommands.
package utils
