// Package cli constructs the repokit command-line interface. It wires the Cobra
// root command, the Viper-backed configuration loader, and the zap logger, and
// hands the configured repository commands to the dispatch package.
package cli
