// Package dispatch runs the interactive repository menu.
//
// A Dispatcher loops over menu selections and carries out one action per
// selection: listing repositories, adding topics, changing the default
// branch, enabling repository features, or printing statistics. The package
// also exposes cobra command builders for the interactive menu and for the
// one-shot list and stats subcommands.
package dispatch
