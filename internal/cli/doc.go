// Package cli implements the pulse subcommands. Each command maps onto one
// or two client calls; --json prints the fetched records verbatim and the
// default output renders them for terminals.
package cli
