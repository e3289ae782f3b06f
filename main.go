// Package main is the entry point for the cargo-stabilize CLI.
//
// Installed on PATH it also runs as `cargo stabilize`; cargo passes the
// subcommand name as the first argument and the cmd package drops it.
package main

import "github.com/ajxudir/cargo-stabilize/cmd"

func main() {
	cmd.Execute()
}
