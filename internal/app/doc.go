// Package app wires application dependencies for the CLI.
//
// It loads Config from JSON, builds the key store, the MPC proxy client and
// the chain client, and exposes the protocol services through Wire.
package app
