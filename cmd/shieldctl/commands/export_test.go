package commands

import "shieldwallet/internal/app"

var NewRoot = newRoot

// SetWireBuilder swaps the dependency constructor and returns a restore func.
func SetWireBuilder(f func(app.Config) (*app.Wire, error)) func() {
	prev := buildWire
	buildWire = f
	return func() { buildWire = prev }
}
