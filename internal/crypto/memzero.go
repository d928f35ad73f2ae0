package crypto

import "runtime"

// Wipe zeroes each buffer in turn. Best-effort: the KeepAlive keeps the
// writes from being treated as dead stores.
//
//go:noinline
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
	runtime.KeepAlive(bufs)
}
