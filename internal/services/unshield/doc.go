// Package unshield converts private balance back to public tokens and waits
// for the MPC network to settle the request.
//
// Settlement is observed by polling the owner's public balance after the
// unshield transaction is mined: the first change marks the request
// succeeded, and running out of attempts marks it timed out, which means
// delayed rather than failed. The Tracker allows at most one active request
// per owner and token pair.
package unshield
