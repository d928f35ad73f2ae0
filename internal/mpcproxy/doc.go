// Package mpcproxy is a development stand-in for the MPC proxy.
//
// It speaks the same two endpoints as the real proxy. Instead of running an
// MPC computation it keeps one AES key per address and a ledger mapping
// balance handles to owners and plaintext amounts, seeded through
// POST /dev/handles. Signatures are checked by recovering the signer address,
// and handles missing from the ledger get the same "unknown handle" error
// text as the real backend.
package mpcproxy
