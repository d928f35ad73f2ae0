// Package transfer builds and submits private transfers.
//
// The amount is encrypted under the sender's AES key, packed with the sender
// and token addresses into the 72-byte message the token contract verifies,
// signed by the wallet and submitted as transfer(to, (ciphertext, signature)).
package transfer
