// Package balance reads public balances and decrypts private balance handles.
//
// A private balance is an opaque handle on chain. To read it the wallet signs
// the handle, the MPC proxy re-encrypts the underlying value under the user's
// AES key, and the result is decrypted locally. A zero handle means no private
// balance was ever created and is answered locally with 0.
package balance
