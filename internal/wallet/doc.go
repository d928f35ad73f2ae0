// Package wallet provides the signer the protocol services talk to.
//
// LocalSigner holds a secp256k1 key, produces EIP-191 personal_sign
// signatures in r||s||v order and signs transactions with go-ethereum's
// latest signer for the chain. Its key file is sealed under a passphrase.
// ConfirmingSigner wraps any signer with an interactive approval prompt;
// declining returns domain.ErrWalletRejected.
package wallet
