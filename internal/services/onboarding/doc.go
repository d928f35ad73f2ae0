// Package onboarding obtains the user's AES key from the MPC network.
//
// A fresh RSA key pair is generated per attempt, its public half is signed by
// the wallet and sent to the proxy, and the two returned shares are decrypted
// and combined into the key. Only a fully reconstructed key is stored.
package onboarding
