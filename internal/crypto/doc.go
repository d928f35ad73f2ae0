// Package crypto exposes the primitives of the privacy protocol.
//
// Contents
//
//   - RSA-2048 onboarding key pairs and key-share reconstruction
//     (GenerateRSAKeyPair, SplitKeyShares, ReconstructUserKey, EncryptKeyShares)
//   - The masked AES-128 integer scheme used for balances and transfer amounts
//     (Encrypt, Decrypt, EncryptUint, DecryptUint)
//   - Transfer message packing (BuildTransferMessage, PrepareTransfer)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short key fingerprints for display (Fingerprint)
//
// # Notes
//
// Amounts are encoded big-endian everywhere, matching the 32-byte handle
// encoding. Each Encrypt call draws fresh randomness from crypto/rand.
package crypto
