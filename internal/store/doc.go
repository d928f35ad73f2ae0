// Package store persists the per-address AES user keys.
//
// KeyFileStore is the default backend: a single JSON map sealed with a
// passphrase (scrypt + ChaCha20-Poly1305) and replaced atomically on every
// write. KeyMemoryStore backs tests and the development proxy. KeySQLStore
// keeps the same records in postgres through gorm. Every record is scoped by
// the lower-case hex address.
package store
