package store_test

import (
	"bytes"
	"errors"
	"testing"

	"shieldwallet/internal/store"
)

func TestSealSecret_RoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	sealed, err := store.SealSecret("pw", secret)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealed, secret) {
		t.Fatal("plaintext visible in envelope")
	}

	got, err := store.OpenSecret("pw", sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("got %x, want %x", got, secret)
	}

	if _, err := store.OpenSecret("other", sealed); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("wrong passphrase: got %v", err)
	}
}

func TestSealSecret_EmptyPassphrase(t *testing.T) {
	if _, err := store.SealSecret("", []byte{1}); err == nil {
		t.Fatal("empty passphrase accepted")
	}
}
