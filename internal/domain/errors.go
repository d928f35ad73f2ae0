package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrWalletRejected is returned when the user declines a signature prompt.
	ErrWalletRejected = errors.New("signature request rejected by wallet")

	// ErrProxyUnreachable wraps transport failures talking to the MPC proxy.
	ErrProxyUnreachable = errors.New("mpc proxy unreachable")

	// ErrProxyHTTP matches any *HTTPError.
	ErrProxyHTTP = errors.New("mpc proxy returned an error")

	// ErrUnknownHandle means the MPC backend has no record of the handle:
	// the private balance was never initialised.
	ErrUnknownHandle = errors.New("unknown handle: no private balance yet, perform a shielding operation first")

	// ErrMissingKey means the address has not been onboarded on this client.
	ErrMissingKey = errors.New("no AES key stored for this address, run onboarding first")

	// ErrDecryption means the output could not be decrypted with the stored key.
	ErrDecryption = errors.New("balance decryption failed")

	// ErrShortCiphertext is returned when the onboarding blob is shorter than one RSA ciphertext.
	ErrShortCiphertext = errors.New("key share ciphertext too short")

	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrUnshieldDelayed reports a poll that ran out of attempts. MPC
	// processing may still complete later.
	ErrUnshieldDelayed = errors.New("unshield submitted, MPC processing is taking longer than expected")

	// ErrUnshieldInProgress is returned when the token pair already has an active request.
	ErrUnshieldInProgress = errors.New("an unshield request for this token pair is already in progress")

	ErrAmountOutOfRange = errors.New("amount does not fit in 64 bits")
	ErrTxReverted       = errors.New("transaction reverted")

	// ErrInvalidRecipient is returned for the zero address as a destination.
	ErrInvalidRecipient = errors.New("invalid recipient address")
)

// HTTPError is a non-2xx answer from the MPC proxy.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("mpc proxy: HTTP %d: %s", e.Status, e.Body)
}

// Is lets errors.Is(err, ErrProxyHTTP) match.
func (e *HTTPError) Is(target error) bool { return target == ErrProxyHTTP }

// UserMessage maps an error to a short message fit for display.
func UserMessage(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrWalletRejected):
		return "Signature rejected. Nothing was sent."
	case errors.Is(err, ErrMissingKey):
		return "This address is not onboarded yet. Run `shieldctl onboard` first."
	case errors.Is(err, ErrUnknownHandle):
		return "No private balance yet. Shield some tokens first."
	case errors.Is(err, ErrInsufficientBalance):
		return "Insufficient balance."
	case errors.Is(err, ErrInsufficientAllowance):
		return "Insufficient allowance. Approve the token first."
	case errors.Is(err, ErrUnshieldDelayed):
		return "Unshield submitted, but MPC processing is taking longer than expected."
	case errors.Is(err, ErrUnshieldInProgress):
		return "An unshield for this token is already in progress."
	case errors.Is(err, ErrShortCiphertext):
		return "Onboarding failed: the MPC proxy returned a malformed key share."
	case errors.Is(err, ErrDecryption):
		return "Could not decrypt the balance. Try again, or onboard again if the key is stale."
	case errors.Is(err, ErrProxyUnreachable):
		return "The MPC proxy is unreachable. Try again later."
	case errors.As(err, &httpErr):
		return fmt.Sprintf("The MPC proxy returned HTTP %d.", httpErr.Status)
	case errors.Is(err, ErrTxReverted):
		return "The transaction reverted."
	case errors.Is(err, ErrAmountOutOfRange):
		return "Amount is too large."
	case errors.Is(err, ErrInvalidRecipient):
		return "Please enter a valid recipient address."
	default:
		return err.Error()
	}
}
