package crypto

import (
	"fmt"

	"shieldwallet/internal/domain"
)

// BuildTransferMessage returns the packed (non-padded) encoding of
// (address sender, address contract, uint256 encrypted): 20 + 20 + 32 bytes.
// The verifying contract rebuilds exactly these bytes, so the layout is fixed.
func BuildTransferMessage(msg domain.TransferMessage) []byte {
	out := make([]byte, 0, domain.TransferMessageLength)
	out = append(out, msg.Sender[:]...)
	out = append(out, msg.Contract[:]...)
	word := msg.Encrypted.Bytes32()
	return append(out, word[:]...)
}

// PrepareTransfer encrypts amount for sender and builds the message to sign.
// Apart from the randomness drawn by EncryptUint it is a pure function.
func PrepareTransfer(
	key domain.AESKey,
	sender domain.Address,
	contract domain.Address,
	amount uint64,
) (domain.EncryptedAmount, domain.TransferMessage, error) {
	enc, err := EncryptUint(key, amount)
	if err != nil {
		return domain.EncryptedAmount{}, domain.TransferMessage{}, fmt.Errorf("encrypting amount: %w", err)
	}
	msg := domain.TransferMessage{
		Sender:    sender,
		Contract:  contract,
		Encrypted: enc.Int(),
	}
	return enc, msg, nil
}
