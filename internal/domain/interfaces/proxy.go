package interfaces

import (
	"context"

	domaintypes "shieldwallet/internal/domain/types"
)

// ProxyClient talks to the two MPC proxy endpoints. It performs no retries.
type ProxyClient interface {
	Onboard(
		ctx context.Context,
		rsaPublicKeyB64 string,
		signatureB64 string,
	) (domaintypes.OnboardResponse, error)
	EncryptToUser(
		ctx context.Context,
		handleB64 string,
		chainID uint64,
		signatureB64 string,
	) (domaintypes.EncryptToUserResponse, error)
}
