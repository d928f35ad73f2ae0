package domain

import (
	interfaces "shieldwallet/internal/domain/interfaces"
	types "shieldwallet/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Address               = types.Address
	TxHash                = types.TxHash
	Receipt               = types.Receipt
	AESKey                = types.AESKey
	KeyPair               = types.KeyPair
	UserKeyRecord         = types.UserKeyRecord
	BalanceHandle         = types.BalanceHandle
	EncryptedAmount       = types.EncryptedAmount
	TransferMessage       = types.TransferMessage
	PreparedTransfer      = types.PreparedTransfer
	TokenPair             = types.TokenPair
	BalanceOverview       = types.BalanceOverview
	UnshieldState         = types.UnshieldState
	UnshieldRequest       = types.UnshieldRequest
	OnboardRequest        = types.OnboardRequest
	OnboardResponse       = types.OnboardResponse
	EncryptToUserRequest  = types.EncryptToUserRequest
	EncryptToUserResponse = types.EncryptToUserResponse
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyStore           = interfaces.KeyStore
	ProxyClient        = interfaces.ProxyClient
	Signer             = interfaces.Signer
	PublicToken        = interfaces.PublicToken
	PrivateToken       = interfaces.PrivateToken
	Chain              = interfaces.Chain
	OnboardingService  = interfaces.OnboardingService
	BalanceService     = interfaces.BalanceService
	TransferService    = interfaces.TransferService
	ShieldService      = interfaces.ShieldService
	UnshieldService    = interfaces.UnshieldService
	PublicTokenService = interfaces.PublicTokenService
)

// Unshield states.
const (
	UnshieldRequested = types.UnshieldRequested
	UnshieldSucceeded = types.UnshieldSucceeded
	UnshieldFailed    = types.UnshieldFailed
	UnshieldTimedOut  = types.UnshieldTimedOut
)

// Sizes shared across packages.
const (
	AddressLength         = types.AddressLength
	AESKeySize            = types.AESKeySize
	TransferMessageLength = types.TransferMessageLength

	DefaultPublicDecimals  = types.DefaultPublicDecimals
	DefaultPrivateDecimals = types.DefaultPrivateDecimals
)

// Constructors re-exported from the types subpackage.
var (
	ParseAddress             = types.ParseAddress
	AddressKey               = types.AddressKey
	IsZeroAddress            = types.IsZeroAddress
	BytesToAddress           = types.BytesToAddress
	ParseAESKey              = types.ParseAESKey
	HandleFromBytes          = types.HandleFromBytes
	HandleFromInt            = types.HandleFromInt
	EncryptedAmountFromInt   = types.EncryptedAmountFromInt
	EncryptedAmountFromBytes = types.EncryptedAmountFromBytes
	NewUnshieldRequest       = types.NewUnshieldRequest
)
