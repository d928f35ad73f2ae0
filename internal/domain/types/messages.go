package types

// OnboardRequest is the body of POST /onboard.
type OnboardRequest struct {
	RSAPublicKey  string `json:"rsa_public_key"` // base64 DER SubjectPublicKeyInfo
	UserSignature string `json:"user_signature"` // base64 65-byte wallet signature
}

// OnboardResponse is the success body of POST /onboard.
type OnboardResponse struct {
	RSACiphertexts string `json:"rsa_ciphertexts"` // base64 share0||share1
	Message        string `json:"message"`
}

// EncryptToUserRequest is the body of POST /encrypt-to-user.
type EncryptToUserRequest struct {
	Handle        string `json:"handle"` // base64 of the 32-byte handle
	ChainID       uint64 `json:"chain_id"`
	UserSignature string `json:"user_signature"`
}

// EncryptToUserResponse is the success body of POST /encrypt-to-user.
type EncryptToUserResponse struct {
	Output string `json:"output"` // base64 ciphertext||randomness under the user key
}
