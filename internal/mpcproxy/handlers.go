package mpcproxy

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/units"
	"shieldwallet/internal/wallet"
)

func (s *Server) handleOnboard(c *gin.Context) {
	var req domain.OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request: %v", err)
		return
	}
	der, err := crypto.FromB64(req.RSAPublicKey)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid rsa_public_key: %v", err)
		return
	}
	pub, err := crypto.ParseRSAPublicKey(der)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid rsa_public_key: %v", err)
		return
	}
	user, ok := recoverSigner(c, req.RSAPublicKey, req.UserSignature)
	if !ok {
		return
	}

	key, err := s.userKey(user)
	if err != nil {
		c.String(http.StatusInternalServerError, "key issue failed: %v", err)
		return
	}
	blob, err := crypto.EncryptKeyShares(pub, key)
	if err != nil {
		c.String(http.StatusInternalServerError, "share encryption failed: %v", err)
		return
	}
	c.JSON(http.StatusOK, domain.OnboardResponse{
		RSACiphertexts: crypto.B64(blob),
		Message:        "onboarded " + user.Hex(),
	})
}

func (s *Server) handleEncryptToUser(c *gin.Context) {
	var req domain.EncryptToUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request: %v", err)
		return
	}
	if s.chainID != 0 && req.ChainID != s.chainID {
		c.String(http.StatusBadRequest, "unsupported chain_id %d", req.ChainID)
		return
	}
	raw, err := crypto.FromB64(req.Handle)
	if err != nil || len(raw) != 32 {
		c.String(http.StatusBadRequest, "handle must be 32 bytes of base64")
		return
	}
	user, ok := recoverSigner(c, req.Handle, req.UserSignature)
	if !ok {
		return
	}

	entry, found := s.lookup(domain.HandleFromBytes(raw))
	if !found {
		c.String(http.StatusInternalServerError, UnknownHandleBody)
		return
	}
	if entry.Owner != user {
		c.String(http.StatusForbidden, "handle does not belong to %s", user.Hex())
		return
	}
	key, exists, err := s.keys.Get(user)
	if err != nil {
		c.String(http.StatusInternalServerError, "key lookup failed: %v", err)
		return
	}
	if !exists {
		c.String(http.StatusBadRequest, "user %s is not onboarded", user.Hex())
		return
	}
	enc, err := crypto.EncryptUint(key, entry.Amount)
	if err != nil {
		c.String(http.StatusInternalServerError, "encryption failed: %v", err)
		return
	}
	out := enc.Bytes()
	c.JSON(http.StatusOK, domain.EncryptToUserResponse{Output: crypto.B64(out[:])})
}

// SeedRequest is the body of POST /dev/handles.
type SeedRequest struct {
	Handle string         `json:"handle" binding:"required"` // decimal or 0x hex
	Owner  domain.Address `json:"owner"`
	Amount uint64         `json:"amount"`
}

func (s *Server) handleSeed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request: %v", err)
		return
	}
	v, err := units.ParseBase(req.Handle)
	if err != nil || v.IsZero() {
		c.String(http.StatusBadRequest, "invalid handle %q", req.Handle)
		return
	}
	handle := domain.HandleFromInt(v)
	s.SeedHandle(handle, req.Owner, req.Amount)
	c.JSON(http.StatusCreated, gin.H{"handle": handle.Hex(), "owner": req.Owner.Hex(), "amount": req.Amount})
}

// recoverSigner checks the base64 signature over msg and returns its signer.
func recoverSigner(c *gin.Context, msg, sigB64 string) (domain.Address, bool) {
	sig, err := crypto.FromB64(strings.TrimSpace(sigB64))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid user_signature: %v", err)
		return domain.Address{}, false
	}
	addr, err := wallet.RecoverAddress([]byte(msg), sig)
	if err != nil {
		c.String(http.StatusUnauthorized, "signature verification failed: %v", err)
		return domain.Address{}, false
	}
	return addr, true
}
