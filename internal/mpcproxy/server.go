package mpcproxy

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// UnknownHandleBody is the error text returned for handles not in the ledger.
const UnknownHandleBody = "rpc error: code = Unknown desc = unknown handle"

type ledgerEntry struct {
	Owner  domain.Address
	Amount uint64
}

// Server holds the development proxy state.
type Server struct {
	keys    domain.KeyStore
	chainID uint64

	mu     sync.RWMutex
	ledger map[string]ledgerEntry
}

// New returns a proxy that issues keys into keys and accepts chainID only.
// A zero chainID accepts any chain.
func New(keys domain.KeyStore, chainID uint64) *Server {
	return &Server{keys: keys, chainID: chainID, ledger: make(map[string]ledgerEntry)}
}

// SeedHandle records that handle decrypts to amount for owner.
func (s *Server) SeedHandle(handle domain.BalanceHandle, owner domain.Address, amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger[handle.Hex()] = ledgerEntry{Owner: owner, Amount: amount}
}

func (s *Server) lookup(handle domain.BalanceHandle) (ledgerEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.ledger[handle.Hex()]
	return e, ok
}

// userKey returns the key of addr, creating one on first use.
func (s *Server) userKey(addr domain.Address) (domain.AESKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok, err := s.keys.Get(addr)
	if err != nil || ok {
		return key, err
	}
	if _, err := rand.Read(key[:]); err != nil {
		return domain.AESKey{}, fmt.Errorf("generate user key: %w", err)
	}
	if err := s.keys.Put(addr, key); err != nil {
		return domain.AESKey{}, err
	}
	return key, nil
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	router.POST("/onboard", s.handleOnboard)
	router.POST("/encrypt-to-user", s.handleEncryptToUser)
	router.POST("/dev/handles", s.handleSeed)

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start),
		}).Info("request")
	}
}
