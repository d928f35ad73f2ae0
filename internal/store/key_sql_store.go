package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shieldwallet/internal/domain"
)

// UserKey is the row persisted by KeySQLStore.
type UserKey struct {
	Address   string `gorm:"primaryKey;size:42"`
	AESKey    []byte `gorm:"column:aes_key;not null"`
	UpdatedAt time.Time
}

func (UserKey) TableName() string { return "user_keys" }

// KeySQLStore keeps keys in a SQL database through gorm.
type KeySQLStore struct {
	db *gorm.DB
}

// OpenKeySQLStore connects to postgres at dsn and migrates the schema.
func OpenKeySQLStore(dsn string) (*KeySQLStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect key database: %w", err)
	}
	return NewKeySQLStore(db)
}

// NewKeySQLStore uses an existing connection and migrates the schema.
func NewKeySQLStore(db *gorm.DB) (*KeySQLStore, error) {
	if err := db.AutoMigrate(&UserKey{}); err != nil {
		return nil, fmt.Errorf("migrate user_keys: %w", err)
	}
	return &KeySQLStore{db: db}, nil
}

func (s *KeySQLStore) Get(addr domain.Address) (domain.AESKey, bool, error) {
	var row UserKey
	err := s.db.First(&row, "address = ?", domain.AddressKey(addr)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AESKey{}, false, nil
	}
	if err != nil {
		return domain.AESKey{}, false, err
	}
	if len(row.AESKey) != domain.AESKeySize {
		return domain.AESKey{}, false, fmt.Errorf("key for %s: want %d bytes, got %d", row.Address, domain.AESKeySize, len(row.AESKey))
	}
	var key domain.AESKey
	copy(key[:], row.AESKey)
	return key, true, nil
}

func (s *KeySQLStore) Put(addr domain.Address, key domain.AESKey) error {
	row := UserKey{Address: domain.AddressKey(addr), AESKey: key.Slice(), UpdatedAt: time.Now().UTC()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"aes_key", "updated_at"}),
	}).Create(&row).Error
}

func (s *KeySQLStore) Clear(addr domain.Address) error {
	return s.db.Delete(&UserKey{}, "address = ?", domain.AddressKey(addr)).Error
}

var _ domain.KeyStore = (*KeySQLStore)(nil)
