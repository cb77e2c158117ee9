// Package analytics provides privacy-first page-view counting for tenant
// public sites. Visitors are identified only by a salted hash of their IP;
// the salt is generated per installation and never leaves the database.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// salt holds the per-installation random salt for IP hashing, protected by
// sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any views are recorded.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			raw := make([]byte, 32)
			if _, err := rand.Read(raw); err != nil {
				initErr = fmt.Errorf("generate hash salt: %w", err)
				return
			}
			s = hex.EncodeToString(raw)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("persist hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

// HashVisitor returns the salted hash identifying a visitor IP.
func HashVisitor(ip string) string {
	sum := sha256.Sum256([]byte(salt.value + ip))
	return hex.EncodeToString(sum[:])
}
