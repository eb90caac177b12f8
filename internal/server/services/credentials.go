// Package services contains server-side business logic. This file implements
// CredentialService, which handles user signup and password authentication.
package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/fleettrack/internal/common"
	"github.com/dmitrijs2005/fleettrack/internal/server/config"
	"github.com/dmitrijs2005/fleettrack/internal/server/models"
	"github.com/dmitrijs2005/fleettrack/internal/server/repositories/repomanager"
)

const (
	saltSize = 32
	keySize  = 32
)

// CredentialService provides authentication-related operations:
// - SignUp: create users with a salted, slowly derived password key
// - Authenticate: verify a password against the stored salt and key
//
// Passwords are hashed with PBKDF2-HMAC-SHA256. The plaintext password is
// never persisted, logged, or returned.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	iterations  int
}

// NewCredentialService constructs a CredentialService using repositories and
// server config. The iteration count comes from config, which enforces the
// lower bound.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *CredentialService {
	return &CredentialService{
		db:          db,
		repomanager: m,
		iterations:  cfg.KDFIterations,
	}
}

// SignUp creates a new user with a fresh 32-byte random salt and the derived
// verification key, both stored hex-encoded. A taken username yields
// common.ErrDuplicateUsername.
func (s *CredentialService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	salt := common.GenerateRandByteArray(saltSize)
	key := s.deriveKey(password, salt)

	user := &models.User{
		UserName: username,
		Salt:     hex.EncodeToString(salt),
		Key:      hex.EncodeToString(key),
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate looks up the user and recomputes the derived key from the
// supplied password and the stored salt. An unknown username yields
// common.ErrUserNotFound, a mismatching key common.ErrInvalidPassword.
// The key comparison is constant-time.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.ErrInternal
	}

	salt, err := hex.DecodeString(user.Salt)
	if err != nil {
		return nil, common.ErrInternal
	}
	stored, err := hex.DecodeString(user.Key)
	if err != nil {
		return nil, common.ErrInternal
	}

	candidate := s.deriveKey(password, salt)
	if !s.checkKey(stored, candidate) {
		return nil, common.ErrInvalidPassword
	}

	return user, nil
}

// --- helpers below ---

func (s *CredentialService) deriveKey(password string, salt []byte) []byte {
	buf := []byte(password)
	defer common.WipeByteArray(buf)
	return pbkdf2.Key(buf, salt, s.iterations, keySize, sha256.New)
}

func (s *CredentialService) checkKey(stored, candidate []byte) bool {
	return subtle.ConstantTimeCompare(stored, candidate) == 1
}
