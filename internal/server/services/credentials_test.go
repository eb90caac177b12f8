package services

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fleettrack/internal/common"
	"github.com/dmitrijs2005/fleettrack/internal/dbx"
	"github.com/dmitrijs2005/fleettrack/internal/server/config"
	"github.com/dmitrijs2005/fleettrack/internal/server/models"
	carsrepo "github.com/dmitrijs2005/fleettrack/internal/server/repositories/cars"
	usersrepo "github.com/dmitrijs2005/fleettrack/internal/server/repositories/users"
)

// --- in-memory fakes ---

type fakeUsersRepo struct {
	byName map[string]*models.User
	seq    int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	f.seq++
	u.ID = fmt.Sprintf("u-%d", f.seq)
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	return u, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCarsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Cars(db dbx.DBTX) carsrepo.Repository         { return m.c }

// Low iteration count to keep the suite fast; the production floor is
// enforced by config.LoadConfig.
func newCredentialService(rm *fakeRepoManager) *CredentialService {
	cfg := &config.Config{KDFIterations: 1200}
	return NewCredentialService(nil, rm, cfg)
}

// --- tests ---

func TestSignUp_StoresHexSaltAndKey(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo()}
	s := newCredentialService(rm)

	user, err := s.SignUp(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	salt, err := hex.DecodeString(user.Salt)
	require.NoError(t, err)
	assert.Len(t, salt, 32)

	key, err := hex.DecodeString(user.Key)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	assert.NotContains(t, user.Salt, "pw1")
	assert.NotContains(t, user.Key, "pw1")
}

func TestSignUpThenAuthenticate(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo()}
	s := newCredentialService(rm)

	created, err := s.SignUp(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	got, err := s.Authenticate(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo()}
	s := newCredentialService(rm)

	_, err := s.SignUp(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidPassword)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo()}
	s := newCredentialService(rm)

	_, err := s.Authenticate(context.Background(), "nobody", "x")
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo()}
	s := newCredentialService(rm)

	_, err := s.SignUp(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = s.SignUp(context.Background(), "alice", "other")
	require.ErrorIs(t, err, common.ErrDuplicateUsername)
}

// Same password, different users: salts (and hence keys) must differ.
func TestSignUp_SaltsAreUnique(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo()}
	s := newCredentialService(rm)

	u1, err := s.SignUp(context.Background(), "alice", "pw")
	require.NoError(t, err)
	u2, err := s.SignUp(context.Background(), "bob", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, u1.Salt, u2.Salt)
	assert.NotEqual(t, u1.Key, u2.Key)
}
