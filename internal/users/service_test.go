package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/volt/internal/common"
	"github.com/dmitrijs2005/volt/internal/cryptox"
	"github.com/dmitrijs2005/volt/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// ---- helpers ----

func newService(t *testing.T) (*Service, *FileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.txt")
	repo, err := NewFileRepository(context.Background(), path, time.Second, logging.Nop())
	require.NoError(t, err)
	return NewService(repo, logging.Nop()), repo, path
}

func count(t *testing.T, repo *FileRepository) int {
	t.Helper()
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	return n
}

// ---- TESTS ----

func TestService_ScenarioAna(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ana", "a@x.com", []byte("pw123"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.UserName)

	got, err := svc.Login(ctx, "ana", []byte("pw123"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.UserName, "login returns the canonical name")

	_, err = svc.Login(ctx, "ana", []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "bob", []byte("x"))
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestService_RegisterThenLogin(t *testing.T) {
	tests := []struct {
		name, email, password string
	}{
		{"Ana", "a@x.com", "pw123"},
		{"jo", "", ""},
		{"Émile", "e@x.fr", "pässwörd with spaces"},
		{"averyveryverylongusername", "long@example.org", "p|w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t)
			ctx := context.Background()

			_, err := svc.Register(ctx, tt.name, tt.email, []byte(tt.password))
			require.NoError(t, err)

			_, err = svc.Login(ctx, tt.name, []byte(tt.password))
			require.NoError(t, err)

			_, err = svc.Login(ctx, tt.name, []byte(tt.password+"x"))
			assert.ErrorIs(t, err, common.ErrInvalidCredentials)
		})
	}
}

func TestService_RegisterCaseFoldedDuplicate(t *testing.T) {
	svc, repo, path := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "a@x.com", []byte("pw123"))
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, name := range []string{"Ana", "ana", "ANA", "  aNa "} {
		_, err := svc.Register(ctx, name, "other@x.com", []byte("other"))
		assert.ErrorIs(t, err, common.ErrUsernameTaken, name)
	}

	assert.Equal(t, 1, count(t, repo))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected registrations must not touch the file")
}

func TestService_RegisterInvalidInput(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()

	cases := []struct{ name, email string }{
		{"", "a@x.com"},
		{"   ", "a@x.com"},
		{"a|b", "a@x.com"},
		{"ana", "a|x.com"},
		{"ana\nbob", "a@x.com"},
	}
	for _, c := range cases {
		_, err := svc.Register(ctx, c.name, c.email, []byte("pw"))
		assert.ErrorIs(t, err, common.ErrInvalidInput, "%q/%q", c.name, c.email)
	}
	assert.Equal(t, 0, count(t, repo))
}

func TestService_LoginOnAbsentOrEmptyStore(t *testing.T) {
	svc, _, path := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "ana", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrUserNotFound, "empty store")

	require.NoError(t, os.Remove(path))
	_, err = svc.Login(ctx, "ana", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrUserNotFound, "absent store")
}

func TestService_RoundTripAfterReload(t *testing.T) {
	svc, _, path := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "a@x.com", []byte("pw123"))
	require.NoError(t, err)

	reloaded, err := NewFileRepository(ctx, path, time.Second, logging.Nop())
	require.NoError(t, err)

	u, err := reloaded.GetUserByName(ctx, "ANA")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.UserName)
	assert.Equal(t, "a@x.com", u.Email)

	ok, err := cryptox.VerifyPassword(u.PasswordHash, []byte("pw123"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = NewService(reloaded, logging.Nop()).Login(ctx, "ana", []byte("pw123"))
	require.NoError(t, err)
}

func TestService_LoginWithHashFromEarlierVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.txt")
	salt := "Ab12Cd34"
	key := pbkdf2.Key([]byte("pw123"), []byte(salt), 1000, sha256.Size, sha256.New)
	line := "Ana       |a@x.com   |pbkdf2:sha256:1000$" + salt + "$" + hex.EncodeToString(key) + "|\n"
	require.NoError(t, os.WriteFile(path, []byte(line), 0o600))

	repo, err := NewFileRepository(context.Background(), path, time.Second, logging.Nop())
	require.NoError(t, err)
	svc := NewService(repo, logging.Nop())

	u, err := svc.Login(context.Background(), "ana", []byte("pw123"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.UserName)
}

func TestService_LoginUnreadableHash(t *testing.T) {
	hashes := []string{
		"not-a-hash",
		"argon2id$v=19$m=65536,t=0,p=4$c2FsdHNhbHRzYWx0$a2V5a2V5a2V5",
		"argon2id$v=19$m=65536,t=1,p=4$c2FsdHNhbHRzYWx0$",
		"argon2id$v=19$m=4294967295,t=1,p=4$c2FsdHNhbHRzYWx0$a2V5a2V5a2V5",
	}
	for _, h := range hashes {
		t.Run(h, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "database.txt")
			require.NoError(t, os.WriteFile(path, []byte("Ana|a@x.com|"+h+"|\n"), 0o600))

			repo, err := NewFileRepository(context.Background(), path, time.Second, logging.Nop())
			require.NoError(t, err)

			_, err = NewService(repo, logging.Nop()).Login(context.Background(), "Ana", []byte("pw"))
			assert.ErrorIs(t, err, common.ErrInvalidCredentials)
		})
	}
}

type failingRepo struct{ err error }

func (f failingRepo) Create(context.Context, *User) error { return f.err }
func (f failingRepo) GetUserByName(context.Context, string) (*User, error) {
	return nil, f.err
}
func (f failingRepo) Count(context.Context) (int, error) { return 0, f.err }

func TestService_StorageErrorsPropagate(t *testing.T) {
	svc := NewService(failingRepo{err: common.ErrStorageUnavailable}, logging.Nop())
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana", "a@x.com", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = svc.Login(ctx, "ana", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}
