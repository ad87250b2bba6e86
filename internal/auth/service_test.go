package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finsight-pos/finsight-pos/internal/shared"
	"github.com/finsight-pos/finsight-pos/internal/users"
)

type fakeUsers struct {
	byEmail map[string]*users.User
	byID    map[int64]*users.User
}

func newFakeUsers(list ...*users.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]*users.User{}, byID: map[int64]*users.User{}}
	for _, u := range list {
		f.byEmail[u.Email] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Get(ctx context.Context, id int64) (*users.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]users.User, error) {
	var out []users.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUsers(&users.User{
		ID: 1, Email: "admin@finsight.local", PasswordHash: hash(t, "rahasia123"), IsActive: true,
	})
	svc := NewService(repo)

	user, err := svc.Authenticate(context.Background(), "admin@finsight.local", "rahasia123")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := newFakeUsers(&users.User{
		ID: 1, Email: "admin@finsight.local", PasswordHash: hash(t, "rahasia123"), IsActive: true,
	})
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "admin@finsight.local", "salah")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewService(newFakeUsers())

	_, err := svc.Authenticate(context.Background(), "nobody@finsight.local", "whatever")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	repo := newFakeUsers(&users.User{
		ID: 1, Email: "ex@finsight.local", PasswordHash: hash(t, "rahasia123"), IsActive: false,
	})
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "ex@finsight.local", "rahasia123")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
