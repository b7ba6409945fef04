package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/internal/testutil"
	"github.com/Khursands/Online-Pharmacy/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (AuthService, *fixture) {
	f := newFixture(t)
	return NewAuthService(repository.NewUserRepository(f.db), testSecret, 7*24*time.Hour), f
}

func TestRegister(t *testing.T) {
	svc, f := newAuth(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: "Jane@Example.com", Password: "secret1", Name: "Jane Doe", Phone: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, model.RoleCustomer, res.User.Role)
	assert.True(t, res.User.IsVerified)
	assert.NotEqual(t, "secret1", res.User.Password)

	claims, err := jwt.ParseToken(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	_, err = svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "other12", Name: "Jane Again"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	var n int64
	require.NoError(t, f.db.Model(&model.User{}).Where("email = ?", "jane@example.com").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "secret1", Name: "Jane Doe"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, wrongPass := svc.Login(ctx, "jane@example.com", "nope123")
	_, unknown := svc.Login(ctx, "ghost@example.com", "secret1")
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestProfile(t *testing.T) {
	svc, f := newAuth(t)
	ctx := context.Background()
	u := testutil.User(t, f.db, "jane@example.com")

	name, addr := "  Jane Q ", "1 Main St"
	require.NoError(t, svc.UpdateProfile(ctx, u.ID, ProfileInput{Name: &name, Address: &addr}))

	got, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Q", got.Name)
	assert.Equal(t, "1 Main St", got.Address)
	assert.Equal(t, "jane@example.com", got.Email)

	_, err = svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.UpdateProfile(ctx, "missing", ProfileInput{Name: &name}), ErrNotFound)
}
