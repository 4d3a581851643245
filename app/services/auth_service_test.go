package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"userbase/app/dto"
	"userbase/app/hash"
	jwtutil "userbase/app/jwt"
	"userbase/app/models"
	"userbase/app/repo"
)

func newStore(t *testing.T) *repo.UserRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}))
	return repo.NewUserRepository(gdb)
}

func newAuthService(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	store := newStore(t)
	hasher := hash.Bcrypt{Cost: bcrypt.MinCost}
	signer := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "userbase", Expiry: time.Hour}
	return NewAuthService(store, hasher, signer), NewUserService(store, hasher)
}

func register(t *testing.T, auth *AuthService, email string) *dto.User {
	t.Helper()
	u, token, err := auth.Register(context.Background(), dto.RegisterRequest{
		Name: "Ann", Email: email, Password: "secret1", Role: models.RoleUser,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return u
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	auth, _ := newAuthService(t)
	ctx := context.Background()

	created := register(t, auth, "ann@x.com")
	require.Equal(t, "ann@x.com", created.Email)
	require.Equal(t, models.RoleUser, created.Role)

	u, token, err := auth.Login(ctx, "ann@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, created.ID, u.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	auth, _ := newAuthService(t)
	ctx := context.Background()

	register(t, auth, "ann@x.com")
	_, _, err := auth.Register(ctx, dto.RegisterRequest{
		Name: "Ann Again", Email: "ann@x.com", Password: "secret2", Role: models.RoleUser,
	})
	require.ErrorIs(t, err, repo.ErrDuplicateEmail)
}

func TestLogin_BothFactorsFailIdentically(t *testing.T) {
	t.Parallel()
	auth, _ := newAuthService(t)
	ctx := context.Background()

	register(t, auth, "ann@x.com")

	_, _, unknownErr := auth.Login(ctx, "nobody@x.com", "secret1")
	_, _, wrongErr := auth.Login(ctx, "ann@x.com", "wrong-password")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	require.Equal(t, unknownErr, wrongErr, "credential failures must be indistinguishable")
}

func TestMe(t *testing.T) {
	t.Parallel()
	auth, _ := newAuthService(t)
	ctx := context.Background()

	created := register(t, auth, "ann@x.com")
	u, err := auth.Me(ctx, "ann@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, u.ID)

	_, err = auth.Me(ctx, "ghost@x.com")
	require.ErrorIs(t, err, repo.ErrNotFound)
}
