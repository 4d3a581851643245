package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"userbase/app/dto"
)

func fields(errs []dto.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		badFields []string
	}{
		{"valid", dto.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"}, nil},
		{"short name", dto.RegisterRequest{Name: "A", Email: "ann@x.com", Password: "secret1"}, []string{"name"}},
		{"one-rune multibyte name", dto.RegisterRequest{Name: "愛", Email: "ai@x.com", Password: "secret1"}, []string{"name"}},
		{"two-rune multibyte name", dto.RegisterRequest{Name: "愛子", Email: "ai@x.com", Password: "secret1"}, nil},
		{"missing email", dto.RegisterRequest{Name: "Ann", Password: "secret1"}, []string{"email"}},
		{"bad email", dto.RegisterRequest{Name: "Ann", Email: "not-an-email", Password: "secret1"}, []string{"email"}},
		{"short password", dto.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "abc"}, []string{"password"}},
		{"long password", dto.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: strings.Repeat("p", 73)}, []string{"password"}},
		{"admin role rejected", dto.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1", Role: "admin"}, []string{"role"}},
		{"everything wrong", dto.RegisterRequest{}, []string{"name", "email", "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Register(&tt.req)
			require.ElementsMatch(t, tt.badFields, fields(errs))
		})
	}
}

func TestRegister_NormalizesEmailAndRole(t *testing.T) {
	t.Parallel()

	req := dto.RegisterRequest{Name: " Ann ", Email: "  Ann@X.com ", Password: "secret1"}
	require.Empty(t, Register(&req))
	require.Equal(t, "ann@x.com", req.Email)
	require.Equal(t, "Ann", req.Name)
	require.Equal(t, "user", req.Role)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	req := dto.LoginRequest{Email: "ANN@x.com", Password: "secret1"}
	require.Empty(t, Login(&req))
	require.Equal(t, "ann@x.com", req.Email)

	missing := dto.LoginRequest{}
	require.ElementsMatch(t, []string{"email", "password"}, fields(Login(&missing)))
}

func TestCreateUser_AdminRoleAllowed(t *testing.T) {
	t.Parallel()

	req := dto.CreateUserRequest{Name: "Root", Email: "root@x.com", Password: "secret1", Role: "admin"}
	require.Empty(t, CreateUser(&req))

	bad := dto.CreateUserRequest{Name: "Root", Email: "root@x.com", Password: "secret1", Role: "owner"}
	require.ElementsMatch(t, []string{"role"}, fields(CreateUser(&bad)))
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	empty := dto.UpdateUserRequest{}
	errs := UpdateUser(&empty)
	require.Len(t, errs, 1)
	require.Equal(t, "body", errs[0].Field)

	role := "admin"
	roleOnly := dto.UpdateUserRequest{Role: &role}
	require.Empty(t, UpdateUser(&roleOnly))

	email := "NEW@X.com"
	withEmail := dto.UpdateUserRequest{Email: &email}
	require.Empty(t, UpdateUser(&withEmail))
	require.Equal(t, "new@x.com", *withEmail.Email)

	badRole := "owner"
	require.ElementsMatch(t, []string{"role"}, fields(UpdateUser(&dto.UpdateUserRequest{Role: &badRole})))
}
