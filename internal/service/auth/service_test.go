package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/opshq/office-backend-go/internal/domain/auth"
	"github.com/opshq/office-backend-go/internal/domain/employee"
	"github.com/opshq/office-backend-go/internal/pkg/jwt"
	"github.com/opshq/office-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	byEmail map[string]employee.Employee
	byID    map[string]employee.Employee
	nextID  int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		byEmail: make(map[string]employee.Employee),
		byID:    make(map[string]employee.Employee),
	}
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	key := strings.ToLower(emp.Email)
	if _, exists := f.byEmail[key]; exists {
		return employee.Employee{}, employee.ErrEmailExists
	}
	f.nextID++
	emp.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.byEmail[key] = emp
	f.byID[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	emp, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) add(emp employee.Employee) {
	f.byEmail[strings.ToLower(emp.Email)] = emp
	f.byID[emp.ID] = emp
}

func newTestService(repo *fakeEmployeeRepo) AuthService {
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "15m", "168h"))
}

func activeEmployee(id, email, password string) employee.Employee {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	hashStr := string(hash)
	return employee.Employee{
		ID:           id,
		Name:         "Asha",
		Email:        email,
		Role:         employee.RoleEmployee,
		Status:       employee.StatusActive,
		PasswordHash: &hashStr,
	}
}

func TestLoginIssuesTokens(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.add(activeEmployee("emp-1", "asha@example.com", "secret-pass"))
	svc := newTestService(repo)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.add(activeEmployee("emp-1", "asha@example.com", "secret-pass"))
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newFakeEmployeeRepo()
	emp := activeEmployee("emp-1", "asha@example.com", "secret-pass")
	emp.Status = employee.StatusInactive
	repo.add(emp)
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret-pass",
	})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestSignupCreatesEmployeeAccount(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo)

	tokens, err := svc.Signup(context.Background(), auth.SignupRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	created, err := repo.GetByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, employee.RoleEmployee, created.Role)
	assert.Equal(t, employee.StatusActive, created.Status)
	require.NotNil(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("secret-pass")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.add(activeEmployee("emp-1", "asha@example.com", "secret-pass"))
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), auth.SignupRequest{
		Name:     "Someone Else",
		Email:    "asha@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo())

	_, err := svc.Signup(context.Background(), auth.SignupRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "short",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.add(activeEmployee("emp-1", "asha@example.com", "secret-pass"))
	svc := newTestService(repo)

	first, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	// The exchanged refresh token is single-use.
	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.add(activeEmployee("emp-1", "asha@example.com", "secret-pass"))
	svc := newTestService(repo)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.add(activeEmployee("emp-1", "asha@example.com", "secret-pass"))
	tokens := jwt.NewJWTService("test-secret", "15m", "168h")
	svc := NewAuthService(repo, tokens)

	issued, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), issued.AccessToken))
	assert.True(t, tokens.IsTokenRevoked(issued.AccessToken))
}
