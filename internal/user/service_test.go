package user

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare/internal/apperr"
	"daycare/internal/auth"
)

func setup(t *testing.T) (*Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	signer := auth.NewSigner("test", "secret", time.Minute, time.Hour)
	return NewService(repo, signer), repo
}

func validInput(email string, role Role) RegisterInput {
	return RegisterInput{
		Name:          "Ama Mensah",
		Email:         email,
		ContactNumber: "0200000000",
		Address:       "12 Palm Street",
		Password:      "s3cret-pass",
		Role:          role,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	u, err := svc.Register(ctx, validInput("Ama@Example.com", ""))
	require.NoError(t, err)
	assert.Equal(t, RoleParent, u.Role)
	assert.Equal(t, "ama@example.com", u.Email)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	assert.True(t, u.CheckPassword("s3cret-pass"))

	_, err = svc.Register(ctx, validInput("ama@example.com", RoleTeacher))
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Fields[0].Field)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setup(t)
	in := validInput("", "janitor")
	in.Password = " "

	_, err := svc.Register(context.Background(), in)
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.ByField(), "email")
	assert.Contains(t, verr.ByField(), "password")
	assert.Contains(t, verr.ByField(), "role")
}

func TestLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	u, err := svc.Register(ctx, validInput("teacher@example.com", RoleTeacher))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "teacher@example.com", "wrong")
	assert.True(t, apperr.IsValidation(err))
	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.True(t, apperr.IsValidation(err))

	session, err := svc.Login(ctx, "TEACHER@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, session.User.ID)
	assert.NotEmpty(t, session.Tokens.AccessToken)

	assert.True(t, apperr.IsValidation(svc.Logout(ctx, u.ID+1, session.Tokens.RefreshToken)))
	assert.True(t, apperr.IsValidation(svc.Logout(ctx, u.ID, session.Tokens.AccessToken)))
	require.NoError(t, svc.Logout(ctx, u.ID, session.Tokens.RefreshToken))
	assert.True(t, repo.Revoked(session.Tokens.RefreshToken))
}

func TestTeachers(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	_, err := svc.Register(ctx, validInput("p@example.com", RoleParent))
	require.NoError(t, err)
	teacher, err := svc.Register(ctx, validInput("t@example.com", RoleTeacher))
	require.NoError(t, err)

	teachers, err := svc.Teachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, teacher.ID, teachers[0].ID)

	_, err = svc.Get(ctx, 999)
	assert.True(t, apperr.IsNotFound(err))
}
