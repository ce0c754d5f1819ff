package user

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/auth"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name          string
	Email         string
	ContactNumber string
	Address       string
	Password      string
	Role          Role
}

// Session is the result of a successful login.
type Session struct {
	User   User
	Tokens auth.TokenPair
}

// Service handles registration and login.
type Service struct {
	repo   Repository
	signer *auth.Signer
}

// NewService creates a service backed by a repository.
func NewService(repo Repository, signer *auth.Signer) *Service {
	return &Service{repo: repo, signer: signer}
}

// Register validates and creates a user account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	var fields []apperr.FieldError
	required := []struct{ name, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"contact_number", in.ContactNumber},
		{"address", in.Address},
		{"password", in.Password},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, apperr.Field(f.name, "The %s field is required.", strings.ReplaceAll(f.name, "_", " ")))
		}
	}
	if in.Role == "" {
		in.Role = RoleParent
	}
	if !in.Role.Valid() {
		fields = append(fields, apperr.Field("role", "The selected role is invalid."))
	}
	if len(fields) > 0 {
		return User{}, apperr.Validation("", fields...)
	}

	u := User{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		ContactNumber: in.ContactNumber,
		Address:       in.Address,
		Role:          in.Role,
	}
	if err := u.SetPassword(in.Password); err != nil {
		return User{}, errors.Wrap(err, "hash password")
	}
	created, err := s.repo.Create(ctx, u)
	if errors.Is(err, ErrEmailTaken) {
		return User{}, apperr.Validation("", apperr.Field("email", "The email has already been taken."))
	}
	return created, err
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if apperr.IsNotFound(err) || (err == nil && !u.CheckPassword(password)) {
		return Session{}, apperr.Validation("", apperr.Field("email", "These credentials do not match our records."))
	}
	if err != nil {
		return Session{}, err
	}

	tokens, err := s.signer.Issue(u.ID, string(u.Role))
	if err != nil {
		return Session{}, err
	}
	if err := s.repo.SaveRefreshToken(ctx, u.ID, tokens.RefreshToken, tokens.RefreshExp); err != nil {
		return Session{}, err
	}
	return Session{User: u, Tokens: tokens}, nil
}

// Logout revokes a refresh token issued to userID.
func (s *Service) Logout(ctx context.Context, userID int64, refreshToken string) error {
	claims, err := s.signer.ParseRefresh(refreshToken)
	if err != nil {
		return apperr.Validation("", apperr.Field("refresh_token", "The refresh token is invalid."))
	}
	if id, err := claims.UserID(); err != nil || id != userID {
		return apperr.Validation("", apperr.Field("refresh_token", "The refresh token belongs to another user."))
	}
	return s.repo.RevokeRefreshToken(ctx, refreshToken)
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// Teachers lists users with the teacher role.
func (s *Service) Teachers(ctx context.Context) ([]User, error) {
	return s.repo.ListByRole(ctx, RoleTeacher)
}
