package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/samersoltani/dewini-server/internal/domain/entity"
	"github.com/samersoltani/dewini-server/internal/domain/repository"
	"github.com/samersoltani/dewini-server/internal/resettoken"
	"github.com/samersoltani/dewini-server/pkg/helpers"
	"github.com/samersoltani/dewini-server/pkg/mailer"
	"github.com/samersoltani/dewini-server/pkg/mailer/templates"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	// ErrEmailSend wraps a failed reset-email delivery. The issued token
	// stays valid; delivery failure is not rolled back.
	ErrEmailSend = errors.New("reset email send failed")
)

// UserService handles registration, login, and the password-reset flow.
type UserService struct {
	Repo     repository.UserRepository
	Tokens   resettoken.Store
	Mail     mailer.Sender
	ResetURL string
	// TokenTTL is passed through to the token store. Zero means no expiry,
	// which matches the memory backend regardless.
	TokenTTL time.Duration
	Logger   *logrus.Logger
}

func NewUserService(repo repository.UserRepository, tokens resettoken.Store, mail mailer.Sender, resetURL string, tokenTTL time.Duration, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Tokens: tokens, Mail: mail, ResetURL: resetURL, TokenTTL: tokenTTL, Logger: logger}
}

// Register persists u with a bcrypt hash in place of the plaintext password.
// Fails with ErrEmailTaken when the email is already present.
func (s *UserService) Register(ctx context.Context, u *entity.User) error {
	existing, err := s.Repo.GetByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}
	hash, err := helpers.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hash
	if err := s.Repo.Create(ctx, u); err != nil {
		return err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return nil
}

// Login verifies the plaintext password against the stored hash and returns
// the reduced user projection. Unknown email and wrong password both yield
// ErrInvalidCredentials; callers must not distinguish the two.
func (s *UserService) Login(ctx context.Context, email, password string) (entity.Projection, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return entity.Projection{}, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return entity.Projection{}, ErrInvalidCredentials
	}
	return u.Project(), nil
}

// ForgotPassword mints a reset token and emails the reset link. An unknown
// email succeeds without issuing anything, so the response never reveals
// account existence. A failed send returns ErrEmailSend but keeps the token.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		s.Logger.WithField("email", email).Warn("reset requested for unknown email")
		return nil
	}

	token := uuid.NewString()
	if err := s.Tokens.Put(ctx, token, u.Email, s.TokenTTL); err != nil {
		return err
	}

	job := mailer.EmailJob{
		To:       u.Email,
		Template: templates.ResetPassword,
		Data: map[string]any{
			"Prenom": u.Prenom,
			"Nom":    u.Nom,
			"Link":   s.ResetURL + "?token=" + token,
		},
	}
	if err := s.Mail.Send(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset email send failed")
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	s.Logger.WithField("user_id", u.ID).Info("reset email sent")
	return nil
}

// ResetPassword redeems the token (one shot) and persists the re-hashed
// password for the mapped user.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, ok, err := s.Tokens.Redeem(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidToken
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidToken
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	s.Logger.WithField("user_id", u.ID).Info("password reset")
	return nil
}
