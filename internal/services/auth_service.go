package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ajramos/invitemate/internal/auth"
	"github.com/ajramos/invitemate/internal/mail"
)

// AuthServiceImpl implements AuthService
type AuthServiceImpl struct {
	sessions SessionStore
	sender   mail.Sender
	subject  string
	logger   *log.Logger // Optional - for debug logging
}

// NewAuthService creates a new auth service
func NewAuthService(sessions SessionStore, sender mail.Sender, codeSubject string) *AuthServiceImpl {
	return &AuthServiceImpl{
		sessions: sessions,
		sender:   sender,
		subject:  codeSubject,
	}
}

// SetLogger sets the logger for debug output
func (s *AuthServiceImpl) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// SendCode generates a fresh verification code for email and mails it. Every
// call regenerates: only the latest stored code verifies, even when a
// previous send succeeded. The generated code and stored email persist even
// if delivery fails; only a successful delivery advances the session to the
// code-input step.
func (s *AuthServiceImpl) SendCode(ctx context.Context, sess *auth.Session, email string) error {
	if sess == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if sess.Authenticated() {
		return fmt.Errorf("session already authenticated")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	sess.Email = email
	sess.Code = auth.GenerateCode()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	body := fmt.Sprintf("Your verification code is %s", sess.Code)
	if err := s.sender.Send(ctx, email, s.subject, body); err != nil {
		if s.logger != nil {
			s.logger.Printf("code delivery to %s failed: %v", email, err)
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	sess.Step = auth.StepCodeInput
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// VerifyCode advances the session to authenticated iff the entered code
// equals the stored one exactly (string compare). There is no attempt limit
// and no code expiry; a mismatch leaves the session where it is.
func (s *AuthServiceImpl) VerifyCode(ctx context.Context, sess *auth.Session, code string) error {
	if sess == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if sess.Authenticated() {
		return nil
	}
	if sess.Step != auth.StepCodeInput {
		return fmt.Errorf("%w: no code has been sent yet", ErrInvalidInput)
	}
	if sess.Code == "" || code != sess.Code {
		return ErrInvalidCode
	}

	sess.Step = auth.StepAuthenticated
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Logout tears the session down.
func (s *AuthServiceImpl) Logout(ctx context.Context, sess *auth.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RequireAuth gates access to everything past login: any call while the
// session is not authenticated halts with ErrNotAuthenticated.
func RequireAuth(sess *auth.Session) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}
