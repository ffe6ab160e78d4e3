package mail

import (
	"context"
	"fmt"

	"github.com/Vishal-43/img-craft/internal/infrastructure/smtp"
	pkgtoken "github.com/Vishal-43/img-craft/internal/pkg/token"
)

const codeDigits = 6

// Service mints one-time codes and delivers them by email.
type Service interface {
	SendVerificationCode(ctx context.Context, email string) (string, error)
	SendPasswordResetCode(ctx context.Context, email string) (string, error)
}

type service struct {
	mailer smtp.Mailer
}

func NewService(mailer smtp.Mailer) Service {
	return &service{mailer: mailer}
}

func (s *service) SendVerificationCode(ctx context.Context, email string) (string, error) {
	return s.send(ctx, email, "Verify your email", "Your verification code is: %s\r\n")
}

func (s *service) SendPasswordResetCode(ctx context.Context, email string) (string, error) {
	return s.send(ctx, email, "Password reset code", "Your password reset code is: %s\r\n\r\nIf you did not request a reset, ignore this email.\r\n")
}

// send returns the code only after the mailer accepted the message.
func (s *service) send(ctx context.Context, email, subject, bodyFmt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	code, err := pkgtoken.NewNumericCode(codeDigits)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	if err := s.mailer.SendEmail(email, subject, fmt.Sprintf(bodyFmt, code)); err != nil {
		return "", err
	}
	return code, nil
}
