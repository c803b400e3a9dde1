package worker

import (
	"context"
	"fmt"

	"github.com/taskhive/backend/internal/config"
	emailProvider "github.com/taskhive/backend/pkg/email"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type welcomeEmailInput struct {
	Username string
}

func (s *emailSender) SendWelcomeEmail(ctx context.Context, email string, username string) error {
	if !s.config.Enabled {
		return nil
	}

	subject := "Welcome to the marketplace"

	templateInput := welcomeEmailInput{username}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.Welcome, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
