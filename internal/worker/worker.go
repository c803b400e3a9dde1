package worker

import (
	"context"

	"github.com/taskhive/backend/internal/config"
	emailProvider "github.com/taskhive/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, email string, username string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}
