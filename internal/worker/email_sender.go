package worker

import (
	"context"
	"fmt"

	"github.com/communityhub/backend/internal/config"
	emailProvider "github.com/communityhub/backend/pkg/email"
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

type confirmationEmailInput struct {
	Name      string
	ItemTitle string
}

func (s *emailSender) SendRegistrationConfirmedEmail(ctx context.Context, email, name, itemTitle string) error {
	subject := fmt.Sprintf("Registration confirmed: %s", itemTitle)

	templateInput := confirmationEmailInput{Name: name, ItemTitle: itemTitle}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.RegistrationConfirmed, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
