package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/communityhub/backend/internal/config"
	emailProvider "github.com/communityhub/backend/pkg/email"
	mock_email "github.com/communityhub/backend/pkg/email/mock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, name, body string) {
	t.Helper()

	require.NoError(t, os.MkdirAll("templates", 0o755))
	path := filepath.Join("templates", name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Cleanup(func() { os.Remove(path) })
}

func TestSendRegistrationConfirmedEmail(t *testing.T) {
	writeTemplate(t, "confirmed_test.html",
		"<p>Hi {{.Name}}, you are in for {{.ItemTitle}}.</p>")

	sender := new(mock_email.EmailSender)
	sender.On("Send", mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.To == "asha@example.com" &&
			inp.Subject == "Registration confirmed: Summer Camp" &&
			inp.Body == "<p>Hi Asha Rao, you are in for Summer Camp.</p>"
	})).Return(nil)

	cfg := config.EmailConfig{}
	cfg.Templates.RegistrationConfirmed = "confirmed_test.html"

	s := newEmailSender(sender, cfg)
	err := s.SendRegistrationConfirmedEmail(context.Background(), "asha@example.com", "Asha Rao", "Summer Camp")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendRegistrationConfirmedEmailMissingTemplate(t *testing.T) {
	sender := new(mock_email.EmailSender)

	cfg := config.EmailConfig{}
	cfg.Templates.RegistrationConfirmed = "does_not_exist.html"

	s := newEmailSender(sender, cfg)
	err := s.SendRegistrationConfirmedEmail(context.Background(), "asha@example.com", "Asha Rao", "Summer Camp")
	require.Error(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}
