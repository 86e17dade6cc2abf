package email

import (
	"strings"
	"time"

	"google.golang.org/adk/tool"

	"atlas/internal/metrics"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
)

// NewSendEmailTool delivers a plain-text email through the configured
// SMTP sender. Missing credentials surface as a structured failure the
// model can relay to the user.
func NewSendEmailTool(deps shared.Deps) (tool.Tool, error) {
	return shared.NewToolBuilder(
		"send_email",
		"Send a plain-text email. Args: recipient_email, subject, message.",
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			recipient, ok := shared.StringArg(args, "recipient_email")
			if !ok {
				return nil, errors.Wrap(errors.ErrInvalidInput, "recipient_email is required")
			}
			if !strings.Contains(recipient, "@") {
				return nil, errors.Wrap(errors.ErrInvalidInput, "recipient_email must be a valid email address")
			}

			subject, ok := shared.StringArg(args, "subject")
			if !ok {
				return nil, errors.Wrap(errors.ErrInvalidInput, "subject is required")
			}

			body, _ := shared.StringArgAny(args, "message", "body")

			if !deps.HasMailer() {
				metrics.RecordEmail("unconfigured")
				return nil, errors.Wrap(errors.ErrMailerNotConfigured, "email sending is not configured")
			}

			if err := deps.Mailer.Send(ctx, recipient, subject, body); err != nil {
				if errors.Is(err, errors.ErrMailerNotConfigured) {
					metrics.RecordEmail("unconfigured")
				} else {
					metrics.RecordEmail("error")
				}
				return nil, err
			}

			metrics.RecordEmail("success")

			return shared.OK(map[string]interface{}{
				"recipient": recipient,
				"subject":   subject,
			}), nil
		},
		deps,
	).
		WithTimeout(30 * time.Second).
		WithMetrics().
		Build()
}
