// Package email abstracts outbound email delivery behind a small interface so
// services never depend on the concrete provider. The current implementation
// uses the Resend API.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// Sender delivers application emails.
type Sender interface {
	// SendPasswordReset emails the user a password reset link embedding the
	// plaintext token. Only the token's hash is stored server side.
	SendPasswordReset(ctx context.Context, toEmail string, token string) error
}

type resendSender struct {
	client          *resend.Client
	fromEmail       string
	frontendBaseURL string
}

// NewResendSender creates a Sender backed by the Resend API. fromEmail must
// belong to a domain verified in the Resend dashboard. frontendBaseURL is the
// public URL of the web client, used to build reset links.
func NewResendSender(apiKey, fromEmail, frontendBaseURL string) Sender {
	return &resendSender{
		client:          resend.NewClient(apiKey),
		fromEmail:       fromEmail,
		frontendBaseURL: frontendBaseURL,
	}
}

func (s *resendSender) SendPasswordReset(ctx context.Context, toEmail string, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendBaseURL, token)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#111827;font-size:24px;margin:0 0 8px 0;">ContactVault</h1>
              <h2 style="color:#111827;font-size:18px;margin:0 0 24px 0;">Password Reset Request</h2>
              <p style="color:#4b5563;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                We received a request to reset your password. Click the button below to choose a new password.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#2563eb;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Reset Password
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#6b7280;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                This link will expire in 1 hour. If you didn't request a password reset, you can safely ignore this email.
              </p>
              <p style="color:#9ca3af;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#2563eb;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, resetLink, resetLink, resetLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("ContactVault <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Reset Your Password — ContactVault",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}
