package email

import "findthem_backend/internal/logger"

// NoopProvider logs instead of sending. Used when SMTP is not configured
// and in tests.
type NoopProvider struct{}

func (p *NoopProvider) Send(email *Email) error {
	logger.Info("email dispatch skipped (no SMTP configured)",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

func (p *NoopProvider) SendVerification(to, firstName, verificationLink string) error {
	logger.Info("verification email skipped (no SMTP configured)",
		"to", to,
		"link", verificationLink,
	)
	return nil
}
