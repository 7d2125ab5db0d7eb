package email

// Provider delivers email on a best-effort basis. Callers must not block a
// request on delivery; dispatch failures are reported, not fatal.
type Provider interface {
	// Send delivers a message.
	Send(email *Email) error

	// SendVerification delivers the account-verification link.
	SendVerification(to, firstName, verificationLink string) error
}

// TemplateRenderer renders named templates to HTML.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
