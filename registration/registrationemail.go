package registration

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/ascent-matrix/summit-registration/pricing"
)

//go:embed templates
var templates embed.FS

var templateFuncs = map[string]any{
	"rupees": pricing.Format,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

func SendPaymentConfirmationEmail(ctx context.Context, emailSender email.Sender, fromAddress string, reg Registration) error {
	htmlBody, err := makeHtmlBody(reg)
	if err != nil {
		return err
	}

	textOnlyBody, err := makeTextOnlyBody(reg)
	if err != nil {
		return err
	}

	return emailSender.SendEmail(ctx, email.Email{
		FromAddress: fromAddress,
		ToAddresses: []string{reg.Email},
		Subject:     fmt.Sprintf("Registration confirmed - %s", reg.ID),
		HTMLBody:    htmlBody,
		TextBody:    textOnlyBody,
	})
}

func makeHtmlBody(reg Registration) (string, error) {
	tmpl, err := template.New("payment-confirmation.tmpl").Funcs(templateFuncs).
		ParseFS(templates, "templates/payment-confirmation.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Registration": reg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}

func makeTextOnlyBody(reg Registration) (string, error) {
	tmpl, err := texttemplate.New("payment-confirmation-textonly.tmpl").Funcs(templateFuncs).
		ParseFS(templates, "templates/payment-confirmation-textonly.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Registration": reg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}
