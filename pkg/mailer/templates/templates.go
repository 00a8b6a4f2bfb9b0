// Package templates renders the user-facing emails. Copy is in French to
// match the rest of the Dewini frontend.
package templates

import (
	"fmt"
	"strings"
	"text/template"
)

// Template names accepted in an EmailJob.
const (
	ResetPassword = "reset_password"
)

var subjects = map[string]string{
	ResetPassword: "Réinitialisation de mot de passe - Dewini",
}

var bodies = map[string]*template.Template{
	ResetPassword: template.Must(template.New(ResetPassword).Parse(
		"Bonjour {{.Prenom}} {{.Nom}},\n\n" +
			"Nous avons reçu une demande de réinitialisation de mot de passe pour votre compte Dewini.\n\n" +
			"Pour réinitialiser votre mot de passe, cliquez sur le lien ci-dessous:\n" +
			"{{.Link}}\n\n" +
			"Le lien expirera dans 24 heures pour des raisons de sécurité.\n\n" +
			"Cordialement,\nL'équipe Dewini")),
}

// Render returns the subject and plain-text body for a named template.
func Render(name string, data map[string]any) (subject, text string, err error) {
	tpl, ok := bodies[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", "", err
	}
	return subjects[name], sb.String(), nil
}
