package mail

import (
	"bytes"
	"html/template"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// ResetPasswordSubject is the subject line of reset emails.
const ResetPasswordSubject = "Sign-up Verification API - Reset Password"

var resetPasswordTemplate = template.Must(template.New("reset").Parse(
	`<h4>Reset Password Email</h4>
{{if .URL}}<p>Please click the below link to reset your password, the link will be valid for 1 day:</p>
<p><a href="{{.URL}}">{{.URL}}</a></p>{{else}}<p>Please use the below token to reset your password with the <code>/accounts/reset-password</code> api route:</p>
<p><code>{{.Token}}</code></p>{{end}}
`))

// ResetURL builds the link placed in reset emails. It is empty without origin.
func ResetURL(origin, token string) string {
	if origin == "" {
		return ""
	}
	return origin + "/account/reset-password?token=" + token
}

// ResetPasswordMessage renders the reset email for the given recipient.
func ResetPasswordMessage(to, token, origin string) (model.Message, error) {
	var buf bytes.Buffer
	err := resetPasswordTemplate.Execute(&buf, struct {
		URL   string
		Token string
	}{
		URL:   ResetURL(origin, token),
		Token: token,
	})
	if err != nil {
		return model.Message{}, err
	}

	return model.Message{
		To:      to,
		Subject: ResetPasswordSubject,
		HTML:    buf.String(),
	}, nil
}
