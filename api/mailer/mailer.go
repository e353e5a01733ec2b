package mailer

import (
	"os"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendResetPassword emails a password-reset link carrying the given token.
func SendResetPassword(toEmail, token string) error {
	appURL := os.Getenv("APP_URL")
	resetLink := appURL + "/password/reset?token=" + token

	h := hermes.Hermes{
		Product: hermes.Product{
			Name: "Warbler",
			Link: appURL,
		},
	}
	email := hermes.Email{
		Body: hermes.Body{
			Intros: []string{"You requested a password reset for your Warbler account."},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to choose a new password:",
					Button: hermes.Button{
						Text: "Reset your password",
						Link: resetLink,
					},
				},
			},
			Outros: []string{"If you did not request a password reset, no further action is required."},
		},
	}
	body, err := h.GenerateHTML(email)
	if err != nil {
		return err
	}

	from := mail.NewEmail("Warbler", os.Getenv("MAIL_FROM"))
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, "Reset your password", to, "", body)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	_, err = client.Send(message)
	return err
}
