package utils

import (
	"fmt"

	"github.com/mdv314/claritas-learning/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a transactional HTML email through SendGrid. With no API
// key configured the send becomes a no-op so local development works
// without outgoing mail.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridKey == "" {
		return nil
	}

	from := mail.NewEmail("Claritas Learning", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// getEmailTemplate wraps body content in the shared layout
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #FAFAFA; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #2563EB; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #111827; line-height: 1.6; }
			.content h2 { color: #111827; margin-top: 0; }
			.footer { background-color: #FAFAFA; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E5E7EB; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2563EB; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.score-box { background: #ECFDF5; padding: 15px; border-radius: 4px; border-left: 4px solid #10B981; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Claritas Learning</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">You are receiving this email because you have a Claritas Learning account.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail greets a newly registered user.
func SendWelcomeEmail(toEmail, name string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account is ready. Generate your first course and start learning at your own pace.</p>
		<a class="btn" href="%s/generate">Create a course</a>`,
		name, config.AppConfig.BaseURL)

	return SendEmail(name, toEmail, "Welcome to Claritas Learning", getEmailTemplate("Welcome aboard!", body))
}

// SendModulePassedEmail congratulates a user on passing a module quiz.
func SendModulePassedEmail(toEmail, name, courseTitle string, unitNumber, percentage int) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You passed the Unit %d quiz in <strong>%s</strong>.</p>
		<div class="score-box">Score: <strong>%d%%</strong> &mdash; this module is now complete.</div>
		<a class="btn" href="%s/dashboard">Back to your dashboard</a>`,
		name, unitNumber, courseTitle, percentage, config.AppConfig.BaseURL)

	subject := fmt.Sprintf("Unit %d complete - %s", unitNumber, courseTitle)
	return SendEmail(name, toEmail, subject, getEmailTemplate("Congratulations!", body))
}
