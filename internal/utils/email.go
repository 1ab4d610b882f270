package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// SendEmail delivers a transactional email over SMTP. When no SMTP host is
// configured the message is logged instead, so environments without a mail
// relay keep working.
func SendEmail(to, subject, htmlBody string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Printf("⚠️ SMTP not configured — simulating email to %s: %s", to, subject)
		return nil
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@pixelpanda.shop"
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// SendWelcomeEmail greets a freshly signed-up user. Best effort: callers run
// it in a goroutine and delivery failures are logged only.
func SendWelcomeEmail(name, email string) {
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Welcome to Pixel Panda 🐼</h2>
		<p>Hi <b>%s</b>,</p>
		<p>Your account is ready. Browse templates, icons, UI kits and more — your next favorite asset is a click away.</p>
		<p style="margin-top: 30px; color: #555;">
			Happy designing,<br>
			<strong>The Pixel Panda team</strong>
		</p>
	</div>
</body>
</html>`, name)

	if err := SendEmail(email, "Welcome to Pixel Panda", html); err != nil {
		log.Printf("⚠️ Welcome email to %s failed: %v", email, err)
	}
}

// SendContactEmail relays a contact-form submission to the shop inbox.
func SendContactEmail(name, email, subject, message string) error {
	inbox := os.Getenv("CONTACT_INBOX")
	if inbox == "" {
		inbox = "support@pixelpanda.shop"
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">New contact form submission</h2>
		<p><b>From:</b> %s (%s)</p>
		<p><b>Subject:</b> %s</p>
		<p style="white-space: pre-wrap; border-left: 3px solid #007bff; padding-left: 15px;">%s</p>
	</div>
</body>
</html>`, name, email, subject, message)

	return SendEmail(inbox, "New Contact: "+subject, html)
}
