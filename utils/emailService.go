package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email via SendGrid when an API key is
// configured, falling back to plain SMTP otherwise.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridApiKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendGrid(to []string, subject string, htmlBody string) error {
	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)

	for _, rcpt := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", rcpt), "", htmlBody)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email to %s: %v", rcpt, err)
			return err
		}
		if resp.StatusCode >= 300 {
			log.Printf("SendGrid rejected email to %s: %d %s", rcpt, resp.StatusCode, resp.Body)
			return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
		}
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// SendEnrollmentEmail notifies a student about a new enrollment
func SendEnrollmentEmail(email, userName, courseName string) {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Enrollment Confirmed</h2>
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">You are now enrolled in <strong>%s</strong>. Happy learning!</p>
				</div>
			</body>
		</html>
	`, userName, courseName)

	if err := SendEmail([]string{email}, "Course Enrollment Confirmation", body); err != nil {
		log.Printf("Error sending enrollment email to %s: %v", email, err)
	}
}

// SendPaymentReceiptEmail notifies a student about a completed payment
func SendPaymentReceiptEmail(email, userName, courseName, transactionID string, amount float64) {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Payment Receipt</h2>
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">Your payment of <strong>%.2f</strong> for <strong>%s</strong> was successful.</p>
					<p style="font-size: 14px; color: #999999;">Transaction reference: %s</p>
				</div>
			</body>
		</html>
	`, userName, amount, courseName, transactionID)

	if err := SendEmail([]string{email}, "Payment Receipt", body); err != nil {
		log.Printf("Error sending payment receipt to %s: %v", email, err)
	}
}
