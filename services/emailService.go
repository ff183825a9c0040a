package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

// SendAssignmentEmail notifies a prayer-team member that a request has been
// assigned to them.
func (s *EmailService) SendAssignmentEmail(toEmail string, firstName string, requestText string, note string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	noteHTML := ""
	noteText := ""
	if note != "" {
		noteHTML = fmt.Sprintf("<p><strong>Note from the coordinator:</strong> %s</p>", note)
		noteText = fmt.Sprintf("\nNote from the coordinator: %s\n", note)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #90a8c5;
        }
        .header h1 {
            color: #90a8c5;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .request {
            background-color: #f5f5f5;
            border-left: 4px solid #90a8c5;
            border-radius: 4px;
            padding: 15px 20px;
            margin: 20px 0;
            font-style: italic;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>prayerwall</h1>
    </div>

    <div class="content">
        <h2>A Prayer Request Was Assigned to You</h2>

        <p>Hi %s,</p>

        <p>A new prayer request on the wall has been assigned to you:</p>

        <div class="request">%s</div>

        %s

        <p>Please take a moment to pray, and mark the request as prayed for when you have.</p>

        <p>Blessings,<br>The prayerwall Team</p>
    </div>

    <div class="footer">
        <p>This is an automated message, please do not reply directly to this email.</p>
    </div>
</body>
</html>
`, firstName, requestText, noteHTML)

	textBody := fmt.Sprintf(`
A Prayer Request Was Assigned to You

Hi %s,

A new prayer request on the wall has been assigned to you:

"%s"
%s
Please take a moment to pray, and mark the request as prayed for when you have.

Blessings,
The prayerwall Team
`, firstName, requestText, noteText)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      []string{toEmail},
		Subject: "A prayer request was assigned to you",
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send assignment email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Successfully sent assignment email to %s. Email ID: %s", toEmail, sent.Id)
	return nil
}
