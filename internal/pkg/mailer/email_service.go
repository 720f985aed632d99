package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWeeklySummary(toEmail, coachName, weekStart, weekEnd, summaryText string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendWeeklySummary(toEmail, coachName, weekStart, weekEnd, summaryText string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Weekly Reflection Summary (%s - %s)", weekStart, weekEnd))

	greeting := "Hello"
	if coachName != "" {
		greeting = fmt.Sprintf("Hello %s", coachName)
	}

	// Preserve the summary's paragraph breaks in HTML.
	htmlSummary := strings.ReplaceAll(summaryText, "\n", "<br>")

	body := fmt.Sprintf(`
		<div style="font-family: Georgia, serif; padding: 20px; color: #333; max-width: 600px;">
			<p>%s,</p>
			<p>Here is this week's Responsagility reflection summary for your client:</p>
			<blockquote style="border-left: 3px solid #ccc; margin: 16px 0; padding-left: 16px; color: #444;">%s</blockquote>
			<p style="color: #888; font-size: 12px;">You receive this because your client added you as their coach. Week of %s to %s.</p>
		</div>
	`, greeting, htmlSummary, weekStart, weekEnd)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send weekly summary to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Weekly summary sent to %s\n", toEmail)
	return nil
}
