package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/oggotrip/oggo-backend/configs"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

var EmailClient *BrevoService

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Missing API Key, Sender Email, or Sender Name.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
	}
	log.Println("✅ Email service initialized successfully.")
}

func (s *BrevoService) send(toEmail, toName, subject, htmlContent string) error {
	url := "https://api.brevo.com/v3/smtp/email"

	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = strings.Split(toEmail, "@")[0]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

func SendEmail(toName, toEmail, subject, htmlContent string) {
	if EmailClient == nil {
		log.Printf("⚠️ Email service not configured, skipping email to %s", toEmail)
		return
	}
	if err := EmailClient.send(toEmail, toName, subject, htmlContent); err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
	}
}

// SendOTPEmail delivers the verification code. Signup is blocked on this,
// so the error is returned rather than just logged.
func SendOTPEmail(toEmail, otp string) error {
	if EmailClient == nil {
		return fmt.Errorf("email service not configured")
	}
	html := fmt.Sprintf("<h1>Your verification code</h1><p>Use code <strong>%s</strong> to verify your email. It expires in 10 minutes.</p>", otp)
	return EmailClient.send(toEmail, "", "Your OggoTrip verification code", html)
}

func SendReferralInvite(toEmail, referralLink, inviterName string) error {
	if EmailClient == nil {
		return fmt.Errorf("email service not configured")
	}
	html := fmt.Sprintf("<h1>%s invited you to OggoTrip</h1><p>Sign up with their link and start booking: <a href=\"%s\">%s</a></p>", inviterName, referralLink, referralLink)
	return EmailClient.send(toEmail, "", fmt.Sprintf("%s invited you to OggoTrip", inviterName), html)
}

func SendBookingConfirmation(toName, toEmail, bookingReference string) {
	SendEmail(toName, toEmail, "Your booking is confirmed!",
		fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your payment was received and booking <strong>%s</strong> is confirmed.</p>", bookingReference))
}
