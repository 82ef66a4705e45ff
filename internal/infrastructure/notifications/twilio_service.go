package notifications

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// TwilioService implements domain.NotificationService. It delivers the
// two-factor login codes for the admin guard.
type TwilioService struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *slog.Logger
}

// NewTwilioService creates a new Twilio notification service.
func NewTwilioService(accountSID, authToken, fromNumber string, logger *slog.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioService{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// SendSMS implements domain.NotificationService. Without configured
// credentials the message is logged instead of sent, which keeps local
// development working.
func (t *TwilioService) SendSMS(to, message string) error {
	if t.fromNumber == "" {
		t.logger.Info("sms delivery skipped, twilio not configured", "to", to)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

// SendEmail implements domain.NotificationService. Email is not routed
// through Twilio; it is logged until a mail provider is wired.
func (t *TwilioService) SendEmail(to, subject, body string) error {
	t.logger.Info("email delivery skipped, no provider configured", "to", to, "subject", subject)
	return nil
}
