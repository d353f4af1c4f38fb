package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type MessageService interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender is the alternative provider for numbers BulkSMSBD cannot reach.
type TwilioSender struct {
	messageService MessageService
	from           string
	logger         *zap.SugaredLogger
}

func NewTwilioSender(accountSID, authToken, from string, logger *zap.SugaredLogger) *TwilioSender {
	clientParam := twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	}
	client := twilio.NewRestClientWithParams(clientParam)
	return &TwilioSender{messageService: client.Api, from: from, logger: logger}
}

func (t *TwilioSender) Send(ctx context.Context, message, phoneNumber string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(t.from)
	params.SetBody(message)

	lastErr := ""
	for i := 0; i < maxRetries; i++ {
		resp, err := t.messageService.CreateMessage(params)
		if err != nil {
			t.logger.Warnw("failed to send SMS",
				"attempt", i+1,
				"phone", phoneNumber,
				"error", err)
			lastErr = err.Error()
			time.Sleep(time.Second * time.Duration(i+1) * 2)
			continue
		} else if resp.Sid != nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrDeliveryFailed, lastErr)
}
