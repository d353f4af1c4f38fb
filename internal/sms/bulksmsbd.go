package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	bulkSmsBdEndpoint = "http://bulksmsbd.net/api/smsapi"
	// BulkSMSBD reports success with this response code.
	bulkSmsBdAccepted = 202

	maxRetries = 3
)

type bulkSmsBdResponse struct {
	ResponseCode int    `json:"response_code"`
	MessageID    any    `json:"message_id"`
	SuccessMsg   string `json:"success_message"`
	ErrorMsg     string `json:"error_message"`
}

type BulkSmsBdSender struct {
	endpoint string
	apiKey   string
	senderID string
	client   *http.Client
	logger   *zap.SugaredLogger
}

func NewBulkSmsBdSender(apiKey, senderID string, logger *zap.SugaredLogger) *BulkSmsBdSender {
	return &BulkSmsBdSender{
		endpoint: bulkSmsBdEndpoint,
		apiKey:   apiKey,
		senderID: senderID,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

func (b *BulkSmsBdSender) Send(ctx context.Context, message, phoneNumber string) error {
	refCode := uuid.New().String()

	lastErr := ""
	for i := 0; i < maxRetries; i++ {
		err := b.send(ctx, message, phoneNumber)
		if err != nil {
			b.logger.Warnw("failed to send SMS",
				"attempt", i+1,
				"phone", phoneNumber,
				"ref", refCode,
				"error", err)
			lastErr = err.Error()
			time.Sleep(time.Second * time.Duration(i+1) * 2)
			continue
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrDeliveryFailed, lastErr)
}

func (b *BulkSmsBdSender) send(ctx context.Context, message, phoneNumber string) error {
	params := url.Values{}
	params.Set("api_key", b.apiKey)
	params.Set("type", "text")
	params.Set("number", phoneNumber)
	params.Set("senderid", b.senderID)
	params.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result bulkSmsBdResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("unexpected provider response: %s", string(body))
	}

	if result.ResponseCode != bulkSmsBdAccepted {
		return fmt.Errorf("provider rejected message: code %d %s", result.ResponseCode, result.ErrorMsg)
	}

	return nil
}
