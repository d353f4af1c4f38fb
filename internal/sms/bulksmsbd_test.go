package sms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestBulkSmsBdSender(t *testing.T, handler http.HandlerFunc) (*BulkSmsBdSender, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sender := &BulkSmsBdSender{
		endpoint: server.URL,
		apiKey:   "test-api-key",
		senderID: "KitchenRack",
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   zaptest.NewLogger(t).Sugar(),
	}
	return sender, server
}

func TestBulkSmsBdSenderSend(t *testing.T) {
	ctx := context.Background()
	phone := "+8801712345678"
	message := "Your OTP is 123456"

	t.Run("should send the message successfully", func(t *testing.T) {
		var gotQuery atomic.Value
		sender, _ := newTestBulkSmsBdSender(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery.Store(r.URL.Query())
			w.Write([]byte(`{"response_code": 202, "success_message": "SMS Submitted Successfully"}`))
		})

		err := sender.Send(ctx, message, phone)
		require.NoError(t, err)

		query := gotQuery.Load().(url.Values)
		assert.Equal(t, "test-api-key", query.Get("api_key"))
		assert.Equal(t, phone, query.Get("number"))
		assert.Equal(t, message, query.Get("message"))
		assert.Equal(t, "KitchenRack", query.Get("senderid"))
	})

	t.Run("should fail when the provider rejects the message", func(t *testing.T) {
		var calls atomic.Int32
		sender, _ := newTestBulkSmsBdSender(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"response_code": 1001, "error_message": "Invalid Number"}`))
		})

		err := sender.Send(ctx, message, "not-a-number")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDeliveryFailed))
		assert.Equal(t, int32(maxRetries), calls.Load())
	})

	t.Run("should retry on failure and eventually succeed", func(t *testing.T) {
		var calls atomic.Int32
		sender, _ := newTestBulkSmsBdSender(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Write([]byte(`{"response_code": 1005, "error_message": "Internal Error"}`))
				return
			}
			w.Write([]byte(`{"response_code": 202}`))
		})

		err := sender.Send(ctx, message, phone)
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("should fail on a non-JSON provider response", func(t *testing.T) {
		sender, _ := newTestBulkSmsBdSender(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway error</html>"))
		})

		err := sender.Send(ctx, message, phone)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDeliveryFailed))
	})
}
