// Package sms delivers one-time passwords to driver phones.
package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, body string) (messageID string, err error)
}

type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
	log        *zap.Logger
}

func NewTwilioSender(accountSID, authToken, fromNumber string, log *zap.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{
		client:     client,
		fromNumber: fromNumber,
		log:        log.With(zap.String("component", "sms")),
	}
}

func (t *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		t.log.Error("Failed to send SMS", zap.Error(err), zap.String("to", to))
		return "", fmt.Errorf("send sms to %s: %w", to, err)
	}

	var sid string
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	return sid, nil
}

// LogSender writes messages to the log instead of sending them. Used when no
// SMS credentials are configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.With(zap.String("component", "sms"))}
}

func (l *LogSender) Send(_ context.Context, to, body string) (string, error) {
	l.log.Info("SMS (not sent, no provider configured)",
		zap.String("to", to),
		zap.String("body", body),
	)
	return "log", nil
}
