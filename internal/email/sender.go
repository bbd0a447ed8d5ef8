package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para el envio de resumenes de matching.
type Sender interface {
	SendMatchDigest(ctx context.Context, toEmail, subject, body string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendMatchDigest(_ context.Context, _, _, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
