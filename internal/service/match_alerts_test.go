package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"estate-match/internal/domain"
)

type mockSender struct {
	to      string
	subject string
	body    string
	calls   int
	err     error
}

func (m *mockSender) SendMatchDigest(_ context.Context, toEmail, subject, body string) error {
	m.calls++
	m.to = toEmail
	m.subject = subject
	m.body = body
	return m.err
}

func digestResults() []domain.MatchResult {
	return []domain.MatchResult{
		{
			CandidateID:  "prop-1",
			OverallScore: 92.5,
			Breakdown: []domain.CriterionScore{
				{Criterion: domain.CriterionBudget, RawScore: 100, Weight: 1.0, WeightedScore: 100, Applicable: true},
				{Criterion: domain.CriterionLocation, RawScore: 100, Weight: 0.9, WeightedScore: 90, Applicable: true},
				{Criterion: domain.CriterionPets, Weight: 0.4, Applicable: false},
			},
		},
		{CandidateID: "prop-2", OverallScore: 71.0},
	}
}

func TestSendMatchDigest_BuildsReadableSummary(t *testing.T) {
	sender := &mockSender{}
	svc := NewMatchAlertService(zap.NewNop(), sender)

	err := svc.SendMatchDigest(context.Background(), "agent@example.com", "Ana Perez", digestResults())
	if err != nil {
		t.Fatalf("send digest: %v", err)
	}
	if sender.calls != 1 {
		t.Fatalf("expected one send, got %d", sender.calls)
	}
	if sender.to != "agent@example.com" {
		t.Fatalf("unexpected recipient: %q", sender.to)
	}
	if !strings.Contains(sender.subject, "Ana Perez") {
		t.Fatalf("subject must name the client: %q", sender.subject)
	}
	if !strings.Contains(sender.body, "prop-1") || !strings.Contains(sender.body, "92.50") {
		t.Fatalf("body must list top candidates with scores:\n%s", sender.body)
	}
	if !strings.Contains(sender.body, "budget") {
		t.Fatalf("body must surface top contributing criteria:\n%s", sender.body)
	}
	if strings.Contains(sender.body, "pets") {
		t.Fatalf("inapplicable criteria must not show up in the digest:\n%s", sender.body)
	}
}

func TestSendMatchDigest_EmptyResultsSendNothing(t *testing.T) {
	sender := &mockSender{}
	svc := NewMatchAlertService(zap.NewNop(), sender)

	if err := svc.SendMatchDigest(context.Background(), "agent@example.com", "Ana Perez", nil); err != nil {
		t.Fatalf("empty digest must be a no-op, got %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no send for empty results, got %d", sender.calls)
	}
}

func TestSendMatchDigest_PropagatesSenderError(t *testing.T) {
	sender := &mockSender{err: errors.New("smtp down")}
	svc := NewMatchAlertService(zap.NewNop(), sender)

	if err := svc.SendMatchDigest(context.Background(), "agent@example.com", "Ana Perez", digestResults()); err == nil {
		t.Fatalf("expected sender error surfaced")
	}
}
