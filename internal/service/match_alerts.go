package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"estate-match/internal/domain"
	"estate-match/internal/email"
)

// MatchAlertService envia al agente un resumen en texto plano con los
// mejores resultados de matching para un cliente.
type MatchAlertService struct {
	logger *zap.Logger
	sender email.Sender
}

func NewMatchAlertService(logger *zap.Logger, sender email.Sender) *MatchAlertService {
	return &MatchAlertService{logger: logger, sender: sender}
}

// SendMatchDigest arma y envia el resumen. Un resultado vacio no envia nada.
func (s *MatchAlertService) SendMatchDigest(ctx context.Context, toEmail, clientName string, results []domain.MatchResult) error {
	if s.sender == nil {
		return fmt.Errorf("email sender not configured")
	}
	if len(results) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Top matches for %s", clientName)
	body := buildDigestBody(clientName, results)

	if err := s.sender.SendMatchDigest(ctx, toEmail, subject, body); err != nil {
		if s.logger != nil {
			s.logger.Warn("match digest send failed", zap.Error(err), zap.String("to", toEmail))
		}
		return err
	}
	return nil
}

func buildDigestBody(clientName string, results []domain.MatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Best matches for %s:\n\n", clientName)
	for i, res := range results {
		fmt.Fprintf(&b, "%d. listing %s (score %.2f)\n", i+1, res.CandidateID, res.OverallScore)
		for _, cs := range TopContributions(res, 3) {
			fmt.Fprintf(&b, "   - %s: %.2f\n", cs.Criterion, cs.RawScore)
		}
	}
	return b.String()
}
