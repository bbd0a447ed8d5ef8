package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"estate-match/internal/domain"
)

type mockClientRepo struct {
	client     domain.Client
	getErr     error
	candidates []domain.ClientCandidate
	listErr    error
	listCalls  int
}

func (m *mockClientRepo) Create(context.Context, domain.Client) error {
	return errors.New("not implemented")
}

func (m *mockClientRepo) GetByID(context.Context, string) (domain.Client, error) {
	return m.client, m.getErr
}

func (m *mockClientRepo) UpdatePreferences(context.Context, string, domain.PreferenceProfile) error {
	return errors.New("not implemented")
}

func (m *mockClientRepo) ListCandidates(context.Context) ([]domain.ClientCandidate, error) {
	m.listCalls++
	return m.candidates, m.listErr
}

type mockPropertyRepo struct {
	property   domain.Property
	getErr     error
	candidates []domain.PropertyCandidate
	listErr    error
	listCalls  int
}

func (m *mockPropertyRepo) Create(context.Context, domain.Property) error {
	return errors.New("not implemented")
}

func (m *mockPropertyRepo) GetByID(context.Context, string) (domain.Property, error) {
	return m.property, m.getErr
}

func (m *mockPropertyRepo) ListPublishedCandidates(context.Context) ([]domain.PropertyCandidate, error) {
	m.listCalls++
	return m.candidates, m.listErr
}

func newMatchServiceForTest(clients *mockClientRepo, properties *mockPropertyRepo) *MatchService {
	return NewMatchService(
		zap.NewNop(),
		clients,
		properties,
		NewMatchEngine(),
		NewMemoryWeightProfileStore(),
		NewMemoryMatchCache(),
		time.Minute,
	)
}

func TestMatchServicePropertiesForClient_RanksCandidates(t *testing.T) {
	clients := &mockClientRepo{client: domain.Client{
		ID:          "client-1",
		FullName:    "Ana Perez",
		Preferences: basePrefs(),
	}}
	properties := &mockPropertyRepo{candidates: []domain.PropertyCandidate{
		{ID: "prop-good", Attributes: matchingAttrs()},
		{ID: "prop-bad", Attributes: domain.ListingAttributes{Price: fptr(900000), Area: sptr("afueras")}},
	}}
	svc := newMatchServiceForTest(clients, properties)

	results, err := svc.PropertiesForClient(context.Background(), "client-1", "", DefaultMatchOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].CandidateID != "prop-good" {
		t.Fatalf("expected the compatible listing first, got %s", results[0].CandidateID)
	}
}

func TestMatchServicePropertiesForClient_CachesResults(t *testing.T) {
	clients := &mockClientRepo{client: domain.Client{ID: "client-1", Preferences: basePrefs()}}
	properties := &mockPropertyRepo{candidates: []domain.PropertyCandidate{
		{ID: "prop-1", Attributes: matchingAttrs()},
	}}
	svc := newMatchServiceForTest(clients, properties)

	if _, err := svc.PropertiesForClient(context.Background(), "client-1", "", DefaultMatchOptions()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.PropertiesForClient(context.Background(), "client-1", "", DefaultMatchOptions()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if properties.listCalls != 1 {
		t.Fatalf("expected the second call served from cache, repo hit %d times", properties.listCalls)
	}
}

func TestMatchServicePropertiesForClient_NotFound(t *testing.T) {
	clients := &mockClientRepo{getErr: pgx.ErrNoRows}
	svc := newMatchServiceForTest(clients, &mockPropertyRepo{})

	_, err := svc.PropertiesForClient(context.Background(), "missing", "", DefaultMatchOptions())
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestMatchServicePropertiesForClient_UnknownProfile(t *testing.T) {
	clients := &mockClientRepo{client: domain.Client{ID: "client-1", Preferences: basePrefs()}}
	svc := newMatchServiceForTest(clients, &mockPropertyRepo{})

	_, err := svc.PropertiesForClient(context.Background(), "client-1", "no-such-profile", DefaultMatchOptions())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestMatchServicePropertiesForClient_NamedProfileApplied(t *testing.T) {
	clients := &mockClientRepo{client: domain.Client{ID: "client-1", Preferences: domain.PreferenceProfile{
		BudgetMin: fptr(100000),
		BudgetMax: fptr(200000),
		Areas:     []string{"centro"},
	}}}
	properties := &mockPropertyRepo{candidates: []domain.PropertyCandidate{
		{ID: "budget-only", Attributes: domain.ListingAttributes{Price: fptr(150000), Area: sptr("salamanca")}},
		{ID: "area-only", Attributes: domain.ListingAttributes{Price: fptr(400000), Area: sptr("centro")}},
	}}

	profiles := NewMemoryWeightProfileStore()
	err := profiles.Put(context.Background(), WeightProfile{
		Name: "location-first",
		Weights: map[domain.CriterionID]float64{
			domain.CriterionBudget:   0.1,
			domain.CriterionLocation: 1.0,
		},
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	svc := NewMatchService(zap.NewNop(), clients, properties, NewMatchEngine(), profiles, NewMemoryMatchCache(), time.Minute)

	results, err := svc.PropertiesForClient(context.Background(), "client-1", "location-first", DefaultMatchOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].CandidateID != "area-only" {
		t.Fatalf("named profile must reweigh the ranking, got %s first", results[0].CandidateID)
	}
}

func TestMatchServiceClientsForProperty_RanksCandidates(t *testing.T) {
	properties := &mockPropertyRepo{property: domain.Property{
		ID:         "prop-1",
		Status:     domain.PropertyStatusPublished,
		Attributes: matchingAttrs(),
	}}
	clients := &mockClientRepo{candidates: []domain.ClientCandidate{
		{ID: "client-good", Preferences: basePrefs()},
		{ID: "client-bad", Preferences: domain.PreferenceProfile{BudgetMax: fptr(50000)}},
	}}
	svc := newMatchServiceForTest(clients, properties)

	results, err := svc.ClientsForProperty(context.Background(), "prop-1", "", DefaultMatchOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 || results[0].CandidateID != "client-good" {
		t.Fatalf("expected the compatible client first, got %+v", results)
	}
}

func TestMatchServiceClientsForProperty_NotFound(t *testing.T) {
	properties := &mockPropertyRepo{getErr: pgx.ErrNoRows}
	svc := newMatchServiceForTest(&mockClientRepo{}, properties)

	_, err := svc.ClientsForProperty(context.Background(), "missing", "", DefaultMatchOptions())
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}
