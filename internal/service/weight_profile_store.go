package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrProfileNotFound = errors.New("weight profile not found")

// WeightProfileStore guarda perfiles de pesos por organizacion.
type WeightProfileStore interface {
	Get(ctx context.Context, name string) (WeightProfile, error)
	Put(ctx context.Context, profile WeightProfile) error
}

type memoryWeightProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]WeightProfile
}

func NewMemoryWeightProfileStore() WeightProfileStore {
	return &memoryWeightProfileStore{
		profiles: make(map[string]WeightProfile),
	}
}

func (s *memoryWeightProfileStore) Get(_ context.Context, name string) (WeightProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[strings.TrimSpace(name)]
	if !ok {
		return WeightProfile{}, ErrProfileNotFound
	}
	return profile, nil
}

func (s *memoryWeightProfileStore) Put(_ context.Context, profile WeightProfile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return errors.New("profile name is required")
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.Name] = profile
	return nil
}

type redisWeightProfileStore struct {
	client redisKVClient
	prefix string
}

func NewRedisWeightProfileStore(client *redis.Client) WeightProfileStore {
	if client == nil {
		return nil
	}
	return &redisWeightProfileStore{
		client: client,
		prefix: "matching:profile:",
	}
}

func (s *redisWeightProfileStore) Get(ctx context.Context, name string) (WeightProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return WeightProfile{}, ErrProfileNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := s.client.Get(ctx, s.prefix+name).Result()
	if errors.Is(err, redis.Nil) {
		return WeightProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return WeightProfile{}, err
	}
	var profile WeightProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return WeightProfile{}, err
	}
	// Un perfil escrito por otra version del servicio se valida igual al leer.
	if err := profile.Validate(); err != nil {
		return WeightProfile{}, err
	}
	return profile, nil
}

func (s *redisWeightProfileStore) Put(ctx context.Context, profile WeightProfile) error {
	if strings.TrimSpace(profile.Name) == "" {
		return errors.New("profile name is required")
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+profile.Name, raw, 0).Err()
}
