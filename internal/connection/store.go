package connection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creamcroissant/trackerctl/internal/config"
	"github.com/creamcroissant/trackerctl/internal/repository"
)

// 持久化键名。
const (
	KeyAPIURL     = "api_url"
	KeyAdminToken = "admin_token"
)

// Profile is the endpoint the gateway talks to.
type Profile struct {
	BaseURL string
	Token   string
}

// Store persists the connection profile across sessions.
type Store struct {
	repo repository.SettingRepository
	now  func() time.Time
}

// NewStore wraps a setting repository.
func NewStore(repo repository.SettingRepository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// Get returns the stored value for key, or "" when it was never set.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return setting.Value, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	err := s.repo.Upsert(ctx, &repository.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Load reads the persisted profile. Missing keys yield empty fields.
func (s *Store) Load(ctx context.Context) (Profile, error) {
	baseURL, err := s.Get(ctx, KeyAPIURL)
	if err != nil {
		return Profile{}, err
	}
	token, err := s.Get(ctx, KeyAdminToken)
	if err != nil {
		return Profile{}, err
	}
	return Profile{BaseURL: baseURL, Token: token}, nil
}

// Save persists p.
func (s *Store) Save(ctx context.Context, p Profile) error {
	if err := s.Set(ctx, KeyAPIURL, p.BaseURL); err != nil {
		return err
	}
	return s.Set(ctx, KeyAdminToken, p.Token)
}

// Forget removes the persisted profile.
func (s *Store) Forget(ctx context.Context) error {
	for _, key := range []string{KeyAPIURL, KeyAdminToken} {
		if err := s.repo.Delete(ctx, key); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("delete setting %s: %w", key, err)
		}
	}
	return nil
}

// Entries lists every persisted setting, for inspection.
func (s *Store) Entries(ctx context.Context) ([]repository.Setting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// Resolve merges configuration over the stored profile, falling back to
// config.DefaultAPIURL.
func Resolve(cfg *config.Config, stored Profile) Profile {
	p := stored
	if cfg != nil {
		if cfg.API.URL != "" {
			p.BaseURL = cfg.API.URL
		}
		if cfg.API.Token != "" {
			p.Token = cfg.API.Token
		}
	}
	if p.BaseURL == "" {
		p.BaseURL = config.DefaultAPIURL
	}
	return p
}
