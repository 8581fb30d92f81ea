package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dereksuun/ocr-frontend/internal/client/session"
	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

//go:generate moq -out whoami_mock.go . WhoamiClient

// WhoamiClient fetches the current-user document from the backend.
type WhoamiClient interface {
	Whoami(ctx context.Context) (map[string]json.RawMessage, error)
}

// ErrNoSession is returned when no usable session can be restored.
var ErrNoSession = errors.New("no active session")

// Profile is the normalized identity of the signed-in user.
type Profile struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
	IsAdmin     bool
	Sector      *apitypes.Sector

	// Degraded marks a profile stood in for a failed identity fetch: the
	// session is valid but admin rights and sector are unknown.
	Degraded bool
}

// FieldMap lists, in priority order, the backend field names to probe for
// each profile attribute. Deployments disagree on naming, so each attribute
// carries a fallback chain.
type FieldMap struct {
	ID          []string
	Username    []string
	Email       []string
	DisplayName []string
	Admin       []string
	Sector      []string
}

// DefaultFieldMap covers the field spellings seen across known deployments.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		ID:          []string{"id", "user_id", "pk"},
		Username:    []string{"username", "login", "user_name"},
		Email:       []string{"email", "email_address"},
		DisplayName: []string{"display_name", "name", "full_name", "username"},
		Admin:       []string{"is_admin", "isAdmin", "admin", "is_staff", "is_superuser"},
		Sector:      []string{"sector", "department", "sector_name"},
	}
}

// Service resolves and caches the current user's profile.
type Service struct {
	client  WhoamiClient
	session *session.Manager
	fields  FieldMap
	log     *slog.Logger

	mu      sync.Mutex
	current *Profile
}

// Option customizes a Service.
type Option func(*Service)

// WithFieldMap overrides the default attribute fallback chains.
func WithFieldMap(fields FieldMap) Option {
	return func(s *Service) {
		s.fields = fields
	}
}

func NewService(client WhoamiClient, sess *session.Manager, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		client:  client,
		session: sess,
		fields:  DefaultFieldMap(),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the cached profile, fetching it on first use.
func (s *Service) Current(ctx context.Context) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return s.current, nil
	}
	return s.fetchLocked(ctx)
}

// Reload discards the cache and fetches the profile again.
func (s *Service) Reload(ctx context.Context) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return s.fetchLocked(ctx)
}

// Clear drops the cached profile. Call it when the session ends.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Restore resumes a previous session from the persisted refresh token and
// returns the profile. It returns ErrNoSession when nothing is persisted or
// the token was rejected. An identity fetch failure on a live session is
// non-fatal: Restore logs it and returns a degraded profile (non-admin, no
// sector) that is not cached, so a later call retries the fetch.
func (s *Service) Restore(ctx context.Context) (*Profile, error) {
	if s.session.Store().AccessToken() == "" {
		token, err := s.session.Refresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		if token == "" {
			return nil, ErrNoSession
		}
		s.log.Debug("session restored from persisted refresh token")
	}
	profile, err := s.Current(ctx)
	if err != nil {
		s.log.Warn("identity fetch failed, continuing without profile", "error", err)
		return &Profile{Degraded: true}, nil
	}
	return profile, nil
}

func (s *Service) fetchLocked(ctx context.Context) (*Profile, error) {
	raw, err := s.client.Whoami(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	profile := s.normalize(raw)
	s.current = &profile
	return s.current, nil
}

func (s *Service) normalize(raw map[string]json.RawMessage) Profile {
	p := Profile{
		ID:          firstScalar(raw, s.fields.ID),
		Username:    firstScalar(raw, s.fields.Username),
		Email:       firstScalar(raw, s.fields.Email),
		DisplayName: firstScalar(raw, s.fields.DisplayName),
	}
	for _, key := range s.fields.Admin {
		if v, ok := raw[key]; ok {
			if admin, ok := parseBool(v); ok {
				p.IsAdmin = admin
				break
			}
		}
	}
	for _, key := range s.fields.Sector {
		if v, ok := raw[key]; ok {
			if sector := parseSector(v); sector != nil {
				p.Sector = sector
				break
			}
		}
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Username
	}
	return p
}

// firstScalar probes keys in order and returns the first present value
// rendered as a string. Strings and numbers qualify, nulls do not.
func firstScalar(raw map[string]json.RawMessage, keys []string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var str string
		if err := json.Unmarshal(v, &str); err == nil {
			if str != "" {
				return str
			}
			continue
		}
		var num json.Number
		if err := json.Unmarshal(v, &num); err == nil {
			return num.String()
		}
	}
	return ""
}

// parseBool accepts JSON booleans plus the string and numeric spellings
// some backends use ("true", "1", 1).
func parseBool(v json.RawMessage) (value, ok bool) {
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b, true
	}
	var str string
	if err := json.Unmarshal(v, &str); err == nil {
		parsed, err := strconv.ParseBool(strings.ToLower(str))
		if err != nil {
			return false, false
		}
		return parsed, true
	}
	var num float64
	if err := json.Unmarshal(v, &num); err == nil {
		return num != 0, true
	}
	return false, false
}

// parseSector accepts a sector object, a bare name string, or a bare id.
func parseSector(v json.RawMessage) *apitypes.Sector {
	var sector apitypes.Sector
	if err := json.Unmarshal(v, &sector); err == nil && (sector.ID != "" || sector.Name != "") {
		return &sector
	}
	var str string
	if err := json.Unmarshal(v, &str); err == nil {
		if str == "" {
			return nil
		}
		return &apitypes.Sector{Name: str}
	}
	var num json.Number
	if err := json.Unmarshal(v, &num); err == nil {
		return &apitypes.Sector{ID: num.String()}
	}
	return nil
}
