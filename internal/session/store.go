// Package session persists the operator's token and role.
//
// Two key schemes are kept in sync on every write: the legacy pair written by
// older consoles (a generic token plus a JSON user blob) and the current pair
// (a scoped token plus a bare role). Reads prefer the current scheme and fall
// back to the legacy one.
package session

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/pkg/domain"
)

// Storage keys.
const (
	KeyLegacyToken = "admin_token"
	KeyLegacyUser  = "admin_user"
	KeyToken       = "sa_token"
	KeyRole        = "sa_role"
)

var allKeys = []string{KeyLegacyToken, KeyLegacyUser, KeyToken, KeyRole}

// Store reads and writes the session. Get never fails: anything missing or
// unreadable means "unauthenticated".
type Store interface {
	Get() domain.Session
	Set(token, role string) error
	Clear() error
}

// Backend is persisted key-value storage. Last writer wins.
type Backend interface {
	Load() (map[string]string, error)
	Save(map[string]string) error
}

type kvStore struct {
	backend Backend
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*kvStore)

// WithLogger sets the logger that reports unreadable storage.
func WithLogger(l *zap.Logger) Option {
	return func(s *kvStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Store over the given backend.
func New(b Backend, opts ...Option) Store {
	s := &kvStore{backend: b, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemory returns a Store that lives only as long as the process.
func NewMemory() Store {
	return New(NewMemoryBackend(nil))
}

// NewFile returns a Store persisted as a JSON object at path.
func NewFile(path string, opts ...Option) Store {
	return New(&FileBackend{Path: path}, opts...)
}

// Get derives the session from storage on every call.
func (s *kvStore) Get() domain.Session {
	kv := s.load("get")
	if len(kv) == 0 {
		return domain.Session{Role: domain.RoleSuperAdmin}
	}

	token := kv[KeyToken]
	if token == "" {
		token = kv[KeyLegacyToken]
	}

	role := kv[KeyRole]
	if role == "" {
		role = legacyRole(kv[KeyLegacyUser])
	}
	return domain.Session{Token: token, Role: role}
}

// legacyRole reads the role out of the legacy user blob.
func legacyRole(blob string) string {
	if blob == "" {
		return domain.RoleSuperAdmin
	}
	var u struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal([]byte(blob), &u); err != nil || u.Role == "" {
		return domain.RoleSuperAdmin
	}
	return u.Role
}

// Set writes token and role under both key schemes. An empty role is stored
// as the superadmin role.
func (s *kvStore) Set(token, role string) error {
	if role == "" {
		role = domain.RoleSuperAdmin
	}
	blob, err := json.Marshal(domain.AdminUser{Role: role})
	if err != nil {
		return fmt.Errorf("session.Set: %w", err)
	}
	kv := s.load("set")
	kv[KeyLegacyToken] = token
	kv[KeyLegacyUser] = string(blob)
	kv[KeyToken] = token
	kv[KeyRole] = role
	if err := s.backend.Save(kv); err != nil {
		return fmt.Errorf("session.Set: %w", err)
	}
	return nil
}

// Clear erases every session key under both schemes, leaving other keys alone.
func (s *kvStore) Clear() error {
	kv := s.load("clear")
	for _, k := range allKeys {
		delete(kv, k)
	}
	if err := s.backend.Save(kv); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}

// load reads storage, treating a failed read as empty. Writes that follow a
// failed read replace whatever was unreadable.
func (s *kvStore) load(op string) map[string]string {
	kv, err := s.backend.Load()
	if err != nil {
		s.logger.Warn("session storage unreadable", zap.String("op", op), zap.Error(err))
		return make(map[string]string)
	}
	if kv == nil {
		kv = make(map[string]string)
	}
	return kv
}
