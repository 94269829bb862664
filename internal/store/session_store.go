package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"xprlink/internal/domain"
)

const (
	sessionsFilename       = "link_sessions.json"
	sealedSessionsFilename = "link_sessions.json.enc"
)

// SessionFileStore persists linked sessions to disk.
type SessionFileStore struct {
	dir        string
	passphrase string
	params     scryptParams
	mu         sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir. A non-empty
// passphrase seals the file at rest.
func NewSessionFileStore(dir, passphrase string) *SessionFileStore {
	return &SessionFileStore{dir: dir, passphrase: passphrase, params: defaultScryptParams()}
}

// SaveLinkSession stores or replaces the session for (AppID, ChainID).
func (s *SessionFileStore) SaveLinkSession(session domain.StoredSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}
	sessions[sessionKey(session.AppID, session.ChainID)] = session
	return s.save(sessions)
}

// LoadLinkSession retrieves the session stored for (appID, chainID).
func (s *SessionFileStore) LoadLinkSession(
	appID domain.AppIdentifier,
	chainID domain.ChainID,
) (domain.StoredSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return domain.StoredSession{}, false, err
	}
	session, ok := sessions[sessionKey(appID, chainID)]
	return session, ok, nil
}

// DeleteLinkSession forgets the session for (appID, chainID). Deleting a
// missing entry is not an error.
func (s *SessionFileStore) DeleteLinkSession(appID domain.AppIdentifier, chainID domain.ChainID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}
	key := sessionKey(appID, chainID)
	if _, ok := sessions[key]; !ok {
		return nil
	}
	delete(sessions, key)
	if len(sessions) == 0 {
		return removeFile(s.path())
	}
	return s.save(sessions)
}

func (s *SessionFileStore) path() string {
	if s.passphrase != "" {
		return filepath.Join(s.dir, sealedSessionsFilename)
	}
	return filepath.Join(s.dir, sessionsFilename)
}

func (s *SessionFileStore) load() (map[string]domain.StoredSession, error) {
	sessions := make(map[string]domain.StoredSession)
	raw, err := readFile(s.path())
	if err != nil || raw == nil {
		return sessions, err
	}
	if s.passphrase != "" {
		if raw, err = unseal(s.passphrase, raw); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path(), err)
	}
	return sessions, nil
}

func (s *SessionFileStore) save(sessions map[string]domain.StoredSession) error {
	raw, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return err
	}
	if s.passphrase != "" {
		if raw, err = seal(s.passphrase, raw, s.params); err != nil {
			return err
		}
	}
	return writeFile(s.path(), raw, 0o600)
}

func sessionKey(appID domain.AppIdentifier, chainID domain.ChainID) string {
	return fmt.Sprintf("%s|%s", appID.String(), chainID.String())
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
