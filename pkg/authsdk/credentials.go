package authsdk

import "sync"

// Credentials is the session pair held by one client.
type Credentials struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

// Valid reports whether a session is present at all.
func (c Credentials) Valid() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// CredentialStore holds the client's session pair. Implementations must be
// safe for concurrent use.
type CredentialStore interface {
	Load() Credentials
	Store(Credentials)

	// SetAccess replaces only the access token. The refresh token rotates
	// on login, never on refresh.
	SetAccess(accessToken string)

	Clear()
}

// MemoryCredentialStore keeps credentials in process memory.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	creds Credentials
}

func NewMemoryCredentialStore(c Credentials) *MemoryCredentialStore {
	return &MemoryCredentialStore{creds: c}
}

func (m *MemoryCredentialStore) Load() Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds
}

func (m *MemoryCredentialStore) Store(c Credentials) {
	m.mu.Lock()
	m.creds = c
	m.mu.Unlock()
}

func (m *MemoryCredentialStore) SetAccess(accessToken string) {
	m.mu.Lock()
	m.creds.AccessToken = accessToken
	m.mu.Unlock()
}

func (m *MemoryCredentialStore) Clear() {
	m.mu.Lock()
	m.creds = Credentials{}
	m.mu.Unlock()
}
