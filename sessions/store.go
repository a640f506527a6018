package sessions

// Keys under which session credentials are stored. These are the ONLY keys a
// Store is ever asked to hold; they are written as a set on login and
// removed as a set on logout.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyRole         = "role"
	KeyEmail        = "email"
	KeyUserName     = "userName"
)

// Store is a durable key/value cache for session credentials. Values are
// opaque strings-- no expiry, no encryption, no validation of token
// well-formedness. All writes are complete and visible to any reader in the
// same process by the time the call returns.
type Store interface {
	// Get returns the value stored under the given key, if there is one.
	Get(key string) (string, bool)
	// Set stores a single value under the given key.
	Set(key, value string) error
	// SetAll replaces the store's entire contents with the given entries, as
	// one operation. A reader never observes a partially written set.
	SetAll(entries map[string]string) error
	// RemoveAll deletes every entry. It is a no-op on an empty store.
	RemoveAll() error
}
