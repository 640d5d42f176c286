package domain

// KVStore is the durable client-side persistence capability: a small JSON
// key/value surface so the stores stay independent of any specific storage
// backend. Values survive restarts except in the session scope, which is
// wiped when the store is opened (the equivalent of browser sessionStorage).
type KVStore interface {
	// Get unmarshals the value under key into dest. The second return is
	// false when no value exists or it cannot be decoded.
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}) error
	Delete(key string)

	// Session-scoped variants: same contract, but entries do not survive
	// a store reopen.
	GetSession(key string, dest interface{}) bool
	SetSession(key string, value interface{}) error
	DeleteSession(key string)

	Close() error
}

// Fixed persistence keys. Persistence is best-effort convenience (survive
// restart), not a correctness-critical store.
const (
	KeySessionIdentity = "auth:identity"
	KeyMemberProfile   = "member:profile"
	KeyGridMode        = "grid:mode"
)
