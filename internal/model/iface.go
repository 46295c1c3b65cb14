package model

// KeyValueStore is the origin-scoped string store backing user preferences.
// Get reports ok=false when the key is absent.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// KeyValueLister enumerates every key stored for the current origin.
type KeyValueLister interface {
	Entries() ([]KeyValue, error)
}

// PreferenceStore is the full store contract used by the CLI.
type PreferenceStore interface {
	KeyValueStore
	KeyValueLister
	Close() error
}
