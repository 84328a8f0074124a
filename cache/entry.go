package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"lukechampine.com/blake3"

	"github.com/shruggr/glyphcache/models"
)

// SchemaVersion tags persisted envelopes. Entries written by an
// incompatible schema are discarded on read instead of rehydrated
const SchemaVersion = "glyphcache/1"

// Entry is the cached state for one dataset kind
// UpstreamVersion is the version of the last fetched payload, kept only
// for version comparison on refresh
type Entry struct {
	Snapshot        *models.DatasetSnapshot `json:"snapshot"`
	UpstreamVersion string                  `json:"upstreamVersion"`
}

// envelope is the durable-tier wire form of an Entry
type envelope struct {
	Schema   string          `json:"schema"`
	Checksum string          `json:"checksum"`
	Entry    json.RawMessage `json:"entry"`
}

// encodeEntry serializes an entry into a checksummed envelope
func encodeEntry(entry *Entry) ([]byte, error) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	sum := blake3.Sum256(raw)
	env := envelope{
		Schema:   SchemaVersion,
		Checksum: hex.EncodeToString(sum[:]),
		Entry:    raw,
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache envelope: %w", err)
	}
	return data, nil
}

// decodeEntry parses a durable-tier envelope back into an entry
// A schema mismatch or checksum mismatch is an error; callers treat it
// as an absent entry
func decodeEntry(data []byte) (*Entry, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache envelope: %w", err)
	}

	if env.Schema != SchemaVersion {
		return nil, fmt.Errorf("cache schema %q does not match expected %q", env.Schema, SchemaVersion)
	}

	sum := blake3.Sum256(env.Entry)
	if hex.EncodeToString(sum[:]) != env.Checksum {
		return nil, fmt.Errorf("cache entry checksum mismatch")
	}

	var entry Entry
	if err := json.Unmarshal(env.Entry, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return &entry, nil
}
