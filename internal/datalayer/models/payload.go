package models

import (
	"encoding/json"
	"maps"
)

// Payload is the flattened projection of a Snapshot pushed to the tag
// manager queue. Each fragment is re-exposed under its prefixed key and each
// legacy scalar present in the snapshot under its own key.
type Payload struct {
	Event    string
	Snapshot Snapshot

	// Fragments by prefixed key, e.g. customDL_user.
	Fragments map[string]any
	Legacy    map[string]any
	Extra     map[string]any
}

// SetExtra records an additional top-level key.
func (p *Payload) SetExtra(key string, value any) {
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	p.Extra[key] = value
}

func (p Payload) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fragments)+len(p.Legacy)+len(p.Extra)+2)
	out[KeyEvent] = p.Event
	out[KeySnapshot] = p.Snapshot
	maps.Copy(out, p.Fragments)
	maps.Copy(out, p.Legacy)
	maps.Copy(out, p.Extra)
	return json.Marshal(out)
}
