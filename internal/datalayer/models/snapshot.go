package models

import (
	"encoding/json"
	"maps"
)

// Snapshot is the canonical per-request data object.
//
// Legacy holds the legacy scalar fields by their prefixed key; a key that is
// absent here is absent from the projected payload as well. Errors maps a
// collaborator source to the message of its failure and is emitted as
// customDL_error_<source> siblings. Extra holds keys added by snapshot
// filters and wins over every other key on output.
type Snapshot struct {
	Legacy map[string]any

	Meta      *Meta
	Site      *Site
	Theme     *Theme
	Device    *Device
	Marketing Marketing
	User      *User
	Commerce  *Commerce
	Cart      *Cart

	Errors map[string]string
	Extra  map[string]any
}

// Clone returns a copy whose maps can be edited without touching s.
// Fragments are shared.
func (s Snapshot) Clone() Snapshot {
	s.Legacy = maps.Clone(s.Legacy)
	s.Marketing = maps.Clone(s.Marketing)
	s.Errors = maps.Clone(s.Errors)
	s.Extra = maps.Clone(s.Extra)
	return s
}

// SetExtra records an additional top-level key.
func (s *Snapshot) SetExtra(key string, value any) {
	if s.Extra == nil {
		s.Extra = make(map[string]any)
	}
	s.Extra[key] = value
}

// Fragments returns the nested fragments by their top-level key. Absent
// fragments are typed nils so they encode as null.
func (s Snapshot) Fragments() map[string]any {
	return map[string]any{
		KeyMeta:      s.Meta,
		KeySite:      s.Site,
		KeyTheme:     s.Theme,
		KeyDevice:    s.Device,
		KeyMarketing: s.Marketing,
		KeyUser:      s.User,
		KeyCommerce:  s.Commerce,
		KeyCart:      s.Cart,
	}
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Legacy)+len(s.Errors)+len(s.Extra)+8)
	maps.Copy(out, s.Legacy)
	maps.Copy(out, s.Fragments())
	for source, msg := range s.Errors {
		out[ErrorKey(source)] = msg
	}
	maps.Copy(out, s.Extra)
	return json.Marshal(out)
}
