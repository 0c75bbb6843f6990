// Package filters holds stock snapshot filters.
package filters

import "datalayer/internal/datalayer/models"

// RedactClientIP nulls the visitor IP. The user fragment is copied so the
// unfiltered snapshot keeps its value.
func RedactClientIP(snap models.Snapshot) models.Snapshot {
	if snap.User == nil || snap.User.IP == nil {
		return snap
	}
	u := *snap.User
	u.IP = nil
	snap.User = &u
	return snap
}
