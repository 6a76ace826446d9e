// Package resources implements the resource entity: its sanitization rules,
// storage layer, business logic and HTTP handlers. A resource is an ordered
// sequence of cells (strings or numbers) with creation/modification
// timestamps and an optional soft-deletion timestamp.
package resources

// Resource is a resource record as stored. Timestamps are epoch
// milliseconds. Deleted is nil for live resources; a non-nil value marks the
// record soft-deleted and carries the deletion time.
type Resource struct {
	ID       string `json:"id"`
	Data     []any  `json:"data"`
	Created  int64  `json:"created"`
	Modified int64  `json:"modified"`
	Deleted  *int64 `json:"deleted,omitempty"`
}

// RawResource is the untrusted creation payload. ID is optional; Data cells
// may be of any JSON type and are normalized by Sanitize.
type RawResource struct {
	ID   string `json:"id"`
	Data []any  `json:"data"`
}

// EditRequest is the payload of the edit endpoint: a full replacement for
// the resource's data.
type EditRequest struct {
	Data []any `json:"data"`
}
