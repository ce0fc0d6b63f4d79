package domain

// A Session is the minimal record of a logged-in admin. Created by a
// successful credential check, destroyed on explicit logout or process
// restart. No expiry, no refresh.
type Session struct {
	Username string
}

// A Credential is one allow-list entry. PasswordHash is a bcrypt hash,
// never a plaintext password.
type Credential struct {
	Username     string
	PasswordHash string
}

// CatalogEventKind tags a catalog change event.
type CatalogEventKind string

const (
	ProductCreated CatalogEventKind = "created"
	ProductUpdated CatalogEventKind = "updated"
	ProductDeleted CatalogEventKind = "deleted"
)

// A CatalogEvent describes one committed catalog mutation. Events are
// derived from the store write, delivered best-effort.
type CatalogEvent struct {
	Kind    CatalogEventKind
	Product Product
}
