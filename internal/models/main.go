// Package models defines the core data structures for vault items and spaces.
package models

import "time"

// AnonymousPrincipal is the well-known principal of an unauthenticated caller.
const AnonymousPrincipal = "2vxsx-fae"

// ItemType identifies the payload kind carried by a VaultItem.
type ItemType string

const (
	// TypeLogin is a username/password credential for a website.
	TypeLogin ItemType = "login"
	// TypeCard is a payment card.
	TypeCard ItemType = "card"
	// TypeNote is a free-text secure note.
	TypeNote ItemType = "note"
	// TypeIdentity is a personal identity record.
	TypeIdentity ItemType = "identity"
)

// FieldType identifies the kind of a custom field on a login item.
type FieldType string

const (
	// FieldText is a plain text field.
	FieldText FieldType = "text"
	// FieldPassword is a maskable secret field.
	FieldPassword FieldType = "password"
	// FieldEmail is an email address field.
	FieldEmail FieldType = "email"
	// FieldURL is a URL field.
	FieldURL FieldType = "url"
)

// ItemData is the payload of a VaultItem. The set of implementations is
// closed: exactly one per ItemType, dispatched with a type switch rather
// than an unchecked cast.
type ItemData interface {
	itemType() ItemType
}

// VaultItem is a single entry in the vault.
type VaultItem struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`
	// Title is the display name of the item.
	Title string `json:"title"`
	// Type declares which ItemData implementation Data holds.
	Type ItemType `json:"type"`
	// SpaceID is the id of the space grouping this item.
	SpaceID string `json:"spaceId"`
	// IsFavorite marks the item as pinned to the favorites view.
	IsFavorite bool `json:"isFavorite"`
	// LastUsed is the time the item was last opened or copied from.
	LastUsed time.Time `json:"lastUsed"`
	// CreatedAt is the item creation time.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the last modification time.
	UpdatedAt time.Time `json:"updatedAt"`
	// Data is the type-tagged payload.
	Data ItemData `json:"data"`
}

// Valid reports whether the payload is present and matches the declared type.
func (i VaultItem) Valid() bool {
	return i.Data != nil && i.Data.itemType() == i.Type
}

// LoginData is the payload of a TypeLogin item.
type LoginData struct {
	Username     string        `json:"username"`
	Password     string        `json:"password"`
	URL          string        `json:"url"`
	Notes        string        `json:"notes,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
}

func (LoginData) itemType() ItemType { return TypeLogin }

// CustomField is a user-defined extra field on a login item.
type CustomField struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Value string    `json:"value"`
	Type  FieldType `json:"type"`
}

// CardData is the payload of a TypeCard item. Number and CVV are stored
// display-masked, as received from the source of the fixture data.
type CardData struct {
	CardholderName string `json:"cardholderName"`
	Number         string `json:"number"`
	ExpiryMonth    string `json:"expiryMonth"`
	ExpiryYear     string `json:"expiryYear"`
	CVV            string `json:"cvv"`
	Notes          string `json:"notes,omitempty"`
}

func (CardData) itemType() ItemType { return TypeCard }

// NoteData is the payload of a TypeNote item.
type NoteData struct {
	Content string `json:"content"`
}

func (NoteData) itemType() ItemType { return TypeNote }

// IdentityData is the payload of a TypeIdentity item.
type IdentityData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (IdentityData) itemType() ItemType { return TypeIdentity }

// Space is a user-defined grouping of vault items.
type Space struct {
	// ID is the unique identifier for the space.
	ID string `json:"id"`
	// Name is the display name of the space.
	Name string `json:"name"`
	// Icon is the icon tag rendered by the UI.
	Icon string `json:"icon"`
	// Color is the gradient tag rendered by the UI.
	Color string `json:"color"`
	// ItemCount is denormalized and recomputed from the catalog; a stored
	// value must not be trusted.
	ItemCount int `json:"itemCount"`
}
