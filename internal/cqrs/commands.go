package cqrs

import "encoding/json"

type SignupCommand struct {
	Name     string
	Email    string
	Password string
}

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshTokenCommand struct {
	Token string
}

type LogoutCommand struct {
	Token string
}

// LogoUpload carries a deferred logo file selected in the form. The raw
// bytes travel with the command; upload happens inside the save, before
// the record write.
type LogoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type SaveReceiptCommand struct {
	OwnerID string
	Type    string
	Data    json.RawMessage
	Logo    *LogoUpload
}

type UpdateReceiptCommand struct {
	ReceiptID string
	OwnerID   string
	Data      json.RawMessage
	Logo      *LogoUpload
}

type DeleteReceiptCommand struct {
	ReceiptID string
	OwnerID   string
}
