/*
Package message defines the persisted message record exchanged between Sehra
users.

A message is immutable once created except for its read flag, which the
read-state tracker flips in bulk per (sender, recipient) pair.
*/
package message

import "time"

// Type tags the kind of content a message carries.
type Type string

const (
	// TypeText is a plain text message.
	TypeText Type = "text"

	// TypeAttachment is a message whose body is an attachment object key.
	TypeAttachment Type = "attachment"
)

// Valid reports whether t is a known message type.
func (t Type) Valid() bool {
	return t == TypeText || t == TypeAttachment
}

// MaxBodyBytes caps the message body size accepted by the relay.
const MaxBodyBytes = 5000

// Message is one persisted record in a sender→recipient conversation.
type Message struct {
	// ID is assigned by the store on insert.
	ID int64 `json:"id"`

	// SenderID and RecipientID reference directory users.
	SenderID    int64 `json:"senderId"`
	RecipientID int64 `json:"recipientId"`

	// Body is the message content.
	Body string `json:"message"`

	// Type tags the content kind.
	Type Type `json:"type"`

	// Read reports whether the recipient has marked the conversation read
	// since this message arrived.
	Read bool `json:"read"`

	// CreatedAt is the store-assigned creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}
