package model

import "github.com/google/uuid"

// Attachment is a file stored in the object store and referenced from a
// catalog record. Key is the object-store key so deletes never have to parse
// the public URL back apart.
type Attachment struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
	Key string `json:"key,omitempty"`
}

// NewAttachment builds an attachment with a fresh identifier.
func NewAttachment(url, key string) Attachment {
	return Attachment{ID: uuid.NewString(), URL: url, Key: key}
}

// Empty reports whether the slot holds no file.
func (a Attachment) Empty() bool {
	return a.URL == ""
}
