// Package domain contains business entities and rules for order chat.
package domain

import (
	"strings"
	"time"
)

// Message is a single chat message inside an order's conversation.
// Messages are append-only: no edits, no deletes.
type Message struct {
	id        int64
	orderID   int64
	authorID  int64
	content   string
	createdAt time.Time
}

// NewMessage creates a message from an authenticated author. The id is
// zero until the repository persists the row.
func NewMessage(orderID, authorID int64, content string) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	return &Message{
		orderID:   orderID,
		authorID:  authorID,
		content:   content,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstitute rebuilds a message from persistence.
func Reconstitute(id, orderID, authorID int64, content string, createdAt time.Time) *Message {
	return &Message{
		id:        id,
		orderID:   orderID,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
	}
}

// AttachID records the storage-assigned id.
func (m *Message) AttachID(id int64) { m.id = id }

func (m *Message) ID() int64            { return m.id }
func (m *Message) OrderID() int64       { return m.orderID }
func (m *Message) AuthorID() int64      { return m.authorID }
func (m *Message) Content() string      { return m.content }
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// View is the read-model row for a conversation listing, with the
// author's email resolved.
type View struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
