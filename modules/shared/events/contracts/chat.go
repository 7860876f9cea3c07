package contracts

import (
	"strconv"
	"time"

	"github.com/RobuxEmperium/robux-site/modules/shared/events"
)

const (
	MessagePostedEventType events.EventType = "chat.MessagePosted"
)

// MessagePostedEvent is published after a chat message has durably committed.
// The realtime module fans it out to the order's chat group.
type MessagePostedEvent struct {
	events.BaseEvent
	MessageID int64     `json:"message_id"`
	OrderID   int64     `json:"order_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessagePostedEvent(messageID, orderID int64, author, content string, createdAt time.Time) MessagePostedEvent {
	return MessagePostedEvent{
		BaseEvent: events.NewBaseEvent(MessagePostedEventType, strconv.FormatInt(orderID, 10)),
		MessageID: messageID,
		OrderID:   orderID,
		Author:    author,
		Content:   content,
		CreatedAt: createdAt,
	}
}
