// Package commands contains write-side use cases for the chat module.
package commands

import (
	"context"
	"fmt"

	"github.com/RobuxEmperium/robux-site/internal/platform/eventbus"
	"github.com/RobuxEmperium/robux-site/internal/platform/transaction"
	"github.com/RobuxEmperium/robux-site/modules/chat/domain"
	"github.com/RobuxEmperium/robux-site/modules/identity"
	"github.com/RobuxEmperium/robux-site/modules/shared/events"
	"github.com/RobuxEmperium/robux-site/modules/shared/events/contracts"
)

// PostMessageCommand appends a message to an order's conversation.
type PostMessageCommand struct {
	Actor   identity.Identity
	OrderID int64
	Content string
}

// PostMessageHandler handles PostMessageCommand. Only the order's buyer
// and sellers may post. The row is committed before the MessagePosted
// event reaches subscribers.
type PostMessageHandler struct {
	repo   domain.MessageRepository
	orders domain.OrderDirectory
	scope  transaction.Scope
	sink   events.Publisher
}

func NewPostMessageHandler(
	repo domain.MessageRepository,
	orders domain.OrderDirectory,
	scope transaction.Scope,
	sink events.Publisher,
) *PostMessageHandler {
	return &PostMessageHandler{repo: repo, orders: orders, scope: scope, sink: sink}
}

// Handle posts the message and returns its id.
func (h *PostMessageHandler) Handle(ctx context.Context, cmd PostMessageCommand) (int64, error) {
	return eventbus.AfterCommitWithResult(ctx, h.scope, h.sink,
		func(ctx context.Context, publisher events.Publisher) (int64, error) {
			buyerID, err := h.orders.BuyerOf(ctx, cmd.OrderID)
			if err != nil {
				return 0, err
			}
			if !cmd.Actor.IsSeller() && cmd.Actor.UserID != buyerID {
				return 0, domain.ErrNotParticipant
			}

			message, err := domain.NewMessage(cmd.OrderID, cmd.Actor.UserID, cmd.Content)
			if err != nil {
				return 0, err
			}
			if err := h.repo.Create(ctx, message); err != nil {
				return 0, fmt.Errorf("creating message: %w", err)
			}

			event := contracts.NewMessagePostedEvent(
				message.ID(),
				message.OrderID(),
				cmd.Actor.Email,
				message.Content(),
				message.CreatedAt(),
			)
			if err := publisher.Publish(ctx, event); err != nil {
				return 0, fmt.Errorf("staging message events: %w", err)
			}
			return message.ID(), nil
		})
}
