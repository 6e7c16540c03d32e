package controller

import (
	"context"
	"strings"
	"time"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/message/dto"
	"anoa.com/leadercircle/internal/modules/message/repository"
	"anoa.com/leadercircle/internal/state"
	"anoa.com/leadercircle/pkg/apperror"
)

const fieldConversation = "conversation"

const errNoConversation = "Open a conversation before sending a message"

// Conversation is every message exchanged with one counterpart, oldest first.
type Conversation struct {
	CounterpartID   string
	CounterpartName string
	Messages        []entity.Message
}

type State struct {
	Conversation          Conversation
	IsLoadingConversation bool
	ConversationError     string

	// SendingMessage is true while at least one send is unconfirmed.
	SendingMessage bool
	SendError      string

	pendingSends int
}

// Controller drives the chat screen. Sends are applied optimistically and
// reconciled by local id once the server answers.
type Controller struct {
	*state.Base[State]
	repo        repository.MessageRepository
	currentUser func() string
	now         func() time.Time
}

// NewController builds a controller; currentUser returns the signed-in user's id.
func NewController(repo repository.MessageRepository, currentUser func() string) *Controller {
	return &Controller{
		Base:        state.NewBase(State{}),
		repo:        repo,
		currentUser: currentUser,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// LoadConversation switches to counterpartID and fetches the whole thread.
// Switching counterpart drops the previous thread immediately.
func (c *Controller) LoadConversation(ctx context.Context, counterpartID, counterpartName string) {
	ctx, ticket, done := c.Begin(ctx, fieldConversation)
	defer done()

	c.Update(func(s State) State {
		if s.Conversation.CounterpartID != counterpartID {
			s.Conversation = Conversation{CounterpartID: counterpartID}
		}
		if counterpartName != "" {
			s.Conversation.CounterpartName = counterpartName
		}
		s.IsLoadingConversation = true
		s.ConversationError = ""
		return s
	})

	result := c.repo.GetConversation(ctx, counterpartID)

	c.Apply(ticket, func(s State) State {
		s.IsLoadingConversation = false
		result.Fold(func(messages []entity.Message) {
			// Unconfirmed sends are not on the server yet; keep them at the tail.
			s.Conversation.Messages = append(cloneMessages(messages), pendingMessages(s.Conversation.Messages)...)
			s.ConversationError = ""
		}, func(err *apperror.AppError) {
			s.ConversationError = err.Message
		})
		return s
	})
}

// Refresh reloads the open conversation, if any.
func (c *Controller) Refresh(ctx context.Context) {
	conv := c.Snapshot().Conversation
	if conv.CounterpartID == "" {
		return
	}
	c.LoadConversation(ctx, conv.CounterpartID, conv.CounterpartName)
}

// SendMessage appends an optimistic message to the open conversation, then
// replaces it with the server's copy or removes it if the send fails. It
// returns the placeholder's local id, or "" when nothing was sent.
func (c *Controller) SendMessage(ctx context.Context, content string) entity.LocalID {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	receiverID := c.Snapshot().Conversation.CounterpartID
	if receiverID == "" {
		c.Update(func(s State) State {
			s.SendError = errNoConversation
			return s
		})
		return ""
	}

	placeholder := entity.Message{
		LocalID:    entity.NewLocalID(),
		SenderID:   c.currentUser(),
		ReceiverID: receiverID,
		Content:    content,
		SentAt:     c.now(),
		IsRead:     false,
	}

	c.Update(func(s State) State {
		if s.Conversation.CounterpartID == receiverID {
			s.Conversation.Messages = append(cloneMessages(s.Conversation.Messages), placeholder)
		}
		s.pendingSends++
		s.SendingMessage = true
		return s
	})

	ctx, done := c.Bind(ctx)
	defer done()

	result := c.repo.SendMessage(ctx, dto.SendMessageRequest{
		ReceiverID: receiverID,
		Content:    content,
	})

	c.Update(func(s State) State {
		s.pendingSends--
		s.SendingMessage = s.pendingSends > 0
		result.Fold(func(confirmed entity.Message) {
			s.Conversation.Messages = confirmLocal(s.Conversation.Messages, placeholder.LocalID, confirmed)
			s.SendError = ""
		}, func(err *apperror.AppError) {
			s.Conversation.Messages = removeLocal(s.Conversation.Messages, placeholder.LocalID)
			s.SendError = err.Message
		})
		return s
	})

	return placeholder.LocalID
}

// MarkAsRead flags a confirmed message as read. Failures are ignored.
func (c *Controller) MarkAsRead(ctx context.Context, messageID string) {
	if messageID == "" {
		return
	}

	ctx, done := c.Bind(ctx)
	defer done()

	if !c.repo.MarkAsRead(ctx, messageID).IsSuccess() {
		return
	}

	c.Update(func(s State) State {
		s.Conversation.Messages = markRead(s.Conversation.Messages, messageID)
		return s
	})
}

// MarkConversationRead marks every unread message received from the
// counterpart of the open conversation.
func (c *Controller) MarkConversationRead(ctx context.Context) {
	me := c.currentUser()
	for _, m := range c.Snapshot().Conversation.Messages {
		if !m.IsPending() && !m.IsRead && m.ReceiverID == me {
			c.MarkAsRead(ctx, m.ID)
		}
	}
}

func (c *Controller) ClearSendError() {
	c.Update(func(s State) State {
		s.SendError = ""
		return s
	})
}

func (c *Controller) ClearConversationError() {
	c.Update(func(s State) State {
		s.ConversationError = ""
		return s
	})
}

func cloneMessages(in []entity.Message) []entity.Message {
	out := make([]entity.Message, len(in))
	copy(out, in)
	return out
}

func pendingMessages(in []entity.Message) []entity.Message {
	var out []entity.Message
	for _, m := range in {
		if m.IsPending() {
			out = append(out, m)
		}
	}
	return out
}

// confirmLocal swaps the placeholder for the server message in place. If a
// reload already brought the server copy in, the placeholder is dropped instead.
func confirmLocal(in []entity.Message, local entity.LocalID, confirmed entity.Message) []entity.Message {
	for _, m := range in {
		if !m.IsPending() && m.ID == confirmed.ID {
			return removeLocal(in, local)
		}
	}

	out := cloneMessages(in)
	for i := range out {
		if out[i].LocalID == local {
			out[i] = confirmed
			break
		}
	}
	return out
}

func removeLocal(in []entity.Message, local entity.LocalID) []entity.Message {
	out := make([]entity.Message, 0, len(in))
	for _, m := range in {
		if m.LocalID != local {
			out = append(out, m)
		}
	}
	return out
}

func markRead(in []entity.Message, messageID string) []entity.Message {
	out := cloneMessages(in)
	for i := range out {
		if !out[i].IsPending() && out[i].ID == messageID {
			out[i].IsRead = true
		}
	}
	return out
}
