package model

import (
	"time"

	"wheeldeal/internal/backend"
)

// Chat links an unordered pair of participants. Exactly one chat should
// exist per pair, but lookup must check both orderings because the pair is
// stored in first-contact order.
type Chat struct {
	ID            string
	UserA         string
	UserB         string
	LastMessage   string
	LastMessageAt time.Time
	CreatedAt     time.Time
}

// Message is immutable once created; its timestamp is assigned by the
// backend on insert.
type Message struct {
	ID         string
	ChatID     string
	SenderID   string
	ReceiverID string
	Body       string
	CreatedAt  time.Time
}

func ChatFromDocument(d backend.Document) Chat {
	return Chat{
		ID:            d.ID(),
		UserA:         d.String("userA"),
		UserB:         d.String("userB"),
		LastMessage:   d.String("lastMessage"),
		LastMessageAt: d.Time("lastMessageAt"),
		CreatedAt:     d.Time("createdAt"),
	}
}

func MessageFromDocument(d backend.Document) Message {
	return Message{
		ID:         d.ID(),
		ChatID:     d.String("chatId"),
		SenderID:   d.String("senderId"),
		ReceiverID: d.String("receiverId"),
		Body:       d.String("body"),
		CreatedAt:  d.Time("createdAt"),
	}
}

func (m Message) Document() backend.Document {
	return backend.Document{
		"chatId":     m.ChatID,
		"senderId":   m.SenderID,
		"receiverId": m.ReceiverID,
		"body":       m.Body,
	}
}
