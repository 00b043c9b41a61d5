package models

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatBusiness is the business shape returned by the chatbot endpoint.
type ChatBusiness struct {
	ID       BusinessID `json:"_id"`
	Name     string     `json:"nombre"`
	Category string     `json:"categoria"`
	Ranking  float64    `json:"promedio_ranking"`
	ImageURL string     `json:"imagen_url"`
}

const ChatReplyBusinesses = "negocios"

// ChatReply is the chatbot response. Type discriminates between a plain
// text answer and a list of businesses in Data.
type ChatReply struct {
	Type    string         `json:"type"`
	Message string         `json:"message,omitempty"`
	Data    []ChatBusiness `json:"data,omitempty"`
}

func (r ChatReply) HasBusinesses() bool {
	return r.Type == ChatReplyBusinesses && len(r.Data) > 0
}

// ChatMessage is one transcript entry. Exactly one of Text or Businesses is
// meaningful; Intro is shown above business cards.
type ChatMessage struct {
	Sender     Sender
	Text       string
	Intro      string
	Businesses []ChatBusiness
	SentAt     time.Time
}

func (m ChatMessage) IsBusinessList() bool {
	return len(m.Businesses) > 0
}
