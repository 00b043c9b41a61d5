package view

import (
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
)

const (
	ChatIntro       = "Aquí tienes algunas recomendaciones:"
	ChatUnavailable = "Lo siento, hubo un error al conectar con el asistente."
)

// ChatCard is a compact business card shown inside the transcript.
type ChatCard struct {
	Name      string
	Category  string
	ImageSrc  string
	Stars     Stars
	Ranking   string
	DetailURL string
}

// ChatEntry describes one transcript bubble.
type ChatEntry struct {
	FromUser bool
	Text     string
	Intro    string
	Cards    []ChatCard
}

func ChatEntries(msgs []models.ChatMessage) []ChatEntry {
	entries := make([]ChatEntry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, ChatEntryFor(m))
	}
	return entries
}

// ChatEntryFor maps a transcript message to its bubble. Chat card images use
// the assistant's imagen_url as given, unlike grid cards.
func ChatEntryFor(m models.ChatMessage) ChatEntry {
	entry := ChatEntry{FromUser: m.Sender == models.SenderUser, Text: m.Text}
	if !m.IsBusinessList() {
		return entry
	}
	entry.Intro = m.Intro
	entry.Cards = make([]ChatCard, 0, len(m.Businesses))
	for _, b := range m.Businesses {
		entry.Cards = append(entry.Cards, ChatCard{
			Name:      b.Name,
			Category:  b.Category,
			ImageSrc:  ImageSrc("", b.ImageURL),
			Stars:     StarsFor(b.Ranking),
			Ranking:   models.FormatRanking(b.Ranking),
			DetailURL: DetailURL(b.ID),
		})
	}
	return entry
}

// BotReply converts a chatbot answer into the transcript message it produces.
func BotReply(reply models.ChatReply) models.ChatMessage {
	if reply.HasBusinesses() {
		return models.ChatMessage{
			Sender:     models.SenderBot,
			Intro:      ChatIntro,
			Businesses: reply.Data,
		}
	}
	return models.ChatMessage{Sender: models.SenderBot, Text: reply.Message}
}
