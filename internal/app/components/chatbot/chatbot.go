package chatbot

import (
	"context"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/negocios-templui/internal/app/components"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
)

const (
	ContainerID = "chatbot-container"
	MessagesID  = "chatbot-messages"
)

// Widget renders the floating button and the panel.
func Widget(open bool, entries []view.ChatEntry) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<button id="chatbot-button" class="chatbot-button" hx-post="/chat/toggle"`,
			` hx-target="#`, ContainerID, `" hx-swap="outerHTML">💬</button>`)
		w.Component(ctx, Panel(open, entries))
	})
}

func Panel(open bool, entries []view.ChatEntry) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		class := "chatbot-container"
		if open {
			class = components.Classes(class, "active")
		}
		w.Raw(`<div id="`, ContainerID, `" class="`, components.Text(class), `">`,
			`<div class="chatbot-header"><span>Asistente</span>`,
			`<button id="chatbot-close-button" hx-post="/chat/close" hx-target="#`, ContainerID, `" hx-swap="outerHTML">×</button></div>`,
			`<div id="`, MessagesID, `" class="chatbot-messages">`)
		w.Component(ctx, Entries(entries))
		w.Raw(`</div>`,
			`<form class="chatbot-input" hx-post="/chat/messages" hx-target="#`, MessagesID, `"`,
			` hx-swap="beforeend scroll:bottom" hx-on::after-request="this.reset()">`,
			`<input id="chatbot-input" name="message" type="text" autocomplete="off" placeholder="Escribe tu mensaje..."`)
		if open {
			w.Raw(` autofocus`)
		}
		w.Raw(`>`,
			`<button id="chatbot-send-button" type="submit">Enviar</button>`,
			`</form></div>`)
	})
}

func Entries(entries []view.ChatEntry) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		for _, e := range entries {
			w.Component(ctx, Entry(e))
		}
	})
}

func Entry(e view.ChatEntry) templ.Component {
	return components.Func(func(_ context.Context, w *components.Writer) {
		class := "bot-message"
		if e.FromUser {
			class = "user-message"
		}
		w.Raw(`<div class="`, class, `">`)
		if len(e.Cards) == 0 {
			w.Raw(components.Text(e.Text), `</div>`)
			return
		}
		w.Raw(components.Text(e.Intro), `<br><br>`)
		for _, card := range e.Cards {
			w.Raw(`<div class="chatbot-card">`,
				`<img src="`, components.URL(card.ImageSrc), `" alt="`, components.Text(card.Name), `">`,
				`<div class="card-content">`,
				`<h4>`, components.Text(card.Name), `</h4>`,
				`<p>`, components.Text(card.Category), `</p>`,
				`<p>`, components.Text(card.Stars.String()), ` (`, components.Text(card.Ranking), `)</p>`,
				`<a href="`, components.URL(card.DetailURL), `" target="_blank" rel="noopener">Ver más</a>`,
				`</div></div>`)
		}
		w.Raw(`</div>`)
	})
}
