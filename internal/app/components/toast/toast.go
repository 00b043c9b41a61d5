package toast

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/negocios-templui/internal/app/components"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
)

const ContainerID = "toast-container"

var kindClasses = map[models.NotificationKind]string{
	models.NotificationSuccess: "bg-green-600 text-white",
	models.NotificationError:   "bg-red-600 text-white",
	models.NotificationInfo:    "bg-slate-700 text-white",
}

// Toast renders one notification; the client script removes it after
// data-dismiss-after milliseconds.
func Toast(n models.Notification) templ.Component {
	return components.Func(func(_ context.Context, w *components.Writer) {
		kind := n.Kind
		if kind == "" {
			kind = models.NotificationInfo
		}
		duration := n.Duration
		if duration <= 0 {
			duration = models.DefaultNotificationDuration
		}
		w.Raw(`<div class="`, components.Text(components.Classes("toast", string(kind), "rounded-md px-4 py-2 shadow", kindClasses[kind])),
			`" role="status" data-dismiss-after="`, strconv.FormatInt(duration.Milliseconds(), 10), `">`,
			components.Text(n.Message), `</div>`)
	})
}

// Container renders the toast container with any flash notifications.
func Container(flash []models.Notification) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<div id="`, ContainerID, `" class="toast-container" aria-live="polite">`)
		for _, n := range flash {
			w.Component(ctx, Toast(n))
		}
		w.Raw(`</div>`)
	})
}

// OOB appends notifications to the container from any HTMX response.
func OOB(notifications ...models.Notification) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		if len(notifications) == 0 {
			return
		}
		w.Raw(`<div id="`, ContainerID, `" hx-swap-oob="beforeend">`)
		for _, n := range notifications {
			w.Component(ctx, Toast(n))
		}
		w.Raw(`</div>`)
	})
}
