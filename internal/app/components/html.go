// Package components holds the helpers shared by the HTML components.
package components

import (
	"context"
	"io"
	"strings"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
)

// Text escapes s for element content and quoted attribute values.
func Text(s string) string {
	return templ.EscapeString(s)
}

// URL sanitizes and escapes s for href/src attributes.
func URL(s string) string {
	return templ.EscapeString(string(templ.URL(s)))
}

// Classes merges class lists, later utility classes winning.
func Classes(classes ...string) string {
	return twmerge.Merge(strings.Join(classes, " "))
}

// Writer accumulates the first write error so components can emit markup
// without checking every call.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (w *Writer) Raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

// Component renders c into the same output.
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func (w *Writer) Err() error { return w.err }

// Func adapts a markup-writing function into a templ.Component.
func Func(fn func(ctx context.Context, w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		fn(ctx, w)
		return w.Err()
	})
}
