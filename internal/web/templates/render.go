// Package templates renders the site's HTML as templ components.
//
// Components are plain Go values built with templ.ComponentFunc, so handlers
// render them the same way as generated templ code:
//
//	templates.HomePage(site, data).Render(r.Context(), w)
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// html writes markup, remembering the first write error.
type html struct {
	ctx  context.Context
	w    io.Writer
	kids templ.Component
	err  error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) rawf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

// text writes s escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes name="value" with the value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// href writes an href attribute, dropping unsafe schemes.
func (h *html) href(u string) {
	h.attr("href", string(templ.URL(u)))
}

func (h *html) component(c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

// children renders the component passed down with templ.WithChildren.
func (h *html) children() {
	h.component(h.kids)
}

// component builds a templ.Component from a write function.
func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: templ.ClearChildren(ctx), w: w, kids: templ.GetChildren(ctx)}
		fn(h)
		return h.err
	})
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}

func formatMoney(f float64) string {
	return "$" + strconv.FormatFloat(f, 'f', 2, 64)
}

// withQuery returns path with values encoded as its query string.
func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
