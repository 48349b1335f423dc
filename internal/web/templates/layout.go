package templates

import (
	"github.com/a-h/templ"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

// Site is the identity shown on every public page.
type Site struct {
	Name         string
	Tagline      string
	ContactEmail string
}

// Flash is a one-off notice shown above page content.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// FormState carries submitted values and per-field errors back to a form.
type FormState struct {
	Values  map[string]string
	Errors  map[string]string
	Message string
}

// Value returns the submitted value of field.
func (f FormState) Value(field string) string {
	return f.Values[field]
}

// Error returns the error message of field.
func (f FormState) Error(field string) string {
	return f.Errors[field]
}

var publicNav = []struct{ Path, Label string }{
	{"/about", "About"},
	{"/programs", "Programs"},
	{"/university", "University"},
	{"/news", "News"},
	{"/videos", "Videos"},
	{"/events", "Events"},
	{"/get-involved", "Get Involved"},
	{"/contact", "Contact"},
}

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;color:#1f2933;line-height:1.5}
header,footer{background:#12355b;color:#fff;padding:1rem 2rem}
header a,footer a{color:#fff;margin-right:1rem;text-decoration:none}
main{max-width:960px;margin:0 auto;padding:2rem}
.flash{padding:.75rem 1rem;border-radius:4px;margin-bottom:1rem}
.flash.success{background:#e3f9e5}.flash.error{background:#ffe3e3}
.field{margin-bottom:1rem}.field label{display:block;font-weight:600}
.field .error{color:#c62828;font-size:.9rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(260px,1fr));gap:1.5rem}
.card{border:1px solid #d9e2ec;border-radius:6px;padding:1rem}
table{border-collapse:collapse;width:100%}th,td{border-bottom:1px solid #d9e2ec;padding:.5rem;text-align:left}
.pager a,.pager span{margin-right:.5rem}
.admin-nav{float:left;width:200px;padding:1rem}.admin-main{margin-left:220px;padding:1rem}
`

// PublicLayout wraps its children in the public site chrome.
func PublicLayout(site Site, title string, flash *Flash) templ.Component {
	return component(func(h *html) {
		h.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		if title != "" {
			h.text(title + " | ")
		}
		h.text(site.Name)
		h.raw("</title><style>" + stylesheet + "</style></head><body>")

		h.raw(`<header><a href="/"><strong>`)
		h.text(site.Name)
		h.raw("</strong></a><nav>")
		for _, item := range publicNav {
			h.raw("<a")
			h.href(item.Path)
			h.raw(">")
			h.text(item.Label)
			h.raw("</a>")
		}
		h.raw("</nav></header><main>")

		flashMessage(h, flash)
		h.children()

		h.raw("</main><footer><p>")
		h.text(site.Name + " - " + site.Tagline)
		h.raw("</p>")
		if site.ContactEmail != "" {
			h.raw("<p><a")
			h.href("mailto:" + site.ContactEmail)
			h.raw(">")
			h.text(site.ContactEmail)
			h.raw("</a></p>")
		}
		h.raw(`<form method="post" action="/newsletter/subscribe">`)
		h.raw(`<label>Newsletter <input type="email" name="email" required placeholder="you@example.org"></label> `)
		h.raw(`<button type="submit">Subscribe</button></form>`)
		h.raw("</footer></body></html>")
	})
}

// AdminNav is the admin sidebar state.
type AdminNav struct {
	Admin  string
	Active string
	Groups map[string][]core.ResourceInfo
	Order  []string
}

// AdminLayout wraps its children in the admin chrome.
func AdminLayout(site Site, nav AdminNav, title string, flash *Flash) templ.Component {
	return component(func(h *html) {
		h.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>")
		h.text(title + " | " + site.Name + " admin")
		h.raw("</title><style>" + stylesheet + "</style></head><body>")

		h.raw(`<header><a href="/admin"><strong>`)
		h.text(site.Name)
		h.raw(` admin</strong></a>`)
		if nav.Admin != "" {
			h.raw(`<span>`)
			h.text(nav.Admin)
			h.raw(`</span> <form method="post" action="/admin/logout" style="display:inline"><button type="submit">Sign out</button></form>`)
		}
		h.raw("</header>")

		h.raw(`<nav class="admin-nav"><p><a href="/admin">Dashboard</a></p>`)
		for _, group := range nav.Order {
			h.raw("<h4>")
			h.text(group)
			h.raw("</h4><ul>")
			for _, info := range nav.Groups[group] {
				h.raw("<li><a")
				h.href("/admin/" + info.Key)
				if info.Key == nav.Active {
					h.attr("aria-current", "page")
				}
				h.raw(">")
				h.text(info.Label)
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}
		h.raw(`<p><a href="/admin/newsletter/compose">Compose newsletter</a></p>`)
		h.raw(`<p><a href="/admin/audit-log">Audit log</a></p></nav>`)

		h.raw(`<div class="admin-main"><h1>`)
		h.text(title)
		h.raw("</h1>")
		flashMessage(h, flash)
		h.children()
		h.raw("</div></body></html>")
	})
}

func flashMessage(h *html, flash *Flash) {
	if flash == nil || flash.Message == "" {
		return
	}
	h.raw(`<div role="status"`)
	h.attr("class", "flash "+flash.Kind)
	h.raw(">")
	h.text(flash.Message)
	h.raw("</div>")
}

// ErrorPage renders a user-facing error.
func ErrorPage(status int, msg core.UserMessage) templ.Component {
	return component(func(h *html) {
		h.rawf("<h1>Error %d</h1>", status)
		h.raw("<p>")
		h.text(msg.Message)
		h.raw("</p>")
		if msg.Action != "" {
			h.raw("<p>")
			h.text(msg.Action)
			h.raw("</p>")
		}
		h.raw("<p><small>Reference: ")
		h.text(msg.Code)
		h.raw("</small></p>")
	})
}
