package templates

import (
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

// LoginPage renders the admin sign-in form.
func LoginPage(site Site, email, next, errMsg string) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>Sign in to ")
		h.text(site.Name)
		h.raw("</h1>")
		if errMsg != "" {
			h.raw(`<div class="flash error" role="alert">`)
			h.text(errMsg)
			h.raw("</div>")
		}
		h.raw(`<form method="post" action="/admin/login">`)
		h.raw(`<input type="hidden" name="next"`)
		h.attr("value", next)
		h.raw(">")
		input(h, FormState{Values: map[string]string{"email": email}}, "email", "Email", "email", true)
		input(h, FormState{}, "password", "Password", "password", true)
		h.raw(`<button type="submit">Sign in</button></form>`)
	})
}

// DashboardPage renders resource counts and engagement numbers.
func DashboardPage(stats core.DashboardStats) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="grid">`)
		stat(h, "Active subscribers", strconv.Itoa(stats.ActiveSubscribers))
		stat(h, "Pending donations", strconv.Itoa(stats.PendingDonations))
		stat(h, "Donations received", formatMoney(stats.DonationTotal))
		stat(h, "Pending volunteers", strconv.Itoa(stats.PendingVolunteers))
		stat(h, "Unread messages", strconv.Itoa(stats.UnreadMessages))
		stat(h, "Upcoming events", strconv.Itoa(stats.UpcomingEvents))
		h.raw("</div><h2>Content</h2><table><thead><tr><th>Section</th><th>Group</th><th>Records</th></tr></thead><tbody>")
		for _, r := range stats.Resources {
			h.raw("<tr><td><a")
			h.href("/admin/" + r.Info.Key)
			h.raw(">")
			h.text(r.Info.Label)
			h.raw("</a></td><td>")
			h.text(r.Info.Group)
			h.rawf("</td><td>%d</td></tr>", r.Count)
		}
		h.raw("</tbody></table>")
	})
}

func stat(h *html, label, value string) {
	h.raw(`<div class="card"><p>`)
	h.text(label)
	h.raw("</p><h2>")
	h.text(value)
	h.raw("</h2></div>")
}

// ListView is the state of an admin table.
type ListView struct {
	Def   core.ResourceDefinition
	Page  tabledata.Page[core.Row]
	Query core.ListQuery
	Path  string
}

// ListPage renders an admin table with search, filters, sorting and pages.
func ListPage(v ListView) templ.Component {
	return component(func(h *html) {
		editable := !v.Def.Info.ReadOnly

		if editable {
			h.raw("<p><a")
			h.href(v.Path + "/new")
			h.raw(">New ")
			h.text(v.Def.Info.Singular)
			h.raw("</a></p>")
		}

		h.raw(`<form method="get"`)
		h.attr("action", v.Path)
		h.raw(`><input type="search" name="search" placeholder="Search"`)
		h.attr("value", v.Query.Search)
		h.raw(">")
		for _, f := range v.Def.FilterableFields() {
			filterInput(h, f, v.Query.Filters[f.Name])
		}
		if v.Query.Sort != "" {
			h.raw(`<input type="hidden" name="sort"`)
			h.attr("value", v.Query.Sort)
			h.raw(`><input type="hidden" name="dir"`)
			h.attr("value", v.Query.Dir)
			h.raw(">")
		}
		h.raw(` <button type="submit">Apply</button></form>`)

		h.rawf("<p>%d records <a", v.Page.Total)
		h.href(withQuery(v.Path+"/export.csv", listValues(v.Query)))
		h.raw(">Export CSV</a></p>")

		cols := v.Def.ListColumns()
		h.raw("<table><thead><tr>")
		for _, c := range cols {
			h.raw("<th><a")
			h.href(sortURL(v, c.Name))
			h.raw(">")
			h.text(c.Label)
			if v.Page.Sort != nil && v.Page.Sort.Field == c.Name {
				if v.Page.Sort.Dir == tabledata.Desc {
					h.raw(" &darr;")
				} else {
					h.raw(" &uarr;")
				}
			}
			h.raw("</a></th>")
		}
		if editable {
			h.raw("<th></th>")
		}
		h.raw("</tr></thead><tbody>")

		for _, row := range v.Page.Items {
			h.raw("<tr>")
			for _, c := range cols {
				h.raw("<td>")
				h.text(cellText(c, row[c.Name]))
				h.raw("</td>")
			}
			if editable {
				rowActions(h, v, row)
			}
			h.raw("</tr>")
		}
		if len(v.Page.Items) == 0 {
			h.rawf(`<tr><td colspan="%d">No records match.</td></tr>`, len(cols)+1)
		}
		h.raw("</tbody></table>")

		h.raw(`<nav class="pager">`)
		for _, n := range v.Page.Buttons {
			if n == v.Page.Page {
				h.rawf("<span>%d</span>", n)
				continue
			}
			h.raw("<a")
			h.href(pageURL(v, n))
			h.rawf(">%d</a>", n)
		}
		h.rawf("<span>Page %d of %d</span></nav>", v.Page.Page, v.Page.TotalPages)
	})
}

func rowActions(h *html, v ListView, row core.Row) {
	id := strconv.FormatInt(row.ID(), 10)
	h.raw("<td>")
	if v.Def.Info.Key == core.KeyBroadcasts && row.String("status") == core.BroadcastDraft {
		h.raw("<a")
		h.href("/admin/newsletter/preview/" + id)
		h.raw(">Preview and send</a> ")
	}
	if !(v.Def.Info.Key == core.KeyBroadcasts && row.String("status") == core.BroadcastSent) {
		h.raw("<a")
		h.href(v.Path + "/" + id + "/edit")
		h.raw(">Edit</a> ")
	}
	h.raw(`<form method="post" style="display:inline"`)
	h.attr("action", v.Path+"/"+id+"/delete")
	h.raw(`><button type="submit">Delete</button></form></td>`)
}

func filterInput(h *html, f core.FieldSpec, current string) {
	name := "filter[" + f.Name + "]"
	h.raw(" <label>")
	h.text(f.Label)
	h.raw(" ")

	var options []string
	switch f.Type {
	case core.FieldEnum:
		options = f.EnumValues
	case core.FieldBool:
		options = []string{"true", "false"}
	}

	if options == nil {
		h.raw(`<input type="text" size="12"`)
		h.attr("name", name)
		h.attr("value", current)
		h.raw("></label>")
		return
	}

	h.raw("<select")
	h.attr("name", name)
	h.raw(`><option value="">Any</option>`)
	for _, o := range options {
		h.raw("<option")
		h.attr("value", o)
		if o == current {
			h.raw(" selected")
		}
		h.raw(">")
		h.text(o)
		h.raw("</option>")
	}
	h.raw("</select></label>")
}

// listValues encodes a list query as URL parameters.
func listValues(q core.ListQuery) url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	for field, value := range q.Filters {
		if value != "" {
			values.Set("filter["+field+"]", value)
		}
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
		if q.Dir != "" {
			values.Set("dir", q.Dir)
		}
	}
	if q.Size > 0 {
		values.Set("size", strconv.Itoa(q.Size))
	}
	return values
}

func pageURL(v ListView, page int) string {
	values := listValues(v.Query)
	values.Set("page", strconv.Itoa(page))
	return withQuery(v.Path, values)
}

// sortURL sorts by field, flipping the direction when it is already active.
func sortURL(v ListView, field string) string {
	dir := tabledata.Asc
	if v.Page.Sort != nil && v.Page.Sort.Field == field && v.Page.Sort.Dir == tabledata.Asc {
		dir = tabledata.Desc
	}
	q := v.Query
	q.Sort = field
	q.Dir = string(dir)
	return withQuery(v.Path, listValues(q))
}

// cellText renders a value for a table cell.
func cellText(spec core.FieldSpec, v any) string {
	if v == nil {
		return ""
	}
	switch spec.Type {
	case core.FieldBool:
		if b, ok := v.(bool); ok && b {
			return "Yes"
		}
		return "No"
	case core.FieldDate:
		if t, ok := v.(time.Time); ok {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		}
	case core.FieldNumeric:
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'f', 2, 64)
		}
	}
	return truncate(core.FormatValue(spec, v), 80)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}

// FormView is the state of an admin create or edit form.
type FormView struct {
	Def   core.ResourceDefinition
	ID    int64 // 0 when creating
	State FormState
}

// FormPage renders the admin editor for a resource.
func FormPage(v FormView) templ.Component {
	return component(func(h *html) {
		action := "/admin/" + v.Def.Info.Key
		if v.ID != 0 {
			action += "/" + strconv.FormatInt(v.ID, 10)
		}

		h.raw(`<form method="post"`)
		h.attr("action", action)
		h.raw(">")
		formError(h, v.State)
		for _, f := range v.Def.Fields {
			if f.ReadOnly {
				continue
			}
			fieldInput(h, f, v.State)
		}
		h.raw(`<button type="submit">Save</button> <a`)
		h.href("/admin/" + v.Def.Info.Key)
		h.raw(">Cancel</a></form>")
	})
}

// ComposePage renders the newsletter editor.
func ComposePage(state FormState) templ.Component {
	return component(func(h *html) {
		h.raw(`<form method="post" action="/admin/newsletter/compose">`)
		formError(h, state)
		input(h, state, "subject", "Subject", "text", true)
		textarea(h, state, "body", "Body", true)
		h.raw(`<button type="submit">Preview</button></form>`)
	})
}

// PreviewPage shows a draft and asks for confirmation before sending.
func PreviewPage(p core.BroadcastPreview) templ.Component {
	return component(func(h *html) {
		id := strconv.FormatInt(p.Broadcast.ID(), 10)
		h.raw(`<div class="card"><h2>`)
		h.text(p.Broadcast.String("subject"))
		h.raw("</h2>")
		paragraphs(h, p.Broadcast.String("body"))
		h.raw("</div>")
		h.rawf("<p>This newsletter will be recorded as sent to <strong>%d</strong> active subscribers.</p>", p.Recipients)
		h.raw(`<form method="post"`)
		h.attr("action", "/admin/newsletter/send/"+id)
		h.raw(`><button type="submit">Send now</button> <a`)
		h.href("/admin/" + core.KeyBroadcasts + "/" + id + "/edit")
		h.raw(">Edit draft</a></form>")
	})
}
