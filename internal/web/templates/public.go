package templates

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/tabledata"
)

// HomeData is the content of the landing page.
type HomeData struct {
	Programs []core.Row
	Articles []core.Row
	Events   []core.Row
	Videos   []core.Row
}

// HomePage renders the landing page.
func HomePage(site Site, d HomeData) templ.Component {
	return component(func(h *html) {
		h.raw("<section><h1>")
		h.text(site.Name)
		h.raw("</h1><p>")
		h.text(site.Tagline)
		h.raw(`</p><p><a href="/get-involved">Donate or volunteer</a></p></section>`)

		if len(d.Programs) > 0 {
			h.raw("<section><h2>Our programs</h2>")
			programCards(h, d.Programs)
			h.raw("</section>")
		}
		if len(d.Events) > 0 {
			h.raw("<section><h2>Upcoming events</h2>")
			eventList(h, d.Events)
			h.raw("</section>")
		}
		if len(d.Articles) > 0 {
			h.raw("<section><h2>Latest news</h2>")
			articleList(h, d.Articles)
			h.raw(`<p><a href="/news">All news</a></p></section>`)
		}
		if len(d.Videos) > 0 {
			h.raw("<section><h2>Watch</h2>")
			videoGrid(h, d.Videos)
			h.raw("</section>")
		}
	})
}

// AboutPage renders the mission statement and team.
func AboutPage(site Site, team []core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>About ")
		h.text(site.Name)
		h.raw("</h1><p>")
		h.text(site.Tagline)
		h.raw("</p><h2>Our team</h2>")
		if len(team) == 0 {
			h.raw("<p>Team profiles are coming soon.</p>")
			return
		}
		h.raw(`<div class="grid">`)
		for _, m := range team {
			h.raw(`<div class="card">`)
			image(h, m.String("photo_url"), m.String("name"))
			h.raw("<h3>")
			h.text(m.String("name"))
			h.raw("</h3><p><em>")
			h.text(m.String("role"))
			h.raw("</em></p>")
			paragraphs(h, m.String("bio"))
			h.raw("</div>")
		}
		h.raw("</div>")
	})
}

// ProgramsPage lists published programs.
func ProgramsPage(programs []core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>Programs</h1>")
		if len(programs) == 0 {
			h.raw("<p>No programs are listed yet.</p>")
			return
		}
		programCards(h, programs)
	})
}

// ProgramPage renders one program.
func ProgramPage(p core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<article><h1>")
		h.text(p.String("title"))
		h.raw("</h1>")
		image(h, p.String("image_url"), p.String("title"))
		h.raw("<p><strong>")
		h.text(p.String("summary"))
		h.raw("</strong></p>")
		paragraphs(h, p.String("description"))
		h.raw(`<p><a href="/get-involved">Support this program</a></p></article>`)
	})
}

// UniversityPage lists courses and faculty.
func UniversityPage(courses, faculty []core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>University</h1><h2>Courses</h2>")
		if len(courses) == 0 {
			h.raw("<p>No courses are scheduled.</p>")
		}
		for _, c := range courses {
			h.raw(`<div class="card"><h3>`)
			if code := c.String("code"); code != "" {
				h.text(code + ": ")
			}
			h.text(c.String("title"))
			h.raw("</h3><p>")
			h.text(strings.Join(nonEmpty(c.String("level"), c.String("instructor"), startsOn(c)), " | "))
			h.raw("</p>")
			paragraphs(h, c.String("description"))
			if u := c.String("enrollment_url"); u != "" {
				h.raw("<p><a")
				h.href(u)
				h.raw(">Enroll</a></p>")
			}
			h.raw("</div>")
		}

		h.raw("<h2>Faculty</h2>")
		h.raw(`<div class="grid">`)
		for _, f := range faculty {
			h.raw(`<div class="card">`)
			image(h, f.String("photo_url"), f.String("name"))
			h.raw("<h3>")
			h.text(f.String("name"))
			h.raw("</h3><p><em>")
			h.text(strings.Join(nonEmpty(f.String("title"), f.String("department")), ", "))
			h.raw("</em></p>")
			paragraphs(h, f.String("bio"))
			h.raw("</div>")
		}
		h.raw("</div>")
	})
}

func startsOn(c core.Row) string {
	if t := c.Time("starts_on"); !t.IsZero() {
		s := "Starts " + formatDate(t)
		if weeks := c.Int("duration_weeks"); weeks > 0 {
			s += ", " + strconv.FormatInt(weeks, 10) + " weeks"
		}
		return s
	}
	return ""
}

// NewsPage lists published articles one page at a time.
func NewsPage(page tabledata.Page[core.Row]) templ.Component {
	return component(func(h *html) {
		h.raw(`<h1>News</h1><form method="get" action="/news"><input type="search" name="search"`)
		h.attr("value", page.Search)
		h.raw(` placeholder="Search news"> <button type="submit">Search</button></form>`)

		if len(page.Items) == 0 {
			h.raw("<p>No articles found.</p>")
			return
		}
		articleList(h, page.Items)

		h.raw(`<nav class="pager">`)
		for _, n := range page.Buttons {
			if n == page.Page {
				h.rawf("<span>%d</span>", n)
				continue
			}
			q := url.Values{"page": {strconv.Itoa(n)}}
			if page.Search != "" {
				q.Set("search", page.Search)
			}
			h.raw("<a")
			h.href(withQuery("/news", q))
			h.rawf(">%d</a>", n)
		}
		h.raw("</nav>")
	})
}

// ArticlePage renders one article.
func ArticlePage(a core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<article><h1>")
		h.text(a.String("title"))
		h.raw("</h1><p><small>")
		h.text(strings.Join(nonEmpty(a.String("author"), formatDate(a.Time("published_at"))), " | "))
		h.raw("</small></p>")
		image(h, a.String("image_url"), a.String("title"))
		paragraphs(h, a.String("body"))
		if tags := a.Strings("tags"); len(tags) > 0 {
			h.raw("<p>Tags: ")
			h.text(strings.Join(tags, ", "))
			h.raw("</p>")
		}
		h.raw(`<p><a href="/news">Back to news</a></p></article>`)
	})
}

// EventsPage lists upcoming and past events.
func EventsPage(upcoming, past []core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>Events</h1><h2>Upcoming</h2>")
		if len(upcoming) == 0 {
			h.raw("<p>No upcoming events. Check back soon.</p>")
		} else {
			eventList(h, upcoming)
		}
		if len(past) > 0 {
			h.raw("<h2>Past events</h2>")
			eventList(h, past)
		}
	})
}

// EventPage renders one event.
func EventPage(e core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<article><h1>")
		h.text(e.String("title"))
		h.raw("</h1><p><strong>")
		when := formatDateTime(e.Time("starts_at"))
		if end := e.Time("ends_at"); !end.IsZero() {
			when += " to " + formatDateTime(end)
		}
		h.text(when)
		h.raw("</strong></p><p>")
		h.text(e.String("location"))
		h.raw("</p>")
		paragraphs(h, e.String("description"))
		if u := e.String("registration_url"); u != "" {
			h.raw("<p><a")
			h.href(u)
			h.raw(">Register</a></p>")
		}
		h.raw(`<p><a href="/events">All events</a></p></article>`)
	})
}

// VideosPage lists published videos.
func VideosPage(videos []core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>Videos</h1>")
		if len(videos) == 0 {
			h.raw("<p>No videos yet.</p>")
			return
		}
		videoGrid(h, videos)
	})
}

// ContactPage renders the contact form.
func ContactPage(site Site, state FormState) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>Contact us</h1>")
		if site.ContactEmail != "" {
			h.raw("<p>Email us at ")
			h.text(site.ContactEmail)
			h.raw(" or use the form below.</p>")
		}
		h.raw(`<form method="post" action="/contact">`)
		formError(h, state)
		input(h, state, "name", "Your name", "text", true)
		input(h, state, "email", "Email", "email", true)
		input(h, state, "subject", "Subject", "text", false)
		textarea(h, state, "message", "Message", true)
		h.raw(`<button type="submit">Send message</button></form>`)
	})
}

// GetInvolvedPage renders the donation and volunteer forms.
func GetInvolvedPage(donation, volunteer FormState, programs []core.Row) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>Get involved</h1>")

		h.raw(`<section id="donate"><h2>Donate</h2><p>Pledge a gift and our team will follow up with payment details.</p>`)
		h.raw(`<form method="post" action="/donate">`)
		formError(h, donation)
		input(h, donation, "donor_name", "Your name", "text", true)
		input(h, donation, "email", "Email", "email", true)
		input(h, donation, "amount", "Amount", "number", true)
		options := []string{"one_time", "monthly"}
		selectField(h, donation, "frequency", "Frequency", options, options)
		titles := make([]string, 0, len(programs)+1)
		titles = append(titles, "")
		for _, p := range programs {
			titles = append(titles, p.String("title"))
		}
		selectField(h, donation, "program", "Program (optional)", titles, titles)
		textarea(h, donation, "message", "Message", false)
		h.raw(`<button type="submit">Pledge</button></form></section>`)

		h.raw(`<section id="volunteer"><h2>Volunteer</h2>`)
		h.raw(`<form method="post" action="/volunteer">`)
		formError(h, volunteer)
		input(h, volunteer, "name", "Your name", "text", true)
		input(h, volunteer, "email", "Email", "email", true)
		input(h, volunteer, "phone", "Phone", "tel", false)
		input(h, volunteer, "interests", "Interests (comma separated)", "text", false)
		input(h, volunteer, "availability", "Availability", "text", false)
		textarea(h, volunteer, "message", "Anything else?", false)
		h.raw(`<button type="submit">Sign up</button></form></section>`)
	})
}

// MessagePage renders a short confirmation or notice.
func MessagePage(title, message string) templ.Component {
	return component(func(h *html) {
		h.raw("<h1>")
		h.text(title)
		h.raw("</h1><p>")
		h.text(message)
		h.raw(`</p><p><a href="/">Return home</a></p>`)
	})
}

func programCards(h *html, programs []core.Row) {
	h.raw(`<div class="grid">`)
	for _, p := range programs {
		h.raw(`<div class="card">`)
		image(h, p.String("image_url"), p.String("title"))
		h.raw("<h3><a")
		h.href("/programs/" + p.String("slug"))
		h.raw(">")
		h.text(p.String("title"))
		h.raw("</a></h3><p>")
		h.text(p.String("summary"))
		h.raw("</p></div>")
	}
	h.raw("</div>")
}

func articleList(h *html, articles []core.Row) {
	h.raw("<ul>")
	for _, a := range articles {
		h.raw("<li><a")
		h.href("/news/" + a.String("slug"))
		h.raw("><strong>")
		h.text(a.String("title"))
		h.raw("</strong></a> <small>")
		h.text(formatDate(a.Time("published_at")))
		h.raw("</small><p>")
		h.text(a.String("summary"))
		h.raw("</p></li>")
	}
	h.raw("</ul>")
}

func eventList(h *html, events []core.Row) {
	h.raw("<ul>")
	for _, e := range events {
		h.raw("<li><a")
		h.href("/events/" + e.String("slug"))
		h.raw(">")
		h.text(e.String("title"))
		h.raw("</a> ")
		h.text(strings.Join(nonEmpty(formatDateTime(e.Time("starts_at")), e.String("location")), ", "))
		h.raw("</li>")
	}
	h.raw("</ul>")
}

func videoGrid(h *html, videos []core.Row) {
	h.raw(`<div class="grid">`)
	for _, v := range videos {
		h.raw(`<div class="card">`)
		if id := v.String("embed_id"); id != "" {
			h.raw(`<iframe width="280" height="158" loading="lazy" allowfullscreen`)
			h.attr("src", core.YouTubeEmbedURL(id))
			h.attr("title", v.String("title"))
			h.raw("></iframe>")
		}
		h.raw("<h3>")
		h.text(v.String("title"))
		h.raw("</h3><p>")
		h.text(v.String("description"))
		h.raw("</p></div>")
	}
	h.raw("</div>")
}

func image(h *html, src, alt string) {
	if src == "" {
		return
	}
	h.raw(`<img width="280" loading="lazy"`)
	h.attr("src", string(templ.URL(src)))
	h.attr("alt", alt)
	h.raw(">")
}

// paragraphs renders text split on blank lines.
func paragraphs(h *html, text string) {
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			h.raw("<p>")
			h.text(p)
			h.raw("</p>")
		}
	}
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
