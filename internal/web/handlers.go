package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/web/templates"
)

// newsPageSize is the number of articles per /news page.
const newsPageSize = 10

// handleHome renders the landing page. Its four sections load concurrently.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	var data templates.HomeData

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		data.Programs, err = s.service.Latest(ctx, core.KeyPrograms, 3)
		return err
	})
	g.Go(func() (err error) {
		data.Articles, err = s.service.Latest(ctx, core.KeyArticles, 3)
		return err
	})
	g.Go(func() (err error) {
		data.Events, err = s.service.UpcomingEvents(ctx, 3)
		return err
	})
	g.Go(func() (err error) {
		data.Videos, err = s.service.Latest(ctx, core.KeyVideos, 2)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	s.renderPublic(w, r, http.StatusOK, s.site.Name, templates.HomePage(s.site, data))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	team, err := s.service.Latest(r.Context(), core.KeyTeamMembers, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, http.StatusOK, "About", templates.AboutPage(s.site, team))
}

func (s *Server) handlePrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.service.Latest(r.Context(), core.KeyPrograms, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, http.StatusOK, "Programs", templates.ProgramsPage(programs))
}

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	program, err := s.service.PublishedBySlug(r.Context(), core.KeyPrograms, chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, http.StatusOK, program.String("title"), templates.ProgramPage(program))
}

func (s *Server) handleUniversity(w http.ResponseWriter, r *http.Request) {
	var courses, faculty []core.Row

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		courses, err = s.service.Latest(ctx, core.KeyCourses, 0)
		return err
	})
	g.Go(func() (err error) {
		faculty, err = s.service.Latest(ctx, core.KeyFaculty, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	s.renderPublic(w, r, http.StatusOK, "University", templates.UniversityPage(courses, faculty))
}

// handleNews renders the searchable, paginated article list.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	q := core.ListQuery{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   parseIntParam(r, "page", 1),
		Size:   newsPageSize,
	}

	page, err := s.service.Published(r.Context(), core.KeyArticles, q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, http.StatusOK, "News", templates.NewsPage(page))
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.service.PublishedBySlug(r.Context(), core.KeyArticles, chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, http.StatusOK, article.String("title"), templates.ArticlePage(article))
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.service.Latest(r.Context(), core.KeyVideos, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, http.StatusOK, "Videos", templates.VideosPage(videos))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	upcoming, err := s.service.UpcomingEvents(ctx, 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	past, err := s.service.PastEvents(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, http.StatusOK, "Events", templates.EventsPage(upcoming, past))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.service.PublishedBySlug(r.Context(), core.KeyEvents, chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderPublic(w, r, http.StatusOK, event.String("title"), templates.EventPage(event))
}

// handleUnsubscribe removes ?email= from the newsletter. Unknown addresses
// get the same answer so the page cannot be used to probe the list.
func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		s.fail(w, r, core.ValidationErrors{{Field: "email", Message: "is required"}})
		return
	}

	if err := s.service.Unsubscribe(r.Context(), email); err != nil && !errors.Is(err, core.ErrNotFound) {
		s.fail(w, r, err)
		return
	}

	s.renderPublic(w, r, http.StatusOK, "Unsubscribed",
		templates.MessagePage("You have been unsubscribed", "You will no longer receive our newsletter."))
}
