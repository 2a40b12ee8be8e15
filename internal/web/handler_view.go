package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/stock2profit/internal/navigator"
	"github.com/vbonduro/stock2profit/internal/session"
)

// workspaceSnapshot is a copy of a workspace taken under its lock, safe to
// render after the lock is released.
type workspaceSnapshot struct {
	View   navigator.View
	Scroll int
	Draft  draftView
}

func snapshotOf(ws *session.Workspace) workspaceSnapshot {
	return workspaceSnapshot{
		View:   ws.Navigator.Current(),
		Scroll: ws.Navigator.ScrollOffset(),
		Draft:  newDraftView(ws.Draft),
	}
}

// navigate moves the user's workspace to v and returns a snapshot of it.
func (s *Server) navigate(userID int64, v navigator.View) workspaceSnapshot {
	var snap workspaceSnapshot
	_ = s.svc.Workspaces.With(userID, func(ws *session.Workspace) error {
		ws.Navigator.Navigate(v)
		snap = snapshotOf(ws)
		return nil
	})
	return snap
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	page := newPageData(navigator.Landing, nil, nil)
	if claims := s.authenticate(r); claims != nil {
		s.navigate(claims.UserID, navigator.Landing)
		page.User = claims
	}
	s.renderView(w, r, http.StatusOK, page)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, ok := navigator.ParseView(chi.URLParam(r, "view"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if !v.InShell() {
		http.Redirect(w, r, v.Path(), http.StatusSeeOther)
		return
	}

	claims := claimsFromContext(r.Context())
	snap := s.navigate(claims.UserID, v)

	page := newPageData(snap.View, claims, nil)
	page.Scroll = snap.Scroll
	if v == navigator.Sales {
		page.Content = snap.Draft
	}
	s.renderView(w, r, http.StatusOK, page)
}

// renderView renders page.View inside the base layout. Content that the
// caller has not already prepared is loaded here.
func (s *Server) renderView(w http.ResponseWriter, r *http.Request, status int, page pageData) {
	var files []string

	switch page.View {
	case navigator.Landing:
		files = []string{"pages/landing.html"}

	case navigator.Login, navigator.Signup:
		files = []string{"pages/auth.html"}
		if page.Content == nil {
			page.Content = authForm{Signup: page.View == navigator.Signup}
		}

	case navigator.Dashboard:
		files = []string{"pages/dashboard.html"}
		summary, err := s.svc.Dashboard.Summary(r.Context())
		if err != nil {
			s.serverError(w, r, "failed to load dashboard", err)
			return
		}
		page.Content = summary

	case navigator.Inventory:
		files = []string{"pages/inventory.html", "partials/inventory_rows.html", "partials/product_form.html"}
		content, _ := page.Content.(inventoryContent)
		if err := s.loadInventory(r, &content); err != nil {
			s.serverError(w, r, "failed to load inventory", err)
			return
		}
		page.Content = content

	case navigator.Sales:
		files = []string{"pages/sales.html", "partials/draft.html"}
		if page.Content == nil {
			page.Content = draftView{}
		}

	case navigator.Billing, navigator.Suppliers, navigator.Reports, navigator.Profile:
		files = []string{"pages/construction.html"}

	default:
		panic(fmt.Sprintf("web: no page for view %s", page.View))
	}

	files = append([]string{"base.html"}, files...)
	if err := s.renderPage(w, status, page, files...); err != nil {
		s.logger.Error("render page failed", "view", page.View.String(), "error", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg, "path", r.URL.Path, "request_id", requestIDFromContext(r.Context()), "error", err)
	http.Error(w, msg, http.StatusInternalServerError)
}
