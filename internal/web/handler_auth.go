package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/stock2profit/internal/auth"
	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/navigator"
)

// authForm re-populates the login or signup form. The password is never
// echoed back.
type authForm struct {
	Signup bool
	Name   string
	Email  string
	Error  string
}

func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(r) != nil {
		http.Redirect(w, r, navigator.Dashboard.Path(), http.StatusSeeOther)
		return
	}

	v, ok := navigator.ParseView(strings.TrimPrefix(r.URL.Path, "/"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	nav := navigator.New()
	nav.Navigate(v)
	s.renderView(w, r, http.StatusOK, newPageData(nav.Current(), nil, nil))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	u, err := s.svc.Auth.Login(r.Context(), email, password)
	if err != nil {
		s.authFailed(w, r, navigator.Login, authForm{Email: email}, err)
		return
	}
	s.signIn(w, r, u)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	u, err := s.svc.Auth.Signup(r.Context(), name, email, password)
	if err != nil {
		s.authFailed(w, r, navigator.Signup, authForm{Signup: true, Name: name, Email: email}, err)
		return
	}
	s.logger.Info("user signed up", "user_id", u.ID)
	s.signIn(w, r, u)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if claims := s.authenticate(r); claims != nil {
		s.svc.Workspaces.Drop(claims.UserID)
		s.logger.Info("user signed out", "user_id", claims.UserID)
	}
	s.clearAuthCookie(w)
	http.Redirect(w, r, navigator.Landing.Path(), http.StatusSeeOther)
}

// signIn issues the session cookie and opens the dashboard.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, u *domain.User) {
	token, err := s.svc.Tokens.Issue(u)
	if err != nil {
		s.serverError(w, r, "failed to sign in", err)
		return
	}
	s.setAuthCookie(w, token)
	s.navigate(u.ID, navigator.Dashboard)
	http.Redirect(w, r, navigator.Dashboard.Path(), http.StatusSeeOther)
}

func (s *Server) authFailed(w http.ResponseWriter, r *http.Request, v navigator.View, form authForm, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, auth.ErrNameTooShort),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooShort):
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailTaken):
		status = http.StatusConflict
	default:
		s.serverError(w, r, "authentication failed", err)
		return
	}

	form.Error = err.Error()
	s.renderView(w, r, status, newPageData(v, nil, form))
}
