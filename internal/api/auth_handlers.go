package api

import (
	"net/http"
	"strings"

	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/logger"
)

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	if s.Session.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "pages/signup.html", pageData{
		"next":  r.URL.Query().Get("next"),
		"name":  "",
		"email": "",
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		handleError(w, r, apperrors.NewBadRequestError("invalid form submission"))
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if name == "" || email == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "pages/signup.html", pageData{
			"error": "All fields are required.",
			"next":  r.FormValue("next"),
			"name":  name,
			"email": email,
		})
		return
	}

	token, user, err := s.Backend.Signup(r.Context(), name, email, password)
	if err != nil {
		log.Warn("signup failed for %s: %v", email, err)
		status := http.StatusBadGateway
		msg := "Signup is temporarily unavailable. Please try again."
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Code == apperrors.ErrCodeAuthFailure {
			status = http.StatusUnauthorized
			msg = appErr.Message
		}
		w.WriteHeader(status)
		s.render(w, r, "pages/signup.html", pageData{
			"error": msg,
			"next":  r.FormValue("next"),
			"name":  name,
			"email": email,
		})
		return
	}

	if err := s.Session.Login(r.Context(), *user, token); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("user %s signed up", user.ID)

	next := r.FormValue("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Session.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
