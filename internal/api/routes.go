package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// Catalog pages are gated behind signup as a navigation affordance
	// only; the redirect is not access control.
	r.Group(func(r chi.Router) {
		r.Use(s.signupGateMiddleware)
		r.Get("/exams", s.handleExams)
		r.Get("/calculator/{slug}", s.handleCalculator)
		r.Post("/calculator/{slug}", s.handleCalculatorSubmit)
	})

	r.Get("/auth/signup", s.handleSignupPage)
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/logout", s.handleLogout)

	r.Get("/dashboard", s.handleDashboard)
	r.Get("/dashboard/history", s.handleHistory)

	// Static informational pages.
	r.Get("/terms", s.staticPage("pages/terms.html", "Terms of Service"))
	r.Get("/privacy-policy", s.staticPage("pages/privacy.html", "Privacy Policy"))
	r.Get("/disclaimer", s.staticPage("pages/disclaimer.html", "Disclaimer"))
	r.Get("/refund", s.staticPage("pages/refund.html", "Refund Policy"))
	r.Get("/contact", s.staticPage("pages/contact.html", "Contact Us"))

	r.NotFound(s.handleNotFound)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}
