package api

import (
	"html/template"

	"github.com/examranking/rankcalc/internal/backend"
	"github.com/examranking/rankcalc/internal/calculator"
	"github.com/examranking/rankcalc/internal/catalog"
	"github.com/examranking/rankcalc/internal/db"
	"github.com/examranking/rankcalc/internal/session"
)

// Server wires the page handlers to their collaborators.
type Server struct {
	Catalog   catalog.Catalog
	Session   *session.Store
	Flow      *calculator.Flow
	Backend   backend.ClientInterface
	DB        *db.DB
	Templates *template.Template
}

type pageData map[string]any
