package catalog

import (
	"context"

	"github.com/examranking/rankcalc/internal/backend"
	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/models"
)

// Remote serves the exam catalog from the external exam service. Every call
// fetches the listing fresh; a failed fetch surfaces as CATALOG_UNAVAILABLE
// and callers offer a retry.
type Remote struct {
	client backend.ClientInterface
}

// NewRemote creates a Remote catalog backed by the given API client.
func NewRemote(client backend.ClientInterface) *Remote {
	return &Remote{client: client}
}

func (r *Remote) List(ctx context.Context) ([]models.Exam, error) {
	return r.client.ListExams(ctx)
}

func (r *Remote) FindBySlug(ctx context.Context, slug string) (*models.Exam, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	exams, err := r.client.ListExams(ctx)
	if err != nil {
		log.Warn("lookup for slug %q failed: %v", slug, err)
		return nil, err
	}
	return findBySlug(exams, slug)
}

var _ Catalog = (*Remote)(nil)
