package backend

import (
	"context"

	"github.com/examranking/rankcalc/internal/models"
)

// ClientInterface defines the operations of the external backend API.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	Signup(ctx context.Context, name, email, password string) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ListExams(ctx context.Context) ([]models.Exam, error)
	Dashboard(ctx context.Context, token string) (*models.DashboardData, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
