package handlers

import (
	"context"

	"github.com/harentsoaR/homecare-scheduler/internal/models"
	"github.com/harentsoaR/homecare-scheduler/internal/services"
)

// UserStore is the account storage the auth and profile endpoints need.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateFullName(ctx context.Context, id, fullName string) error
}

// ActivityRecorder keeps the audit trail of session changes.
type ActivityRecorder interface {
	Record(userID, teamID, action, target string)
	Recent(ctx context.Context, teamID string, limit int64) ([]models.Activity, error)
}

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	Users    UserStore
	Activity ActivityRecorder
	Sessions *services.SessionStore
}

func NewHandler(users UserStore, activity ActivityRecorder, sessions *services.SessionStore) *Handler {
	return &Handler{
		Users:    users,
		Activity: activity,
		Sessions: sessions,
	}
}
