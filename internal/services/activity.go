package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/harentsoaR/homecare-scheduler/internal/models"
)

const activityWriteTimeout = 5 * time.Second

// ActivityStore persists activity events.
type ActivityStore interface {
	Insert(ctx context.Context, a *models.Activity) error
	ListByTeam(ctx context.Context, teamID string, limit int64) ([]models.Activity, error)
}

// ActivityService records what users do to their team's session.
type ActivityService struct {
	store ActivityStore
	now   func() time.Time
}

func NewActivityService(store ActivityStore) *ActivityService {
	return &ActivityService{store: store, now: time.Now}
}

// Record writes the event in the background so the API response is not
// held up by the database. Failures are logged and dropped.
func (s *ActivityService) Record(userID, teamID, action, target string) {
	a := &models.Activity{
		UserID: userID,
		TeamID: teamID,
		Action: action,
		Target: target,
		At:     s.now().UTC(),
	}
	go s.write(a)
}

func (s *ActivityService) write(a *models.Activity) {
	ctx, cancel := context.WithTimeout(context.Background(), activityWriteTimeout)
	defer cancel()
	if err := s.store.Insert(ctx, a); err != nil {
		log.Warn().Err(err).Str("user_id", a.UserID).Str("action", a.Action).Msg("activity not recorded")
	}
}

// Recent returns the newest events of teamID.
func (s *ActivityService) Recent(ctx context.Context, teamID string, limit int64) ([]models.Activity, error) {
	return s.store.ListByTeam(ctx, teamID, limit)
}
