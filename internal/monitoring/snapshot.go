// Package monitoring runs the periodic content snapshot job.
package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/isdelr/conduit-be/internal/models"
)

// Snapshotter periodically logs content totals (users, articles, comments,
// favorites) so operators can watch growth without querying the store.
type Snapshotter struct {
	db       *gorm.DB
	schedule cron.Schedule
	done     chan bool
}

// NewSnapshotter creates a Snapshotter from a standard cron expression.
func NewSnapshotter(db *gorm.DB, cronExpr string) (*Snapshotter, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Snapshotter{
		db:       db,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the snapshot loop. It takes one snapshot immediately, then
// sleeps until each next scheduled time.
func (s *Snapshotter) Run() {
	log.Info().Msg("Starting content snapshotter...")
	s.snapshot()

	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.done:
			timer.Stop()
			log.Info().Msg("Stopping content snapshotter.")
			return
		case <-timer.C:
			s.snapshot()
		}
	}
}

// Stop halts the snapshot loop.
func (s *Snapshotter) Stop() {
	s.done <- true
}

func (s *Snapshotter) snapshot() {
	counts := map[string]any{
		"users":     &models.User{},
		"articles":  &models.Article{},
		"comments":  &models.Comment{},
		"favorites": &models.Favorite{},
	}

	event := log.Info()
	for name, model := range counts {
		var total int64
		if err := s.db.Model(model).Count(&total).Error; err != nil {
			log.Error().Err(err).Str("entity", name).Msg("Snapshotter: count failed")
			return
		}
		event = event.Int64(name, total)
	}
	event.Msg("Content snapshot")
}
