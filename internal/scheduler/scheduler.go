// FilePath: internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/config"
	"github.com/verdantlabs/gardenhub/internal/models"
	"github.com/verdantlabs/gardenhub/internal/monitoring"
)

// errorCooldown is how long the loop backs off after a failed pass or
// scheduling error before trying again.
const errorCooldown = 5 * time.Minute

// WeatherFetcher pulls and stores a fresh weather sample for a user
type WeatherFetcher interface {
	FetchAndStoreForUser(ctx context.Context, userID string) (*models.WeatherSample, error)
}

// Assessor enumerates and evaluates all placed garden plants
type Assessor interface {
	ListAssessablePlants(ctx context.Context) ([]*models.AssessablePlant, error)
	AssessPlant(ctx context.Context, ap *models.AssessablePlant) (*models.StatusTransition, error)
}

// UserLister enumerates all accounts whose gardens take part in the pass
type UserLister interface {
	List(ctx context.Context) ([]*models.User, error)
}

// Notifier delivers status-change notifications after a pass
type Notifier interface {
	NotifyStatusChanges(ctx context.Context, transitions []models.StatusTransition) error
}

// DailyScheduler runs the garden status pass once per day at a fixed
// UTC time-of-day.
type DailyScheduler struct {
	cfg      config.ScheduleConfig
	users    UserLister
	weather  WeatherFetcher
	assessor Assessor
	notifier Notifier
	metrics  *monitoring.Metrics

	now func() time.Time
}

// New creates a DailyScheduler. The notifier and metrics may be nil.
func New(cfg config.ScheduleConfig, users UserLister, weather WeatherFetcher, assessor Assessor, notifier Notifier, metrics *monitoring.Metrics) *DailyScheduler {
	return &DailyScheduler{
		cfg:      cfg,
		users:    users,
		weather:  weather,
		assessor: assessor,
		notifier: notifier,
		metrics:  metrics,
		now:      time.Now,
	}
}

// NextRunTime returns the next occurrence of the configured UTC
// time-of-day at or after now. If today's slot has already passed, the
// run moves to tomorrow.
func NextRunTime(now time.Time, cfg config.ScheduleConfig) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), cfg.Hour, cfg.Minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run executes the daily loop until the context is cancelled. Each
// iteration waits for the next scheduled slot, runs the full pass and
// delivers notifications. A failed pass is retried after a short
// cooldown instead of waiting a whole day.
func (s *DailyScheduler) Run(ctx context.Context) error {
	nuts.L.Infof("[DailyScheduler] Started, daily pass scheduled at %02d:%02d UTC", s.cfg.Hour, s.cfg.Minute)

	for {
		next := NextRunTime(s.now(), s.cfg)
		wait := next.Sub(s.now().UTC())
		nuts.L.Infof("[DailyScheduler] Next pass at %s (in %s)", next.Format(time.RFC3339), wait.Round(time.Second))

		if err := s.sleep(ctx, wait); err != nil {
			nuts.L.Infof("[DailyScheduler] Stopped: %v", err)
			return err
		}

		if _, err := s.RunDailyPass(ctx); err != nil {
			nuts.L.Errorf("[DailyScheduler] Daily pass failed: %v, retrying in %s", err, errorCooldown)
			if err := s.sleep(ctx, errorCooldown); err != nil {
				return err
			}
		}
	}
}

func (s *DailyScheduler) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunDailyPass refreshes weather for every user, re-evaluates every
// placed plant and delivers notifications for plants that left the
// normal state. Individual user or plant failures are logged and
// skipped so one bad record cannot stall the whole pass.
func (s *DailyScheduler) RunDailyPass(ctx context.Context) ([]models.StatusTransition, error) {
	start := s.now()
	nuts.L.Infof("[DailyScheduler] Starting daily garden pass")

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if _, err := s.weather.FetchAndStoreForUser(ctx, user.ID); err != nil {
			if s.metrics != nil {
				s.metrics.WeatherFetchErrors.Inc()
			}
			nuts.L.Warnf("[DailyScheduler] Weather refresh failed for user %s: %v", user.ID, err)
		}
	}

	assessable, err := s.assessor.ListAssessablePlants(ctx)
	if err != nil {
		return nil, err
	}

	var transitions []models.StatusTransition
	for _, ap := range assessable {
		transition, err := s.assessor.AssessPlant(ctx, ap)
		if err != nil {
			nuts.L.Warnf("[DailyScheduler] Assessment failed for garden plant %s: %v", ap.GardenPlant.ID, err)
			continue
		}
		if s.metrics != nil {
			s.metrics.EvaluationsByStatus.WithLabelValues(string(transition.NewStatus)).Inc()
		}
		if transition.LeftNormal() {
			transitions = append(transitions, *transition)
		}
	}

	if s.notifier != nil && len(transitions) > 0 {
		if err := s.notifier.NotifyStatusChanges(ctx, transitions); err != nil {
			nuts.L.Errorf("[DailyScheduler] Notification delivery failed: %v", err)
		}
	}

	// Weather history only serves the "latest sample" lookup; prune the
	// rest when the fetcher supports it.
	if pruner, ok := s.weather.(interface {
		PruneSamples(ctx context.Context) (int64, error)
	}); ok {
		if pruned, err := pruner.PruneSamples(ctx); err != nil {
			nuts.L.Warnf("[DailyScheduler] Weather sample pruning failed: %v", err)
		} else if pruned > 0 {
			nuts.L.Infof("[DailyScheduler] Pruned %d expired weather samples", pruned)
		}
	}

	elapsed := s.now().Sub(start)
	if s.metrics != nil {
		s.metrics.ObservePassDuration(elapsed)
	}
	nuts.L.Infof("[DailyScheduler] Daily pass complete: %d users, %d plants, %d alerts in %s",
		len(users), len(assessable), len(transitions), elapsed.Round(time.Millisecond))
	return transitions, nil
}
