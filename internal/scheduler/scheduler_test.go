// FilePath: internal/scheduler/scheduler_test.go
package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/verdantlabs/gardenhub/internal/config"
	"github.com/verdantlabs/gardenhub/internal/models"
)

func TestNextRunTime(t *testing.T) {
	cfg := config.ScheduleConfig{Hour: 6, Minute: 0}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before today's slot runs today",
			now:  time.Date(2025, 6, 15, 4, 30, 0, 0, time.UTC),
			want: time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "after today's slot runs tomorrow",
			now:  time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at the slot runs tomorrow",
			now:  time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "one second before the slot runs today",
			now:  time.Date(2025, 6, 15, 5, 59, 59, 0, time.UTC),
			want: time.Date(2025, 6, 15, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "month rollover",
			now:  time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC),
			want: time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC input is normalized",
			now:  time.Date(2025, 6, 15, 9, 0, 0, 0, time.FixedZone("EEST", 3*3600)), // 06:00 UTC
			want: time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextRunTime(tt.now, cfg)
			if !got.Equal(tt.want) {
				t.Errorf("NextRunTime(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

// ---- fakes ----

type fakeUsers struct {
	users []*models.User
	err   error
}

func (f *fakeUsers) List(ctx context.Context) ([]*models.User, error) {
	return f.users, f.err
}

type fakeWeather struct {
	fetched []string
	failFor map[string]bool
}

func (f *fakeWeather) FetchAndStoreForUser(ctx context.Context, userID string) (*models.WeatherSample, error) {
	f.fetched = append(f.fetched, userID)
	if f.failFor[userID] {
		return nil, errors.New("provider down")
	}
	return &models.WeatherSample{UserID: userID}, nil
}

type fakeAssessor struct {
	plants      []*models.AssessablePlant
	listErr     error
	transitions map[string]*models.StatusTransition
	failFor     map[string]bool
	assessed    []string
}

func (f *fakeAssessor) ListAssessablePlants(ctx context.Context) ([]*models.AssessablePlant, error) {
	return f.plants, f.listErr
}

func (f *fakeAssessor) AssessPlant(ctx context.Context, ap *models.AssessablePlant) (*models.StatusTransition, error) {
	id := ap.GardenPlant.ID
	f.assessed = append(f.assessed, id)
	if f.failFor[id] {
		return nil, errors.New("assessment broke")
	}
	if tr, ok := f.transitions[id]; ok {
		return tr, nil
	}
	return &models.StatusTransition{
		UserID:     ap.UserID,
		PrevStatus: models.StatusNormal,
		NewStatus:  models.StatusNormal,
	}, nil
}

type fakeNotifier struct {
	delivered [][]models.StatusTransition
}

func (f *fakeNotifier) NotifyStatusChanges(ctx context.Context, transitions []models.StatusTransition) error {
	f.delivered = append(f.delivered, transitions)
	return nil
}

func assessablePlant(id, userID string) *models.AssessablePlant {
	return &models.AssessablePlant{
		GardenPlant: &models.GardenPlant{ID: id},
		Plant:       &models.Plant{ID: "plt_1", Name: "Tomato"},
		UserID:      userID,
	}
}

// ---- pass tests ----

func TestRunDailyPassCollectsAlertTransitions(t *testing.T) {
	users := &fakeUsers{users: []*models.User{{ID: "usr_1"}, {ID: "usr_2"}}}
	weather := &fakeWeather{}
	assessor := &fakeAssessor{
		plants: []*models.AssessablePlant{
			assessablePlant("gpl_a", "usr_1"),
			assessablePlant("gpl_b", "usr_1"),
			assessablePlant("gpl_c", "usr_2"),
		},
		transitions: map[string]*models.StatusTransition{
			"gpl_b": {
				UserID:     "usr_1",
				PlantName:  "Tomato",
				PrevStatus: models.StatusNormal,
				NewStatus:  models.StatusNeedsWatering,
			},
			// Already alerted yesterday; must not re-notify.
			"gpl_c": {
				UserID:     "usr_2",
				PrevStatus: models.StatusAtRisk,
				NewStatus:  models.StatusAtRisk,
			},
		},
	}
	notifier := &fakeNotifier{}

	sched := New(config.ScheduleConfig{Hour: 6}, users, weather, assessor, notifier, nil)
	transitions, err := sched.RunDailyPass(context.Background())
	if err != nil {
		t.Fatalf("RunDailyPass failed: %v", err)
	}

	if len(weather.fetched) != 2 {
		t.Errorf("expected weather fetched for 2 users, got %d", len(weather.fetched))
	}
	if len(assessor.assessed) != 3 {
		t.Errorf("expected 3 assessments, got %d", len(assessor.assessed))
	}
	if len(transitions) != 1 || transitions[0].NewStatus != models.StatusNeedsWatering {
		t.Fatalf("expected exactly the needs_watering transition, got %+v", transitions)
	}
	if len(notifier.delivered) != 1 || len(notifier.delivered[0]) != 1 {
		t.Errorf("expected one notification batch with one transition, got %+v", notifier.delivered)
	}
}

func TestRunDailyPassIsolatesPerItemFailures(t *testing.T) {
	users := &fakeUsers{users: []*models.User{{ID: "usr_1"}, {ID: "usr_2"}}}
	weather := &fakeWeather{failFor: map[string]bool{"usr_1": true}}
	assessor := &fakeAssessor{
		plants: []*models.AssessablePlant{
			assessablePlant("gpl_a", "usr_1"),
			assessablePlant("gpl_b", "usr_2"),
		},
		failFor: map[string]bool{"gpl_a": true},
	}

	sched := New(config.ScheduleConfig{Hour: 6}, users, weather, assessor, nil, nil)
	transitions, err := sched.RunDailyPass(context.Background())
	if err != nil {
		t.Fatalf("expected partial failures to be absorbed, got %v", err)
	}

	// Both users were attempted despite the first one failing.
	if len(weather.fetched) != 2 {
		t.Errorf("expected 2 weather attempts, got %d", len(weather.fetched))
	}
	// Both plants were attempted despite the first assessment failing.
	if len(assessor.assessed) != 2 {
		t.Errorf("expected 2 assessment attempts, got %d", len(assessor.assessed))
	}
	if len(transitions) != 0 {
		t.Errorf("expected no alert transitions, got %+v", transitions)
	}
}

func TestRunDailyPassFailsWhenUserListingFails(t *testing.T) {
	users := &fakeUsers{err: errors.New("db gone")}
	sched := New(config.ScheduleConfig{Hour: 6}, users, &fakeWeather{}, &fakeAssessor{}, nil, nil)

	if _, err := sched.RunDailyPass(context.Background()); err == nil {
		t.Fatal("expected error when user listing fails")
	}
}

func TestRunDailyPassSkipsNotifierWithoutAlerts(t *testing.T) {
	users := &fakeUsers{users: []*models.User{{ID: "usr_1"}}}
	assessor := &fakeAssessor{plants: []*models.AssessablePlant{assessablePlant("gpl_a", "usr_1")}}
	notifier := &fakeNotifier{}

	sched := New(config.ScheduleConfig{Hour: 6}, users, &fakeWeather{}, assessor, notifier, nil)
	if _, err := sched.RunDailyPass(context.Background()); err != nil {
		t.Fatalf("RunDailyPass failed: %v", err)
	}
	if len(notifier.delivered) != 0 {
		t.Errorf("expected no notification batches, got %d", len(notifier.delivered))
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	users := &fakeUsers{}
	sched := New(config.ScheduleConfig{Hour: 6}, users, &fakeWeather{}, &fakeAssessor{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
