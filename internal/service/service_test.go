package service

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/repository"
)

const testTZ = "Europe/Amsterdam"

var testDBSeq atomic.Int64

// openTestDB opens a migrated in-memory SQLite database. A uniquely named
// shared-cache DSN isolates tests from each other while letting GORM's pool
// see a single database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// fakeNotifier records every push category for assertions.
type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Notify(category string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, category)
}

func (f *fakeNotifier) count(category string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e == category {
			n++
		}
	}
	return n
}

// testEnv wires every service against one in-memory database and a calendar
// pinned to a fixed instant.
type testEnv struct {
	db       *gorm.DB
	cal      *clock.Calendar
	notifier *fakeNotifier

	vehicles *VehicleService
	todos    *TodoService
	quality  *QualityService
	flow     *FlowTaskService
	planning *PlanningService
	users    *UserService
	statuses *StatusService
	settings *SettingsService
	progress *ProgressService
	reset    *ResetService
}

func newTestEnv(t *testing.T, at time.Time) *testEnv {
	t.Helper()
	db := openTestDB(t)
	cal, err := clock.NewCalendar(testTZ, clock.Fixed{T: at})
	require.NoError(t, err)
	n := &fakeNotifier{}

	vehicleRepo := repository.NewVehicleRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	qualityRepo := repository.NewQualityRepository(db)
	flowRepo := repository.NewFlowTaskRepository(db)
	planningRepo := repository.NewPlanningRepository(db)
	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	return &testEnv{
		db:       db,
		cal:      cal,
		notifier: n,
		vehicles: NewVehicleService(vehicleRepo, todoRepo, cal, n),
		todos:    NewTodoService(todoRepo, vehicleRepo, cal, n),
		quality:  NewQualityService(qualityRepo, cal, n),
		flow:     NewFlowTaskService(flowRepo, cal, n),
		planning: NewPlanningService(planningRepo, cal, n),
		users:    NewUserService(userRepo, n),
		statuses: NewStatusService(statusRepo, cal, n),
		settings: NewSettingsService(settingsRepo, cal, n),
		progress: NewProgressService(statusRepo, planningRepo, flowRepo, todoRepo, qualityRepo, vehicleRepo, cal, nil, 8, 30),
		reset:    NewResetService(todoRepo, flowRepo, cal, n, zap.NewNop().Sugar()),
	}
}

// branchTime builds an instant at the given civil date and time of day in the
// branch timezone.
func branchTime(t *testing.T, date string, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(testTZ)
	require.NoError(t, err)
	day, err := time.ParseInLocation(clock.DateLayout, date, loc)
	require.NoError(t, err)
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func ptr[T any](v T) *T { return &v }
