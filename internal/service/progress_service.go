package service

import (
	"context"
	"math"

	"branch-dashboard/internal/clock"
	"branch-dashboard/internal/model"
	"branch-dashboard/internal/repository"
	"branch-dashboard/internal/shared"
)

// DefaultModules is the weighted module set. The denominator of the overall
// score is the length of this slice; the "future" panel is reported alongside
// but carries no weight.
var DefaultModules = []string{
	model.ModuleTimedriver,
	model.ModuleUpgrade,
	model.ModuleFlow,
	model.ModuleTodo,
	model.ModuleQuality,
	model.ModuleBodyshop,
}

// TimedriverStatus reports the labor-budget module.
type TimedriverStatus struct {
	IsDone         bool `json:"isDone"`
	HasCalculation bool `json:"hasCalculation"`
}

// UpgradeStatus reports the upgrade-sale module. IsOverdue means the deadline
// passed with no candidates registered at all.
type UpgradeStatus struct {
	IsDone    bool `json:"isDone"`
	Total     int  `json:"total"`
	Sold      int  `json:"sold"`
	Pending   int  `json:"pending"`
	IsOverdue bool `json:"isOverdue"`
}

// FlowStatus reports the turnaround flow module with partial credit.
type FlowStatus struct {
	IsDone    bool `json:"isDone"`
	Total     int  `json:"total"`
	Completed int  `json:"completed"`
	Pending   int  `json:"pending"`
}

// TodoStatus reports the todo module. PostponedToFuture counts todos pushed past
// the requested date (excluded from the denominator); PostponedToToday counts
// todos pushed into it from an earlier day (included, flagged).
type TodoStatus struct {
	IsDone            bool `json:"isDone"`
	Total             int  `json:"total"`
	Completed         int  `json:"completed"`
	Pending           int  `json:"pending"`
	PostponedToFuture int  `json:"postponedToFuture"`
	PostponedToToday  int  `json:"postponedToToday"`
}

// QualityStatus reports the quality module: a flat check count against a target,
// unrelated to the pass/fail mix.
type QualityStatus struct {
	IsDone      bool `json:"isDone"`
	ChecksToday int  `json:"checksToday"`
	Target      int  `json:"target"`
}

// BodyshopStatus reports the bodyshop module: every active vehicle needs a
// same-day comment.
type BodyshopStatus struct {
	IsDone      bool `json:"isDone"`
	Total       int  `json:"total"`
	WithComment int  `json:"withComment"`
}

// FutureStatus is reported alongside the weighted modules but carries no weight.
type FutureStatus struct {
	IsDone bool                  `json:"isDone"`
	Plan   *model.FuturePlanning `json:"plan,omitempty"`
}

// DailyStatus is the consolidated per-date progress object served to the dashboard.
type DailyStatus struct {
	Date              string           `json:"date"`
	Timedriver        TimedriverStatus `json:"timedriver"`
	Upgrade           UpgradeStatus    `json:"upgrade"`
	Flow              FlowStatus       `json:"flow"`
	Todo              TodoStatus       `json:"todo"`
	Quality           QualityStatus    `json:"quality"`
	Bodyshop          BodyshopStatus   `json:"bodyshop"`
	Future            FutureStatus     `json:"future"`
	OverallProgress   int              `json:"overallProgress"`
	HasPostponedTasks bool             `json:"hasPostponedTasks"`
}

// ProgressService computes the weighted daily completion score. It only reads
// through the repositories, except for one cleanup: stale completed flow tasks
// from prior days are purged on each status request for the current date.
type ProgressService struct {
	statuses *repository.StatusRepository
	planning *repository.PlanningRepository
	flow     *repository.FlowTaskRepository
	todos    *repository.TodoRepository
	quality  *repository.QualityRepository
	vehicles *repository.VehicleRepository

	cal            *clock.Calendar
	modules        []string
	deadlineHour   int
	deadlineMinute int
}

func NewProgressService(
	statuses *repository.StatusRepository,
	planning *repository.PlanningRepository,
	flow *repository.FlowTaskRepository,
	todos *repository.TodoRepository,
	quality *repository.QualityRepository,
	vehicles *repository.VehicleRepository,
	cal *clock.Calendar,
	modules []string,
	deadlineHour, deadlineMinute int,
) *ProgressService {
	if len(modules) == 0 {
		modules = DefaultModules
	}
	return &ProgressService{
		statuses:       statuses,
		planning:       planning,
		flow:           flow,
		todos:          todos,
		quality:        quality,
		vehicles:       vehicles,
		cal:            cal,
		modules:        modules,
		deadlineHour:   deadlineHour,
		deadlineMinute: deadlineMinute,
	}
}

// GetDailyStatus builds the consolidated status for one civil date.
func (s *ProgressService) GetDailyStatus(ctx context.Context, date string) (*DailyStatus, error) {
	if !clock.ValidDate(date) {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}

	today := s.cal.Today()
	dayStart, dayEnd, err := s.cal.DayBounds(date)
	if err != nil {
		return nil, shared.Invalid("date", "expected YYYY-MM-DD")
	}

	// Cleanup ride-along: completed flow tasks from prior days are dropped once
	// the board is viewed for the current date.
	if date == today {
		if err := s.flow.DeleteCompletedBefore(ctx, dayStart); err != nil {
			return nil, err
		}
	}

	status := &DailyStatus{Date: date}
	fractions := make(map[string]float64, len(s.modules))

	ledger := make(map[string]model.ModuleStatus)
	entries, err := s.statuses.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		ledger[entry.ModuleName] = entry
	}

	// Timedriver: ledger says done, or a calculation exists for the date.
	tdDone := ledger[model.ModuleTimedriver].IsDone
	if _, err := s.planning.FindCalculation(ctx, date); err == nil {
		status.Timedriver.HasCalculation = true
		tdDone = true
	} else if err != shared.ErrNotFound {
		return nil, err
	}
	status.Timedriver.IsDone = tdDone
	fractions[model.ModuleTimedriver] = binary(tdDone)

	// Upgrade: done once anything sold; overdue if the deadline passed with an
	// empty candidate list.
	ups, err := s.planning.ListUpgradesForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, up := range ups {
		if up.IsSold {
			status.Upgrade.Sold++
		} else {
			status.Upgrade.Pending++
		}
	}
	status.Upgrade.Total = len(ups)
	status.Upgrade.IsDone = status.Upgrade.Sold > 0
	status.Upgrade.IsOverdue = len(ups) == 0 && s.deadlinePassed(date, today)
	fractions[model.ModuleUpgrade] = binary(status.Upgrade.IsDone)

	// Flow: partial credit; a day with no tasks is vacuously done.
	flowTasks, err := s.flow.ListBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for _, task := range flowTasks {
		if task.Completed {
			status.Flow.Completed++
		}
	}
	status.Flow.Total = len(flowTasks)
	status.Flow.Pending = status.Flow.Total - status.Flow.Completed
	status.Flow.IsDone = status.Flow.Pending == 0
	fractions[model.ModuleFlow] = ratio(status.Flow.Completed, status.Flow.Total)

	// Todo: partial credit over the day's set; postponements tracked separately.
	todos, err := s.todos.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, todo := range todos {
		if todo.Completed {
			status.Todo.Completed++
		}
		if todo.PostponedTo(date) {
			status.Todo.PostponedToToday++
		}
	}
	postponed, err := s.todos.ListPostponedBeyond(ctx, date)
	if err != nil {
		return nil, err
	}
	status.Todo.Total = len(todos)
	status.Todo.Pending = status.Todo.Total - status.Todo.Completed
	status.Todo.PostponedToFuture = len(postponed)
	status.Todo.IsDone = status.Todo.Pending == 0 && status.Todo.PostponedToFuture == 0
	fractions[model.ModuleTodo] = ratio(status.Todo.Completed, status.Todo.Total)

	// Quality: flat count against the target, pass/fail irrelevant.
	checks, err := s.quality.ListChecksBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	status.Quality.ChecksToday = len(checks)
	status.Quality.Target = QualityTarget
	status.Quality.IsDone = len(checks) >= QualityTarget
	frac := float64(len(checks)) / float64(QualityTarget)
	if frac > 1 {
		frac = 1
	}
	fractions[model.ModuleQuality] = frac

	// Bodyshop: every active vehicle commented today; no vehicles is vacuously done.
	active, err := s.vehicles.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	markers, err := s.vehicles.ListDailyComments(ctx, date)
	if err != nil {
		return nil, err
	}
	commented := make(map[uint]bool, len(markers))
	for _, marker := range markers {
		if marker.HasComment {
			commented[marker.VehicleID] = true
		}
	}
	for _, v := range active {
		if commented[v.ID] {
			status.Bodyshop.WithComment++
		}
	}
	status.Bodyshop.Total = len(active)
	status.Bodyshop.IsDone = status.Bodyshop.WithComment == status.Bodyshop.Total
	fractions[model.ModuleBodyshop] = ratio(status.Bodyshop.WithComment, status.Bodyshop.Total)

	// Future panel: unweighted, shown alongside.
	if plan, err := s.planning.FindPlanning(ctx, date); err == nil {
		status.Future.IsDone = true
		status.Future.Plan = plan
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	// Overall score: a fixed denominator over the configured module set; vacuously
	// done modules count in full, never renormalized away.
	var sum float64
	for _, name := range s.modules {
		sum += fractions[name]
	}
	status.OverallProgress = int(math.Round(100 * sum / float64(len(s.modules))))
	status.HasPostponedTasks = status.Todo.PostponedToFuture > 0 || status.Todo.PostponedToToday > 0

	return status, nil
}

// deadlinePassed reports whether the upgrade deadline has passed for the given
// date, as observed at the current civil instant.
func (s *ProgressService) deadlinePassed(date, today string) bool {
	switch {
	case date < today:
		return true
	case date == today:
		return s.cal.IsPast(s.deadlineHour, s.deadlineMinute)
	default:
		return false
	}
}

func binary(done bool) float64 {
	if done {
		return 1
	}
	return 0
}

// ratio returns completed/total, treating an empty set as fully done.
func ratio(completed, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(completed) / float64(total)
}
