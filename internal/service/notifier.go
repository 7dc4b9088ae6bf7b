package service

// Resource categories broadcast to connected dashboard clients after a mutation.
// Listeners refetch the named resource; delivery is fire-and-forget.
const (
	ResourceVehicles   = "vehicles"
	ResourceTodos      = "todos"
	ResourceQuality    = "quality"
	ResourceFlow       = "flow"
	ResourceStatus     = "status"
	ResourceUsers      = "users"
	ResourceUpgrade    = "upgrade"
	ResourceTimedriver = "timedriver"
	ResourcePlanning   = "planning"
	ResourceKpi        = "kpi"
	ResourceSettings   = "settings"
	ResourceReset      = "reset"
)

// Notifier pushes a change notification for a resource category. Implementations
// must never block the calling request.
type Notifier interface {
	Notify(category string)
}

// NopNotifier discards notifications. Used in tests and as a safe default.
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}
