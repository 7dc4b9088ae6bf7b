package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// midnightBufferSeconds keeps the reset clear of the exact day boundary so the
// new civil date is already in effect when the job reads the calendar.
const midnightBufferSeconds = 30

// SchedulerService wraps cron-based jobs in the branch's civil timezone.
type SchedulerService struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
}

func NewSchedulerService(loc *time.Location, log *zap.SugaredLogger) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		log:  log,
	}
}

// ScheduleDaily registers a daily job at the given HH:MM civil time.
func (s *SchedulerService) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, s.guard(job))
}

// ScheduleMidnightReset registers a job just past every civil-day boundary.
// A failing cycle never stops future cycles.
func (s *SchedulerService) ScheduleMidnightReset(job func()) (cron.EntryID, error) {
	spec := fmt.Sprintf("%d 0 0 * * *", midnightBufferSeconds)
	return s.cron.AddFunc(spec, s.guard(job))
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// guard keeps a panicking job from taking the scheduler down with it.
func (s *SchedulerService) guard(job func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Errorw("scheduled job panicked", "panic", r)
			}
		}()
		job()
	}
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
