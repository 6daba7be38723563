package domain

import "time"

// Session is one timed stretch of work against a task. StartTime and
// EndTime are epoch milliseconds; a nil EndTime means the session is open
// (currently elapsing).
type Session struct {
	ID        int64
	TaskID    int64
	StartTime int64
	EndTime   *int64
	IsActive  bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the session is still running.
func (s *Session) Open() bool { return s.EndTime == nil }

// StartedAt returns the start time as a time.Time in UTC.
func (s *Session) StartedAt() time.Time {
	return time.UnixMilli(s.StartTime).UTC()
}

// DurationMS returns the elapsed milliseconds, using now for open sessions
// so a running session reports live elapsed time instead of zero.
func (s *Session) DurationMS(now time.Time) int64 {
	end := now.UnixMilli()
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return end - s.StartTime
}

// SessionDetail is a session joined through its owning chain, as shown in
// the sessions listing.
type SessionDetail struct {
	ID          int64
	CompanyName string
	ProjectName string
	TaskName    string
	StartTime   int64
	EndTime     *int64
	DurationMS  int64
}
