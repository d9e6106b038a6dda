package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

// Recognized statuses. Anything else is rejected at the service boundary.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

const dateLayout = "2006-01-02"

var (
	// ErrMissingFields signals a mark with empty required fields.
	ErrMissingFields = errors.New("student_id, course_id, date and status are required")
	// ErrInvalidStatus signals a status outside {present, late, absent}.
	ErrInvalidStatus = errors.New("status must be present, late or absent")
	// ErrInvalidDate signals a date not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be formatted YYYY-MM-DD")
)

var marksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "attendance_marks_total",
	Help: "Attendance marks by outcome.",
}, []string{"result"})

// Record is one attendance row, optionally joined to student or course
// identity depending on the listing.
type Record struct {
	ID             string    `json:"id"`
	StudentID      int64     `json:"student_id"`
	CourseID       int64     `json:"course_id"`
	Date           string    `json:"date"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	StudentName    string    `json:"student_name,omitempty"`
	StudentSurname string    `json:"student_surname,omitempty"`
	CourseName     string    `json:"course_name,omitempty"`
}

// Stats is the grouped-count shape returned by every aggregate. All three keys
// are always present; statuses with no records count 0.
type Stats struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
}

type attendanceStore interface {
	Upsert(ctx context.Context, studentID, courseID int64, date, status string) (bool, time.Time, error)
	ListByCourseAndDate(ctx context.Context, courseID int64, date, status string) ([]Record, error)
	ListByCourse(ctx context.Context, courseID int64, status string) ([]Record, error)
	ListByStudent(ctx context.Context, studentID int64, status string) ([]Record, error)
	CountByStatusForCourseAndDate(ctx context.Context, courseID int64, date string) (map[string]int, error)
	CountByStatusForCourse(ctx context.Context, courseID int64) (map[string]int, error)
	CountByStatusForStudent(ctx context.Context, studentID int64) (map[string]int, error)
}

// Service exposes marking and aggregation over attendance records. It holds no
// per-request state; the store's uniqueness constraint on (student, course,
// date) is the only serialization point.
type Service struct {
	repo     attendanceStore
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewService creates a service backed by a repository. cache may be nil; stats
// caching is then disabled.
func NewService(repo attendanceStore, cache *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// Mark records a student's status for a course session. Marking the same
// (student, course, date) again updates the status in place and reports
// "updated"; the record's creation time is preserved.
func (s *Service) Mark(ctx context.Context, studentID, courseID int64, date, status string) (string, error) {
	if studentID == 0 || courseID == 0 || date == "" || status == "" {
		return "", ErrMissingFields
	}
	if err := validStatus(status); err != nil {
		return "", err
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", ErrInvalidDate
	}

	created, _, err := s.repo.Upsert(ctx, studentID, courseID, date, status)
	if err != nil {
		return "", err
	}
	s.invalidateStats(ctx, courseID, studentID, date)
	if created {
		marksTotal.WithLabelValues("created").Inc()
		return "created", nil
	}
	marksTotal.WithLabelValues("updated").Inc()
	return "updated", nil
}

// ListByCourseAndDate returns a course's records for one session date.
func (s *Service) ListByCourseAndDate(ctx context.Context, courseID int64, date, status string) ([]Record, error) {
	if date == "" {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if status != "" {
		if err := validStatus(status); err != nil {
			return nil, err
		}
	}
	return s.repo.ListByCourseAndDate(ctx, courseID, date, status)
}

// ListByCourse returns a course's full record history, newest first, so the
// most recent state per student surfaces at the top.
func (s *Service) ListByCourse(ctx context.Context, courseID int64, status string) ([]Record, error) {
	if status != "" {
		if err := validStatus(status); err != nil {
			return nil, err
		}
	}
	return s.repo.ListByCourse(ctx, courseID, status)
}

// HistoryByStudent returns a student's records across all courses.
func (s *Service) HistoryByStudent(ctx context.Context, studentID int64, status string) ([]Record, error) {
	if status != "" {
		if err := validStatus(status); err != nil {
			return nil, err
		}
	}
	return s.repo.ListByStudent(ctx, studentID, status)
}

// StatsByCourseAndDate aggregates one session's records by status.
func (s *Service) StatsByCourseAndDate(ctx context.Context, courseID int64, date string) (Stats, error) {
	if date == "" {
		return Stats{}, ErrInvalidDate
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return Stats{}, ErrInvalidDate
	}
	key := fmt.Sprintf("stats:course:%d:date:%s", courseID, date)
	return s.cachedStats(ctx, key, func() (map[string]int, error) {
		return s.repo.CountByStatusForCourseAndDate(ctx, courseID, date)
	})
}

// StatsByCourse aggregates a course's records across all dates.
func (s *Service) StatsByCourse(ctx context.Context, courseID int64) (Stats, error) {
	key := fmt.Sprintf("stats:course:%d:global", courseID)
	return s.cachedStats(ctx, key, func() (map[string]int, error) {
		return s.repo.CountByStatusForCourse(ctx, courseID)
	})
}

// StatsByStudent aggregates one student's records across all their courses.
func (s *Service) StatsByStudent(ctx context.Context, studentID int64) (Stats, error) {
	key := fmt.Sprintf("stats:student:%d", studentID)
	return s.cachedStats(ctx, key, func() (map[string]int, error) {
		return s.repo.CountByStatusForStudent(ctx, studentID)
	})
}

func validStatus(status string) error {
	switch status {
	case StatusPresent, StatusLate, StatusAbsent:
		return nil
	}
	return ErrInvalidStatus
}

// seedStats folds store counts into the fixed three-key shape. The store only
// returns rows for statuses that occurred, so the zero values matter.
func seedStats(counts map[string]int) Stats {
	return Stats{
		Present: counts[StatusPresent],
		Late:    counts[StatusLate],
		Absent:  counts[StatusAbsent],
	}
}

// cachedStats serves stats from redis when possible and falls through to the
// store otherwise. Cache failures are ignored; the cache is an optimization,
// never the source of truth.
func (s *Service) cachedStats(ctx context.Context, key string, load func() (map[string]int, error)) (Stats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var stats Stats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return stats, nil
			}
		}
	}
	counts, err := load()
	if err != nil {
		return Stats{}, err
	}
	stats := seedStats(counts)
	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			_ = s.cache.Set(ctx, key, raw, s.cacheTTL).Err()
		}
	}
	return stats, nil
}

func (s *Service) invalidateStats(ctx context.Context, courseID, studentID int64, date string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx,
		fmt.Sprintf("stats:course:%d:date:%s", courseID, date),
		fmt.Sprintf("stats:course:%d:global", courseID),
		fmt.Sprintf("stats:student:%d", studentID),
	).Err()
}
