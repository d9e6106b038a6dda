package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the record for its (student, course, date) key, or updates the
// status of the existing row. The single statement is atomic, so concurrent
// marks of the same key cannot produce duplicates; last writer wins on status.
// created_at is set on first insert and never touched afterwards.
func (r *Repository) Upsert(ctx context.Context, studentID, courseID int64, date, status string) (bool, time.Time, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (id, student_id, course_id, date, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, course_id, date)
		DO UPDATE SET status = EXCLUDED.status
		RETURNING (xmax = 0), created_at
	`, uuid.NewString(), studentID, courseID, date, status)
	var inserted bool
	var createdAt time.Time
	if err := row.Scan(&inserted, &createdAt); err != nil {
		return false, time.Time{}, err
	}
	return inserted, createdAt, nil
}

// ListByCourseAndDate returns a course's records for one date, joined to
// student identity, optionally filtered by status.
func (r *Repository) ListByCourseAndDate(ctx context.Context, courseID int64, date, status string) ([]Record, error) {
	query := `
		SELECT a.id, a.student_id, a.course_id, to_char(a.date, 'YYYY-MM-DD'), a.status, a.created_at,
		       s.name, s.surname
		FROM attendance a
		INNER JOIN students s ON a.student_id = s.id
		WHERE a.course_id = $1 AND a.date = $2`
	args := []any{courseID, date}
	if status != "" {
		query += ` AND a.status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY s.surname, s.name`
	return r.queryRecords(ctx, query, args, true, false)
}

// ListByCourse returns all of a course's records across dates, most recent
// first (date, then creation time).
func (r *Repository) ListByCourse(ctx context.Context, courseID int64, status string) ([]Record, error) {
	query := `
		SELECT a.id, a.student_id, a.course_id, to_char(a.date, 'YYYY-MM-DD'), a.status, a.created_at,
		       s.name, s.surname
		FROM attendance a
		INNER JOIN students s ON a.student_id = s.id
		WHERE a.course_id = $1`
	args := []any{courseID}
	if status != "" {
		query += ` AND a.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY a.date DESC, a.created_at DESC`
	return r.queryRecords(ctx, query, args, true, false)
}

// ListByStudent returns a student's records across all courses, joined to the
// course name, most recent first.
func (r *Repository) ListByStudent(ctx context.Context, studentID int64, status string) ([]Record, error) {
	query := `
		SELECT a.id, a.student_id, a.course_id, to_char(a.date, 'YYYY-MM-DD'), a.status, a.created_at,
		       c.name
		FROM attendance a
		INNER JOIN courses c ON a.course_id = c.id
		WHERE a.student_id = $1`
	args := []any{studentID}
	if status != "" {
		query += ` AND a.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY a.date DESC, a.created_at DESC`
	return r.queryRecords(ctx, query, args, false, true)
}

// CountByStatusForCourseAndDate groups a course's records for one date by status.
func (r *Repository) CountByStatusForCourseAndDate(ctx context.Context, courseID int64, date string) (map[string]int, error) {
	return r.countByStatus(ctx, `
		SELECT status, COUNT(*) FROM attendance
		WHERE course_id = $1 AND date = $2
		GROUP BY status
	`, courseID, date)
}

// CountByStatusForCourse groups all of a course's records by status.
func (r *Repository) CountByStatusForCourse(ctx context.Context, courseID int64) (map[string]int, error) {
	return r.countByStatus(ctx, `
		SELECT status, COUNT(*) FROM attendance
		WHERE course_id = $1
		GROUP BY status
	`, courseID)
}

// CountByStatusForStudent groups a student's records across courses by status.
func (r *Repository) CountByStatusForStudent(ctx context.Context, studentID int64) (map[string]int, error) {
	return r.countByStatus(ctx, `
		SELECT status, COUNT(*) FROM attendance
		WHERE student_id = $1
		GROUP BY status
	`, studentID)
}

func (r *Repository) queryRecords(ctx context.Context, query string, args []any, withStudent, withCourse bool) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		dest := []any{&rec.ID, &rec.StudentID, &rec.CourseID, &rec.Date, &rec.Status, &rec.CreatedAt}
		if withStudent {
			dest = append(dest, &rec.StudentName, &rec.StudentSurname)
		}
		if withCourse {
			dest = append(dest, &rec.CourseName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) countByStatus(ctx context.Context, query string, args ...any) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var total int
		if err := rows.Scan(&status, &total); err != nil {
			return nil, err
		}
		counts[status] = total
	}
	return counts, rows.Err()
}
