package directory

import (
	"context"
	"database/sql"
	"errors"

	"gestionretard/internal/store"
)

// Repository persists students, courses and enrollments in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertStudent writes a new student.
func (r *Repository) InsertStudent(ctx context.Context, s Student) (Student, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (name, surname, email, class)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, s.Name, s.Surname, s.Email, s.Class)
	if err := row.Scan(&s.ID); err != nil {
		return Student{}, err
	}
	return s, nil
}

// ListStudents returns all students ordered by surname then name.
func (r *Repository) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, surname, email, class
		FROM students
		ORDER BY surname, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Surname, &s.Email, &s.Class); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// FindStudent returns a student by id, or nil when absent.
func (r *Repository) FindStudent(ctx context.Context, id int64) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, surname, email, class
		FROM students WHERE id = $1
	`, id)
	var s Student
	if err := row.Scan(&s.ID, &s.Name, &s.Surname, &s.Email, &s.Class); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// InsertCourse writes a new course owned by a teacher.
func (r *Repository) InsertCourse(ctx context.Context, name string, ownerID int64) (Course, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO courses (name, owner_id)
		VALUES ($1, $2)
		RETURNING id
	`, name, ownerID)
	c := Course{Name: name, OwnerID: ownerID}
	if err := row.Scan(&c.ID); err != nil {
		return Course{}, err
	}
	return c, nil
}

// ListCoursesByOwner returns the courses owned by a teacher.
func (r *Repository) ListCoursesByOwner(ctx context.Context, ownerID int64) ([]Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, owner_id
		FROM courses
		WHERE owner_id = $1
		ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerID); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// CourseExists reports whether a course id is known.
func (r *Repository) CourseExists(ctx context.Context, id int64) (bool, error) {
	var found int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM courses WHERE id = $1`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Roster returns the students enrolled in a course.
func (r *Repository) Roster(ctx context.Context, courseID int64) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.surname, s.email, s.class
		FROM enrollments e
		INNER JOIN students s ON e.student_id = s.id
		WHERE e.course_id = $1
		ORDER BY s.surname, s.name
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Surname, &s.Email, &s.Class); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// InsertEnrollment writes the (student, course) join row. A duplicate pair is
// reported as ErrAlreadyEnrolled.
func (r *Repository) InsertEnrollment(ctx context.Context, studentID, courseID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
	`, studentID, courseID)
	if store.IsUniqueViolation(err) {
		return ErrAlreadyEnrolled
	}
	return err
}
