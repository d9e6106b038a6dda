package directory

import (
	"context"
	"errors"
)

var (
	// ErrMissingFields signals a create request with empty required fields.
	ErrMissingFields = errors.New("all fields are required")
	// ErrStudentNotFound signals an unknown student id.
	ErrStudentNotFound = errors.New("student not found")
	// ErrCourseNotFound signals an unknown course id.
	ErrCourseNotFound = errors.New("course not found")
	// ErrAlreadyEnrolled signals a duplicate (student, course) enrollment.
	ErrAlreadyEnrolled = errors.New("student already enrolled in this course")
)

// Student is an independent directory entry, not owned by any course.
type Student struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Class   string `json:"class"`
}

// Course is owned by the teacher who created it.
type Course struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

type directoryStore interface {
	InsertStudent(ctx context.Context, s Student) (Student, error)
	ListStudents(ctx context.Context) ([]Student, error)
	FindStudent(ctx context.Context, id int64) (*Student, error)
	InsertCourse(ctx context.Context, name string, ownerID int64) (Course, error)
	ListCoursesByOwner(ctx context.Context, ownerID int64) ([]Course, error)
	CourseExists(ctx context.Context, id int64) (bool, error)
	Roster(ctx context.Context, courseID int64) ([]Student, error)
	InsertEnrollment(ctx context.Context, studentID, courseID int64) error
}

// Service is the directory over students, courses and enrollments. It keeps no
// state between requests; every call goes to the store.
type Service struct {
	repo directoryStore
}

// NewService creates a service backed by a directory repository.
func NewService(repo directoryStore) *Service {
	return &Service{repo: repo}
}

// CreateStudent validates and persists a student.
func (s *Service) CreateStudent(ctx context.Context, student Student) (Student, error) {
	if student.Name == "" || student.Surname == "" || student.Email == "" || student.Class == "" {
		return Student{}, ErrMissingFields
	}
	return s.repo.InsertStudent(ctx, student)
}

// ListStudents returns all students.
func (s *Service) ListStudents(ctx context.Context) ([]Student, error) {
	return s.repo.ListStudents(ctx)
}

// GetStudent returns one student or ErrStudentNotFound.
func (s *Service) GetStudent(ctx context.Context, id int64) (Student, error) {
	student, err := s.repo.FindStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if student == nil {
		return Student{}, ErrStudentNotFound
	}
	return *student, nil
}

// CreateCourse persists a course bound to the authenticated caller.
func (s *Service) CreateCourse(ctx context.Context, name string, ownerID int64) (Course, error) {
	if name == "" {
		return Course{}, ErrMissingFields
	}
	return s.repo.InsertCourse(ctx, name, ownerID)
}

// ListCourses returns the caller's courses.
func (s *Service) ListCourses(ctx context.Context, ownerID int64) ([]Course, error) {
	return s.repo.ListCoursesByOwner(ctx, ownerID)
}

// Roster returns the students enrolled in a course. An unknown course is an
// error; an existing course with no enrollments yields an empty list.
func (s *Service) Roster(ctx context.Context, courseID int64) ([]Student, error) {
	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}
	return s.repo.Roster(ctx, courseID)
}

// Enroll adds a student to a course. A duplicate pair surfaces as
// ErrAlreadyEnrolled so callers can distinguish it from other failures.
func (s *Service) Enroll(ctx context.Context, studentID, courseID int64) error {
	if studentID == 0 || courseID == 0 {
		return ErrMissingFields
	}
	return s.repo.InsertEnrollment(ctx, studentID, courseID)
}
