package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gestionretard/internal/account"
	"gestionretard/internal/attendance"
	"gestionretard/internal/auth"
	"gestionretard/internal/config"
	"gestionretard/internal/directory"
	"gestionretard/internal/httpmiddleware"
)

// AccountService is what the auth endpoints need.
type AccountService interface {
	Register(ctx context.Context, name, email, password, role string) (account.User, error)
	Login(ctx context.Context, email, password string) (account.User, error)
}

// DirectoryService is what the student/course/enrollment endpoints need.
type DirectoryService interface {
	CreateStudent(ctx context.Context, s directory.Student) (directory.Student, error)
	ListStudents(ctx context.Context) ([]directory.Student, error)
	GetStudent(ctx context.Context, id int64) (directory.Student, error)
	CreateCourse(ctx context.Context, name string, ownerID int64) (directory.Course, error)
	ListCourses(ctx context.Context, ownerID int64) ([]directory.Course, error)
	Roster(ctx context.Context, courseID int64) ([]directory.Student, error)
	Enroll(ctx context.Context, studentID, courseID int64) error
}

// AttendanceService is what the presence endpoints need.
type AttendanceService interface {
	Mark(ctx context.Context, studentID, courseID int64, date, status string) (string, error)
	ListByCourseAndDate(ctx context.Context, courseID int64, date, status string) ([]attendance.Record, error)
	ListByCourse(ctx context.Context, courseID int64, status string) ([]attendance.Record, error)
	HistoryByStudent(ctx context.Context, studentID int64, status string) ([]attendance.Record, error)
	StatsByCourseAndDate(ctx context.Context, courseID int64, date string) (attendance.Stats, error)
	StatsByCourse(ctx context.Context, courseID int64) (attendance.Stats, error)
	StatsByStudent(ctx context.Context, studentID int64) (attendance.Stats, error)
}

// HealthChecker reports dependency health for /healthz.
type HealthChecker func(ctx context.Context) (dbOK, redisOK bool)

// Server wires the services into the HTTP surface.
type Server struct {
	cfg      config.App
	accounts AccountService
	dir      DirectoryService
	att      AttendanceService
	health   HealthChecker
}

// NewServer creates the HTTP server over the given services.
func NewServer(cfg config.App, accounts AccountService, dir DirectoryService, att AttendanceService, health HealthChecker) *Server {
	if health == nil {
		health = func(context.Context) (bool, bool) { return true, true }
	}
	return &Server{cfg: cfg, accounts: accounts, dir: dir, att: att, health: health}
}

// Router builds the gin engine with the full route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.Metrics())
	r.Use(httpmiddleware.NewTokenBucket(s.cfg.RateLimitPerMin, s.cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", s.healthz)

	r.POST("/auth/register", s.register)
	r.POST("/auth/login", s.login)

	protected := r.Group("/", auth.RequireAuth(s.cfg.JWTSecret, s.cfg.JWTIssuer))

	protected.GET("/auth/me", s.me)

	protected.POST("/cours", s.createCourse)
	protected.GET("/cours", s.listCourses)
	protected.GET("/cours/:id/eleves", s.courseRoster)

	protected.POST("/eleves", s.createStudent)
	protected.GET("/eleves", s.listStudents)
	protected.GET("/eleves/:id", s.getStudent)

	protected.POST("/inscriptions", s.enroll)

	protected.POST("/presences", s.markPresence)
	protected.GET("/presences/:course_id", s.listPresencesByDate)
	protected.GET("/presences/:course_id/stats", s.presenceStats)
	protected.GET("/presences/:course_id/stats-global", s.presenceStatsGlobal)
	protected.GET("/presences/:course_id/global", s.listPresencesGlobal)
	protected.GET("/presences/eleve/:id", s.studentHistory)
	protected.GET("/presences/eleve/:id/stats", s.studentStats)

	return r
}

func (s *Server) healthz(c *gin.Context) {
	dbOK, redisOK := s.health(c.Request.Context())
	status := http.StatusOK
	if !dbOK || !redisOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "db": dbOK, "redis": redisOK})
}

// corsMiddleware allows browser and mobile webview clients.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
