package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestionretard/internal/attendance"
)

type markRequest struct {
	StudentID int64  `json:"student_id"`
	CourseID  int64  `json:"course_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

func (s *Server) markPresence(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	action, err := s.att.Mark(c.Request.Context(), req.StudentID, req.CourseID, req.Date, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attendance " + action, "action": action})
}

func (s *Server) listPresencesByDate(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	records, err := s.att.ListByCourseAndDate(c.Request.Context(), courseID, c.Query("date"), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(records))
}

func (s *Server) listPresencesGlobal(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	records, err := s.att.ListByCourse(c.Request.Context(), courseID, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(records))
}

func (s *Server) presenceStats(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	stats, err := s.att.StatsByCourseAndDate(c.Request.Context(), courseID, c.Query("date"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) presenceStatsGlobal(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	stats, err := s.att.StatsByCourse(c.Request.Context(), courseID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) studentHistory(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	records, err := s.att.HistoryByStudent(c.Request.Context(), studentID, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(records))
}

func (s *Server) studentStats(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := s.att.StatsByStudent(c.Request.Context(), studentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func emptyIfNil(records []attendance.Record) []attendance.Record {
	if records == nil {
		return []attendance.Record{}
	}
	return records
}
