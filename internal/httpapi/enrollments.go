package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type enrollRequest struct {
	StudentID int64 `json:"student_id"`
	CourseID  int64 `json:"course_id"`
}

func (s *Server) enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if err := s.dir.Enroll(c.Request.Context(), req.StudentID, req.CourseID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "enrollment successful",
		"student_id": req.StudentID,
		"course_id":  req.CourseID,
	})
}
