package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestionretard/internal/auth"
	"gestionretard/internal/directory"
)

type createCourseRequest struct {
	Name string `json:"name"`
}

func (s *Server) createCourse(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	course, err := s.dir.CreateCourse(c.Request.Context(), req.Name, claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "course created", "course": course})
}

func (s *Server) listCourses(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	courses, err := s.dir.ListCourses(c.Request.Context(), claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	if courses == nil {
		courses = []directory.Course{}
	}
	c.JSON(http.StatusOK, courses)
}

func (s *Server) courseRoster(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	roster, err := s.dir.Roster(c.Request.Context(), courseID)
	if err != nil {
		fail(c, err)
		return
	}
	if roster == nil {
		roster = []directory.Student{}
	}
	c.JSON(http.StatusOK, roster)
}
