package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestionretard/internal/directory"
)

type createStudentRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Class   string `json:"class"`
}

func (s *Server) createStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	student, err := s.dir.CreateStudent(c.Request.Context(), directory.Student{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Class:   req.Class,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "student created", "student": student})
}

func (s *Server) listStudents(c *gin.Context) {
	students, err := s.dir.ListStudents(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if students == nil {
		students = []directory.Student{}
	}
	c.JSON(http.StatusOK, students)
}

func (s *Server) getStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	student, err := s.dir.GetStudent(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}
