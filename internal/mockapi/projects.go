package mockapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itson-folio/folio/pkg/models"
)

func (s *Server) registerProjects(rg *gin.RouterGroup) {
	rg.GET("", s.listProjects)
	rg.POST("", s.createProject)
	rg.GET("/:id", s.getProject)
	rg.PUT("/:id", s.updateProject)
	rg.DELETE("/:id", s.deleteProject)
}

func (s *Server) listProjects(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, 0, len(s.projects))
	out = append(out, s.projects...)
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProject(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, s.projects[i])
}

func (s *Server) createProject(c *gin.Context) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}

	p := fromInput(uuid.NewString(), in, c.GetString(ctxAccountID))
	s.mu.Lock()
	s.projects = append(s.projects, p)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProject(c *gin.Context) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	owner := s.projects[i].UserID
	if owner == "" {
		owner = c.GetString(ctxAccountID)
	}
	s.projects[i] = fromInput(s.projects[i].ResolveID(), in, owner)
	c.JSON(http.StatusOK, s.projects[i])
}

func (s *Server) deleteProject(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.Param("id"))
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// indexOf matches either id field. Callers hold s.mu.
func (s *Server) indexOf(id string) int {
	for i, p := range s.projects {
		if p.ID == id || p.LegacyID == id {
			return i
		}
	}
	return -1
}

func fromInput(id string, in models.ProjectInput, fallbackOwner string) models.Project {
	title := in.Title
	owner := in.UserID
	if owner == "" {
		owner = fallbackOwner
	}
	return models.Project{
		ID:           id,
		Title:        &title,
		Description:  in.Description,
		Technologies: models.StringList(in.Technologies),
		Repository:   in.Repository,
		Images:       models.StringList(in.Images),
		UserID:       owner,
	}
}
