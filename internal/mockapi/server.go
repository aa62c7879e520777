// Package mockapi is an in-memory implementation of the portfolio API used
// for offline development and end-to-end tests. It mirrors the routes,
// the auth-token header and the {"message"}/{"error"} failure bodies of the
// hosted service.
package mockapi

import (
	"net/http"
	"regexp"
	"slices"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itson-folio/folio/pkg/models"
)

// BasePath is the route prefix, matching the hosted deployment.
const BasePath = "/api/v1"

var itsonIDPattern = regexp.MustCompile(`^\d{6}$`)

type account struct {
	ID       string
	Name     string
	Email    string
	ItsonID  string
	Password string
}

func (a *account) profile() gin.H {
	return gin.H{"id": a.ID, "name": a.Name, "email": a.Email, "itsonId": a.ItsonID}
}

// Server holds the mock state. The zero value is not usable; call New.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> account id
	projects []models.Project
	requests []string
	engine   *gin.Engine
}

// New creates an empty Server with its routes registered.
func New() *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.recordRequest)

	api := r.Group(BasePath)
	s.registerAuth(api.Group("/auth"))
	s.registerProjects(api.Group("/projects", s.requireAuth))

	s.engine = r
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Requests returns "METHOD /path" for every request served, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// ResetRequests clears the request log.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// AddAccount registers an account directly and returns its id.
func (s *Server) AddAccount(name, email, itsonID, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &account{ID: uuid.NewString(), Name: name, Email: email, ItsonID: itsonID, Password: password}
	s.accounts[email] = a
	return a.ID
}

// IssueToken creates a valid token for an account id.
func (s *Server) IssueToken(accountID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = accountID
	return token
}

// RevokeTokens invalidates every issued token.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

// Seed stores a project as-is and returns its id, assigning one when missing.
func (s *Server) Seed(p models.Project) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ResolveID() == "" {
		p.ID = uuid.NewString()
	}
	s.projects = append(s.projects, p)
	return p.ResolveID()
}

// Projects returns a copy of the stored projects.
func (s *Server) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.projects)
}

func (s *Server) recordRequest(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Method+" "+c.Request.URL.Path)
	s.mu.Unlock()
	c.Next()
}
