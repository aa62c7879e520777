package mockapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	authHeader   = "auth-token"
	ctxAccountID = "account_id"
)

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	ItsonID  string `json:"itsonId"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) registerAuth(rg *gin.RouterGroup) {
	rg.POST("/register", s.register)
	rg.POST("/login", s.login)
}

func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email and password are required"})
		return
	}
	if !itsonIDPattern.MatchString(req.ItsonID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "itsonId must be 6 digits"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	}
	a := &account{ID: uuid.NewString(), Name: req.Name, Email: req.Email, ItsonID: req.ItsonID, Password: req.Password}
	s.accounts[a.Email] = a
	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "user": a.profile()})
}

func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[strings.TrimSpace(strings.ToLower(req.Email))]
	if !ok || a.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	token := uuid.NewString()
	s.tokens[token] = a.ID
	c.JSON(http.StatusOK, gin.H{"token": token, "user": a.profile()})
}

// requireAuth rejects requests without a known auth-token header.
func (s *Server) requireAuth(c *gin.Context) {
	token := c.GetHeader(authHeader)
	s.mu.Lock()
	accountID, ok := s.tokens[token]
	s.mu.Unlock()
	if token == "" || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: invalid or missing token"})
		return
	}
	c.Set(ctxAccountID, accountID)
	c.Next()
}
