package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/itson-folio/folio/pkg/models"
)

// Register creates an account. The call is never authenticated.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	_, err := c.Request(ctx, "/auth/register", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
		NoAuth: true,
	})
	return err
}

// Login exchanges credentials for a token. A response without a token is
// a failure. A missing user decodes to an empty User.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	data, err := c.Request(ctx, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   models.LoginRequest{Email: email, Password: password},
		NoAuth: true,
	})
	if err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if data != nil {
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, &Error{Status: http.StatusOK, Message: fmt.Sprintf("decode login response: %v", err), Err: err}
		}
	}
	if resp.Token == "" {
		return nil, &Error{Message: ErrMissingToken.Error(), Err: ErrMissingToken}
	}
	if resp.User == nil {
		resp.User = models.User{}
	}
	return &resp, nil
}

// ListProjects fetches the full collection. A body that is absent or not a
// JSON array yields an empty list.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	data, err := c.Request(ctx, "/projects", RequestOptions{})
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []models.Project{}, nil
	}

	var projects []models.Project
	if err := json.Unmarshal(trimmed, &projects); err != nil {
		return nil, &Error{Status: http.StatusOK, Message: fmt.Sprintf("decode projects: %v", err), Err: err}
	}
	return projects, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	data, err := c.Request(ctx, projectPath(id), RequestOptions{})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, &Error{Status: http.StatusOK, Message: "empty project response"}
	}

	var p models.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &Error{Status: http.StatusOK, Message: fmt.Sprintf("decode project: %v", err), Err: err}
	}
	return &p, nil
}

// CreateProject posts a new project.
func (c *Client) CreateProject(ctx context.Context, in models.ProjectInput) error {
	_, err := c.Request(ctx, "/projects", RequestOptions{Method: http.MethodPost, Body: in})
	return err
}

// UpdateProject replaces the project with the given id.
func (c *Client) UpdateProject(ctx context.Context, id string, in models.ProjectInput) error {
	_, err := c.Request(ctx, projectPath(id), RequestOptions{Method: http.MethodPut, Body: in})
	return err
}

// DeleteProject removes the project with the given id.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	_, err := c.Request(ctx, projectPath(id), RequestOptions{Method: http.MethodDelete})
	return err
}

func projectPath(id string) string {
	return "/projects/" + url.PathEscape(id)
}
