package fitapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL matches the API's local development endpoint.
const DefaultBaseURL = "https://localhost:7115/api"

// ErrUnauthorized marks a 401 from the API: the credential is invalid or
// expired and the session must collapse.
var ErrUnauthorized = errors.New("fitapi: unauthorized")

// APIError is any non-2xx response other than 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fitapi: api error %d: %s", e.Status, e.Message)
}

// Client talks to the remote FitCoach API. All state lives on the remote
// side; the client is stateless and safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

/* ===================== ACCOUNT ===================== */

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/user/login", "", req, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Me returns the profile for the bearer token. A 401 comes back as
// ErrUnauthorized so callers can drop the credential.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/user/me", token, nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/user/register", "", req, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) CompleteRegistration(ctx context.Context, req CompleteRegistrationRequest) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/user/complete-registration", "", req, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) InviteStudent(ctx context.Context, token string, req InviteStudentRequest) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/user/invite-student", token, req, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (c *Client) BlockUser(ctx context.Context, token, userID string) error {
	return c.do(ctx, http.MethodPost, "/user/"+userID+"/block", token, nil, nil)
}

func (c *Client) UnblockUser(ctx context.Context, token, userID string) error {
	return c.do(ctx, http.MethodPost, "/user/"+userID+"/unblock", token, nil, nil)
}

// ListUsers is the admin user table source.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/user", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

/* ===================== COACHING ===================== */

// ListStudents returns the calling trainer's students.
func (c *Client) ListStudents(ctx context.Context, token string) ([]Student, error) {
	var out []Student
	if err := c.do(ctx, http.MethodGet, "/student", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListWorkouts(ctx context.Context, token string) ([]Workout, error) {
	var out []Workout
	if err := c.do(ctx, http.MethodGet, "/workout", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateWorkout(ctx context.Context, token string, req Workout) (Workout, error) {
	var out Workout
	if err := c.do(ctx, http.MethodPost, "/workout", token, req, &out); err != nil {
		return Workout{}, err
	}
	return out, nil
}

/* ===================== TRANSPORT ===================== */

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("fitapi: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("fitapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fitapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("fitapi: decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls a message out of an error body, tolerating both
// {"message": ...} and {"error": ...} shapes.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "request failed"
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "request failed"
}
