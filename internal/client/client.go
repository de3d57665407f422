package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ascend-app/ascend-api/internal/feed"
	"github.com/ascend-app/ascend-api/internal/ledger"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/ascend-app/ascend-api/internal/registry"
	"github.com/ascend-app/ascend-api/internal/tokenstore"
	"go.uber.org/zap"
)

// Client talks to the REST API with uniform header and token handling. There
// is deliberately no retry, backoff or offline queueing; callers see the
// first error the server produces.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  tokenstore.Store
	log     *zap.SugaredLogger
	token   string

	// Local optimistic state mirroring server resources.
	Ledger *ledger.Ledger
	Goals  *registry.Registry
	Feed   *feed.Cache
}

func New(baseURL string, tokens tokenstore.Store, log *zap.SugaredLogger) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		log:     log,
		Ledger:  ledger.New(),
		Goals:   registry.New(),
		Feed:    feed.New(),
	}
	// Token load failure is non-fatal; unauthenticated flows still work.
	token, err := tokens.Get()
	if err != nil {
		log.Warnw("failed to load stored token", "error", err)
	}
	c.token = token
	return c
}

// apiError is the body shape of non-2xx responses.
type apiError struct {
	Error string `json:"error"`
}

// do issues one JSON request. Non-2xx responses surface the body's error
// field, or a generic failure when none is present.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("api request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setToken(token string) {
	c.token = token
	if err := c.tokens.Set(token); err != nil {
		// Persistence failure is logged, never propagated: the session keeps
		// the in-memory token.
		c.log.Warnw("failed to persist token", "error", err)
	}
}

type authEnvelope struct {
	Data models.AuthResponse `json:"data"`
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	var resp authEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data.Token != "" {
		c.setToken(resp.Data.Token)
	}
	return &resp.Data.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp authEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data.Token != "" {
		c.setToken(resp.Data.Token)
	}
	return &resp.Data.User, nil
}

func (c *Client) Logout() {
	c.token = ""
	if err := c.tokens.Clear(); err != nil {
		c.log.Warnw("failed to clear stored token", "error", err)
	}
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var resp struct {
		Data models.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) CreateAction(ctx context.Context, req models.CreateActionRequest) (*models.Action, error) {
	var resp struct {
		Data models.Action `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/actions", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) CreateGoal(ctx context.Context, req models.CreateGoalRequest) (*models.Goal, error) {
	var resp struct {
		Data models.Goal `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/goals", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id string, req models.UpdateGoalRequest) (*models.Goal, error) {
	var resp struct {
		Data models.Goal `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/goals/"+id, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/goals/"+id, nil, nil)
}

func (c *Client) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	var resp struct {
		Data models.Post `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/posts", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Streaks(ctx context.Context) (map[string]interface{}, error) {
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/streaks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
