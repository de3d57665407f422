package client

import (
	"context"
	"net/http"

	"github.com/ascend-app/ascend-api/internal/ledger"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/google/uuid"
)

// Sync and optimistic-mutation methods. Local state is updated first and is
// never rolled back when the mirroring request fails; failures are logged and
// the optimistic view stands.

// LoadDailyActions fills the ledger from the server.
func (c *Client) LoadDailyActions(ctx context.Context) error {
	var resp struct {
		Data []models.Action `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/actions/daily", nil, &resp); err != nil {
		return err
	}
	c.Ledger.SetActions(resp.Data)
	return nil
}

// LoadGoals fills the goal registry from the server.
func (c *Client) LoadGoals(ctx context.Context) error {
	var resp struct {
		Data []models.Goal `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/goals", nil, &resp); err != nil {
		return err
	}
	c.Goals.SetGoals(resp.Data)
	return nil
}

// LoadFeed fills one feed scope from the server.
func (c *Client) LoadFeed(ctx context.Context, scope string) error {
	var resp struct {
		Data []models.Post `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/feed/"+scope, nil, &resp); err != nil {
		return err
	}
	c.Feed.Set(scope, resp.Data)
	return nil
}

// ToggleAction flips an action locally and mirrors the completion edge to the
// server. Undo is local-only; the server never reconciles it.
func (c *Client) ToggleAction(ctx context.Context, id uuid.UUID, d *ledger.Disposition) (ledger.Result, error) {
	res, err := c.Ledger.Toggle(id, d)
	if err != nil {
		return res, err
	}

	if res.Record != nil {
		req := models.CompleteActionRequest{
			Visibility:  string(d.Visibility),
			ContentType: string(d.ContentType),
			MediaURL:    res.Record.MediaURL,
			Category:    res.Record.Category,
		}
		if err := c.do(ctx, http.MethodPut, "/api/actions/"+id.String()+"/complete", req, nil); err != nil {
			c.log.Warnw("failed to mirror completion", "actionId", id, "error", err)
		}
	}
	return res, nil
}

// AddGoal prepends the goal locally and mirrors it to the server.
func (c *Client) AddGoal(ctx context.Context, g models.Goal) {
	c.Goals.AddGoal(g)

	req := models.CreateGoalRequest{
		Title:    g.Title,
		Metric:   g.Metric,
		Deadline: g.Deadline,
		Why:      g.Why,
		Category: g.Category,
	}
	if g.Color != "" {
		req.Color = &g.Color
	}
	if _, err := c.CreateGoal(ctx, req); err != nil {
		c.log.Warnw("failed to mirror goal", "title", g.Title, "error", err)
	}
}

// React appends the reaction locally and mirrors it to the server.
func (c *Client) React(ctx context.Context, postID uuid.UUID, emoji string) {
	c.Feed.React(postID, models.Reaction{PostID: postID, Emoji: emoji})

	path := "/api/posts/" + postID.String() + "/react"
	if err := c.do(ctx, http.MethodPost, path, models.ReactRequest{Emoji: emoji}, nil); err != nil {
		c.log.Warnw("failed to mirror reaction", "postId", postID, "error", err)
	}
}
