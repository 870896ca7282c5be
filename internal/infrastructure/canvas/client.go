package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/acadash/backend/domain"
)

const (
	apiPrefix = "/api/v1"
	perPage   = 50
)

// Client talks to the Canvas REST API with a personal access token.
// A nil Client (missing base URL or token) means Canvas is not configured.
type Client struct {
	baseURL string
	token   string
	http    *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient returns nil unless both the base URL and the access token are set.
func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" || token == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &fasthttp.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

// Configured reports whether the client can make requests.
func (c *Client) Configured() bool {
	return c != nil
}

// Courses lists the caller's active enrollments, skipping unnamed courses.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var courses []Course
	params := url.Values{
		"enrollment_state": {"active"},
		"per_page":         {fmt.Sprint(perPage)},
	}
	if err := c.getJSON(ctx, "/courses", params, &courses); err != nil {
		return nil, err
	}

	named := courses[:0]
	for _, course := range courses {
		if course.Name != "" {
			named = append(named, course)
		}
	}
	return named, nil
}

// Course fetches a single course, mainly for its display name.
func (c *Client) Course(ctx context.Context, courseID string) (*Course, error) {
	var course Course
	if err := c.getJSON(ctx, "/courses/"+url.PathEscape(courseID), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// CourseAssignments lists a course's assignments ordered by due date.
func (c *Client) CourseAssignments(ctx context.Context, courseID string) ([]Assignment, error) {
	var assignments []Assignment
	params := url.Values{
		"per_page": {fmt.Sprint(perPage)},
		"order_by": {"due_at"},
	}
	path := "/courses/" + url.PathEscape(courseID) + "/assignments"
	if err := c.getJSON(ctx, path, params, &assignments); err != nil {
		return nil, err
	}
	for i := range assignments {
		if assignments[i].CourseID == 0 {
			if id, err := parseID(courseID); err == nil {
				assignments[i].CourseID = id
			}
		}
	}
	return assignments, nil
}

// Assignment fetches one assignment by id.
func (c *Client) Assignment(ctx context.Context, courseID, assignmentID string) (*Assignment, error) {
	var assignment Assignment
	path := "/courses/" + url.PathEscape(courseID) + "/assignments/" + url.PathEscape(assignmentID)
	if err := c.getJSON(ctx, path, nil, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpcomingAssignments returns assignment-typed entries from the caller's
// upcoming events feed.
func (c *Client) UpcomingAssignments(ctx context.Context) ([]Assignment, error) {
	var entries []Assignment
	params := url.Values{"per_page": {fmt.Sprint(perPage)}}
	if err := c.getJSON(ctx, "/users/self/upcoming_events", params, &entries); err != nil {
		return nil, err
	}

	assignments := entries[:0]
	for _, entry := range entries {
		if entry.Type == "assignment" {
			assignments = append(assignments, entry)
		}
	}
	return assignments, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c == nil {
		return domain.ErrNotConfigured
	}

	uri := c.baseURL + apiPrefix + path
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return domain.WrapError(domain.ErrCodeExternal, "canvas request failed", err)
	}

	if status := resp.StatusCode(); status < 200 || status > 299 {
		c.logger.Warn("canvas returned non-2xx",
			zap.Int("status", status),
			zap.String("path", path))
		return domain.NewError(domain.ErrCodeExternal, fmt.Sprintf("canvas responded with status %d", status))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.WrapError(domain.ErrCodeExternal, "canvas response decode failed", err)
	}
	return nil
}

func parseID(s string) (int64, error) {
	var id int64
	_, err := fmt.Sscanf(s, "%d", &id)
	return id, err
}
