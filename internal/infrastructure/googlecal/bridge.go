package googlecal

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/acadash/backend/domain"
)

const (
	eventWindow    = 30 * 24 * time.Hour
	maxEventResult = 50
)

// Bridge holds the OAuth session with Google Calendar. The token lives in
// process memory only and there is a single session for the whole server:
// this is a single-user deployment model, and multi-user support would need
// per-user token storage.
type Bridge struct {
	config *oauth2.Config
	logger *zap.Logger

	// extra service options; tests point these at a stub server.
	opts []option.ClientOption

	mu    sync.Mutex
	token *oauth2.Token
}

// NewBridge returns a bridge in the Unconfigured state when either credential
// is missing; handlers then report configured=false instead of failing.
func NewBridge(clientID, clientSecret, redirectURL string, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	bridge := &Bridge{logger: logger}
	if clientID == "" || clientSecret == "" {
		return bridge
	}
	bridge.config = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			calendar.CalendarReadonlyScope,
			calendar.CalendarEventsScope,
		},
	}
	return bridge
}

// Configured reports whether client credentials were present at startup.
func (b *Bridge) Configured() bool {
	return b.config != nil
}

// Connected reports whether an OAuth exchange has completed and the session
// has not been dropped since.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token != nil
}

// AuthCodeURL returns the provider consent URL starting the authorization
// code flow.
func (b *Bridge) AuthCodeURL() (string, error) {
	if b.config == nil {
		return "", domain.NewError(domain.ErrCodeInvalid, "Google Calendar not configured")
	}
	return b.config.AuthCodeURL("state-token",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// Exchange completes the flow with the authorization code from the callback
// and moves the bridge into the Connected state.
func (b *Bridge) Exchange(ctx context.Context, code string) error {
	if b.config == nil {
		return domain.NewError(domain.ErrCodeInvalid, "Google Calendar not configured")
	}
	token, err := b.config.Exchange(ctx, code)
	if err != nil {
		return domain.WrapError(domain.ErrCodeExternal, "token exchange failed", err)
	}

	b.mu.Lock()
	b.token = token
	b.mu.Unlock()

	b.logger.Info("google calendar connected")
	return nil
}

// Disconnect drops the session.
func (b *Bridge) Disconnect() {
	b.mu.Lock()
	b.token = nil
	b.mu.Unlock()
	b.logger.Info("google calendar disconnected")
}

// ListEvents returns up to 50 events in the next 30 days ordered by start
// time. An authorization failure drops the session so that status reports
// disconnected and the user can re-authorize.
func (b *Bridge) ListEvents(ctx context.Context) ([]Event, error) {
	service, err := b.service(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	list, err := service.Events.List("primary").
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.Add(eventWindow).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxEventResult).
		Context(ctx).
		Do()
	if err != nil {
		if isAuthError(err) {
			b.Disconnect()
			b.logger.Warn("google token expired, session dropped")
			return nil, domain.NewError(domain.ErrCodeUnauthorized, "token expired, please reconnect")
		}
		return nil, domain.WrapError(domain.ErrCodeExternal, "failed to fetch calendar events", err)
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, fromGoogleEvent(item))
	}
	return events, nil
}

// SyncTask pushes a task to the primary calendar and returns the created
// event id.
func (b *Bridge) SyncTask(ctx context.Context, task domain.Task) (string, error) {
	if task.Title == "" || task.DueDate == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "title and due date are required")
	}

	service, err := b.service(ctx)
	if err != nil {
		return "", err
	}

	event, err := buildEvent(task)
	if err != nil {
		return "", err
	}

	created, err := service.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeExternal, "failed to sync task to calendar", err)
	}
	return created.Id, nil
}

func (b *Bridge) service(ctx context.Context) (*calendar.Service, error) {
	if b.config == nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Google Calendar not configured")
	}

	b.mu.Lock()
	token := b.token
	b.mu.Unlock()
	if token == nil {
		return nil, domain.ErrNotConnected
	}

	opts := append([]option.ClientOption{
		option.WithTokenSource(b.config.TokenSource(ctx, token)),
	}, b.opts...)
	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeExternal, "calendar service init failed", err)
	}
	return service, nil
}

func isAuthError(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == 401
	}
	return false
}
