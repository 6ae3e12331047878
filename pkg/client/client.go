package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/hivecastapp/hivecast/pkg/domain"
	"github.com/hivecastapp/hivecast/pkg/store"
)

// Client is the HiveCast hosted-API adapter. It implements the same CRUD
// contract as the local store against the remote document collections and
// blob namespace, plus the auth endpoints the session container uses.
//
// Failures are logged with their original cause and returned wrapped with
// the operation name. There is no retry and no fallback to the local store.
type Client struct {
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

var _ store.Store = (*Client)(nil)

// New creates a new API client. Every call is bounded by the client
// timeout; the original interface had none, which let a hung backend hang
// the UI forever.
func New(baseURL, apiKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken installs the bearer token obtained from login or register.
func (c *Client) SetToken(token string) {
	c.token = token
}

// AuthResponse is the session handed back by the login and register
// endpoints.
type AuthResponse struct {
	Token string             `json:"token"`
	User  domain.UserProfile `json:"user"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var auth AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/auth/login", body, &auth); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &auth, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password, displayName string) (*AuthResponse, error) {
	var auth AuthResponse
	body := map[string]string{"email": email, "password": password, "displayName": displayName}
	if err := c.post(ctx, "/api/auth/register", body, &auth); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &auth, nil
}

// Me returns the authenticated user's base identity.
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var me domain.UserProfile
	if err := c.get(ctx, "/api/me", &me); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &me, nil
}

// CreateProject inserts a new project document. The server assigns the id,
// the creation timestamp, and the lifecycle defaults.
func (c *Client) CreateProject(ctx context.Context, draft domain.ProjectDraft) (domain.Project, error) {
	var created domain.Project
	if err := c.post(ctx, "/api/projects", draft, &created); err != nil {
		return domain.Project{}, fmt.Errorf("client.CreateProject: %w", err)
	}
	return created, nil
}

// Projects fetches projects newest first, optionally filtered by creator.
func (c *Client) Projects(ctx context.Context, creatorID string) ([]domain.Project, error) {
	path := "/api/projects"
	if creatorID != "" {
		params := url.Values{}
		params.Set("creator", creatorID)
		path += "?" + params.Encode()
	}
	var projects []domain.Project
	if err := c.get(ctx, path, &projects); err != nil {
		return nil, fmt.Errorf("client.Projects: %w", err)
	}
	return projects, nil
}

// UpdateProject merges the patch into the remote document.
func (c *Client) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) error {
	if err := c.patch(ctx, "/api/projects/"+url.PathEscape(id), patch); err != nil {
		return fmt.Errorf("client.UpdateProject: %w", err)
	}
	return nil
}

// DeleteProject removes the document permanently.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteProject: %w", err)
	}
	return nil
}

// Profile fetches a user profile by uid. A missing profile yields nil, not
// an error.
func (c *Client) Profile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.get(ctx, "/api/profiles/"+url.PathEscape(uid), &profile); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("client.Profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile creates or replaces the profile document for profile.UID.
func (c *Client) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/profiles/"+url.PathEscape(profile.UID), profile, nil); err != nil {
		return fmt.Errorf("client.SaveProfile: %w", err)
	}
	return nil
}

// UpdateProfile merges the patch into the profile document. The server
// refreshes updatedAt.
func (c *Client) UpdateProfile(ctx context.Context, uid string, patch domain.ProfilePatch) error {
	if err := c.patch(ctx, "/api/profiles/"+url.PathEscape(uid), patch); err != nil {
		return fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return nil
}

// CreateJob inserts a new job post.
func (c *Client) CreateJob(ctx context.Context, draft domain.JobDraft) (domain.Job, error) {
	var created domain.Job
	if err := c.post(ctx, "/api/jobs", draft, &created); err != nil {
		return domain.Job{}, fmt.Errorf("client.CreateJob: %w", err)
	}
	return created, nil
}

// Jobs fetches job posts, newest first.
func (c *Client) Jobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.get(ctx, "/api/jobs", &jobs); err != nil {
		return nil, fmt.Errorf("client.Jobs: %w", err)
	}
	return jobs, nil
}

// AddFavorite bookmarks an item for the user.
func (c *Client) AddFavorite(ctx context.Context, userID, itemID string, itemType domain.FavoriteType) error {
	body := map[string]string{"userId": userID, "itemId": itemID, "itemType": string(itemType)}
	if err := c.post(ctx, "/api/favorites", body, nil); err != nil {
		return fmt.Errorf("client.AddFavorite: %w", err)
	}
	return nil
}

// RemoveFavorite drops the user's bookmark on the item.
func (c *Client) RemoveFavorite(ctx context.Context, userID, itemID string) error {
	params := url.Values{}
	params.Set("user", userID)
	params.Set("item", itemID)
	if err := c.doRequest(ctx, http.MethodDelete, "/api/favorites?"+params.Encode(), nil, nil); err != nil {
		return fmt.Errorf("client.RemoveFavorite: %w", err)
	}
	return nil
}

// Favorites fetches the user's bookmarks, newest first.
func (c *Client) Favorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	params := url.Values{}
	params.Set("user", userID)
	var favorites []domain.Favorite
	if err := c.get(ctx, "/api/favorites?"+params.Encode(), &favorites); err != nil {
		return nil, fmt.Errorf("client.Favorites: %w", err)
	}
	return favorites, nil
}

// RequestConnection creates a pending connection between two users.
func (c *Client) RequestConnection(ctx context.Context, senderID, receiverID string) error {
	body := map[string]string{"senderId": senderID, "receiverId": receiverID}
	if err := c.post(ctx, "/api/connections", body, nil); err != nil {
		return fmt.Errorf("client.RequestConnection: %w", err)
	}
	return nil
}

// SetConnectionStatus transitions a connection. The server refreshes
// updatedAt.
func (c *Client) SetConnectionStatus(ctx context.Context, id string, status domain.ConnectionStatus) error {
	body := map[string]string{"status": string(status)}
	if err := c.patch(ctx, "/api/connections/"+url.PathEscape(id), body); err != nil {
		return fmt.Errorf("client.SetConnectionStatus: %w", err)
	}
	return nil
}

// Connections fetches every connection the user is either end of.
func (c *Client) Connections(ctx context.Context, userID string) ([]domain.Connection, error) {
	params := url.Values{}
	params.Set("user", userID)
	var connections []domain.Connection
	if err := c.get(ctx, "/api/connections?"+params.Encode(), &connections); err != nil {
		return nil, fmt.Errorf("client.Connections: %w", err)
	}
	return connections, nil
}

// uploadResponse is the shape of the blob upload endpoint response.
type uploadResponse struct {
	URL string `json:"url"`
}

// UploadFile streams binary content to the blob namespace and returns the
// retrieval URL.
func (c *Client) UploadFile(ctx context.Context, r io.Reader, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/"+url.PathEscape(path), r)
	if err != nil {
		return "", fmt.Errorf("client.UploadFile: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("api request failed", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("client.UploadFile: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		httpErr := errorFrom(resp)
		c.log.Warn("api request failed", zap.String("path", path), zap.Error(httpErr))
		return "", fmt.Errorf("client.UploadFile: %w", httpErr)
	}
	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("client.UploadFile: decode response: %w", err)
	}
	return out.URL, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body any) error {
	return c.doRequest(ctx, http.MethodPatch, path, body, nil)
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		httpErr := errorFrom(resp)
		c.log.Warn("api request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(httpErr))
		return httpErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorFrom turns a non-2xx response into an HTTPError, preferring the
// API's own error message when the body carries one.
func errorFrom(resp *http.Response) *HTTPError {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
		return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
}
