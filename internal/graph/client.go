// Package graph is the thin binding to the Microsoft Graph v1.0 REST
// API, implementing the backend operations the migration consumes.
// Authentication uses the client-credential flow; interactive flows
// are deliberately not supported here.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/slackmigrate/slack-to-teams/internal/export"
	"github.com/slackmigrate/slack-to-teams/internal/identity"
	"github.com/slackmigrate/slack-to-teams/internal/migrate"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

var (
	// Team IDs come back single-quoted inside the Location header of
	// the create-team response.
	reTeamID = regexp.MustCompile(`'([^']+)'`)
	// Drive item eTags embed the file GUID in braces.
	reItemGUID = regexp.MustCompile(`\{([^{}]+)\}`)
)

// Config holds the client-credential parameters for Graph access.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	BaseURL      string // override for tests; defaults to the public endpoint
}

// APIError is a non-2xx Graph response.
type APIError struct {
	Operation string
	Status    int
	Detail    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: graph api returned %d: %s", e.Operation, e.Status, e.Detail)
}

// Client talks to Microsoft Graph. It satisfies migrate.Backend.
type Client struct {
	api      *http.Client // token-injecting client for Graph calls
	download *http.Client // plain client for fetching source files
	base     string
	logger   *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.TenantID == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("graph tenant id, client id and client secret are required")
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	return &Client{
		api:      cc.Client(context.Background()),
		download: &http.Client{Timeout: 5 * time.Minute},
		base:     strings.TrimSuffix(base, "/"),
		logger:   logger,
	}, nil
}

// newClientWithHTTP creates a client with given HTTP clients (for testing).
func newClientWithHTTP(api, download *http.Client, base string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:      api,
		download: download,
		base:     strings.TrimSuffix(base, "/"),
		logger:   logger,
	}
}

// CreateTeam posts the team template and extracts the new team's ID
// from the Location response header.
func (c *Client) CreateTeam(ctx context.Context, template []byte) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/teams", "application/json", bytes.NewReader(template))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus("create team", resp); err != nil {
		return "", err
	}

	location := resp.Header.Get("Location")
	m := reTeamID.FindStringSubmatch(location)
	if m == nil {
		return "", fmt.Errorf("create team: no team id in Location header %q", location)
	}
	return m[1], nil
}

// ResolveOrCreateChannel either looks an existing channel up by
// case-insensitive display name or creates it in migration mode.
func (c *Client) ResolveOrCreateChannel(ctx context.Context, teamID string, req migrate.ChannelRequest, mode migrate.ChannelMode) (string, error) {
	if mode == migrate.ChannelResolve {
		return c.findChannelByName(ctx, teamID, req.DisplayName)
	}

	body := map[string]any{
		"displayName":     req.DisplayName,
		"description":     req.Description,
		"createdDateTime": req.CreatedDateTime,
		"membershipType":  "standard",
		"@microsoft.graph.channelCreationMode": "migration",
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "create channel", "/teams/"+teamID+"/channels", body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("create channel %q: response has no id", req.DisplayName)
	}
	return out.ID, nil
}

func (c *Client) findChannelByName(ctx context.Context, teamID, name string) (string, error) {
	var out struct {
		Value []struct {
			ID          string `json:"id"`
			DisplayName string `json:"displayName"`
		} `json:"value"`
	}
	if err := c.getJSON(ctx, "list channels", "/teams/"+teamID+"/channels?$select=id,displayName", &out); err != nil {
		return "", err
	}
	for _, ch := range out.Value {
		if strings.EqualFold(ch.DisplayName, name) {
			return ch.ID, nil
		}
	}
	return "", fmt.Errorf("channel %q not found in team %s", name, teamID)
}

// CompleteChannelMigration takes one channel out of migration mode.
func (c *Client) CompleteChannelMigration(ctx context.Context, teamID, channelID string) error {
	path := fmt.Sprintf("/teams/%s/channels/%s/completeMigration", teamID, channelID)
	return c.postEmpty(ctx, "complete channel migration", path)
}

// CompleteTeamMigration takes the team out of migration mode.
func (c *Client) CompleteTeamMigration(ctx context.Context, teamID string) error {
	return c.postEmpty(ctx, "complete team migration", fmt.Sprintf("/teams/%s/completeMigration", teamID))
}

// PostMessage posts a top-level channel message.
func (c *Client) PostMessage(ctx context.Context, teamID, channelID string, msg migrate.OutboundMessage) (string, error) {
	path := fmt.Sprintf("/teams/%s/channels/%s/messages", teamID, channelID)
	return c.postChatMessage(ctx, "post message", path, msg)
}

// PostThreadReply posts msg as a reply under rootMessageID.
func (c *Client) PostThreadReply(ctx context.Context, teamID, channelID, rootMessageID string, msg migrate.OutboundMessage) (string, error) {
	path := fmt.Sprintf("/teams/%s/channels/%s/messages/%s/replies", teamID, channelID, rootMessageID)
	return c.postChatMessage(ctx, "post thread reply", path, msg)
}

func (c *Client) postChatMessage(ctx context.Context, op, path string, msg migrate.OutboundMessage) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, op, path, chatMessagePayload(msg), &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%s: response has no id", op)
	}
	return out.ID, nil
}

func chatMessagePayload(msg migrate.OutboundMessage) map[string]any {
	user := map[string]any{"displayName": msg.FromDisplayName}
	if msg.FromUserID != "" {
		user["id"] = msg.FromUserID
	}

	payload := map[string]any{
		"body": map[string]any{
			"contentType": "html",
			"content":     msg.Body,
		},
		"from": map[string]any{"user": user},
	}
	if !msg.CreatedAt.IsZero() {
		payload["createdDateTime"] = msg.CreatedAt.UTC().Format(time.RFC3339)
	}
	if len(msg.Attachments) > 0 {
		refs := make([]map[string]any, 0, len(msg.Attachments))
		for _, att := range msg.Attachments {
			refs = append(refs, map[string]any{
				"id":          att.ID,
				"contentType": "reference",
				"contentUrl":  att.ContentURL,
				"name":        att.Name,
			})
		}
		payload["attachments"] = refs
	}
	return payload
}

// UploadAttachment streams the source file from the export host into
// the team drive under /<channel>/<capture-date>/<name>, renaming on
// conflict.
func (c *Client) UploadAttachment(ctx context.Context, teamID, channelName string, att export.Attachment) (migrate.UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.SourceURL, nil)
	if err != nil {
		return migrate.UploadResult{}, fmt.Errorf("build source request: %w", err)
	}
	src, err := c.download.Do(req)
	if err != nil {
		return migrate.UploadResult{}, fmt.Errorf("fetch source file: %w", err)
	}
	defer src.Body.Close()
	if src.StatusCode < 200 || src.StatusCode > 299 {
		return migrate.UploadResult{}, fmt.Errorf("fetch source file %s: status %d", att.SourceURL, src.StatusCode)
	}

	path := driveItemPath(teamID, channelName, att) + ":/content?@microsoft.graph.conflictBehavior=rename"
	put, err := http.NewRequestWithContext(ctx, http.MethodPut, c.base+path, src.Body)
	if err != nil {
		return migrate.UploadResult{}, fmt.Errorf("build upload request: %w", err)
	}
	put.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.api.Do(put)
	if err != nil {
		return migrate.UploadResult{}, fmt.Errorf("upload attachment: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus("upload attachment", resp); err != nil {
		return migrate.UploadResult{}, err
	}

	var item struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		WebURL string `json:"webUrl"`
		ETag   string `json:"eTag"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return migrate.UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}

	fileID := item.ID
	if m := reItemGUID.FindStringSubmatch(item.ETag); m != nil {
		fileID = m[1]
	}
	return migrate.UploadResult{
		URL:    item.WebURL,
		FileID: fileID,
		Name:   item.Name,
	}, nil
}

func driveItemPath(teamID, channelName string, att export.Attachment) string {
	segments := []string{channelName}
	segments = append(segments, strings.Split(att.CaptureDate, "/")...)
	segments = append(segments, att.Name)
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/groups/" + teamID + "/drive/root:/" + strings.Join(segments, "/")
}

// LookupUserByEmail resolves one email to a user ID via the mail
// filter. No match is an empty ID, not an error.
func (c *Client) LookupUserByEmail(ctx context.Context, email string) (string, error) {
	filter := url.QueryEscape(fmt.Sprintf("mail eq '%s'", email))
	var out struct {
		Value []struct {
			ID string `json:"id"`
		} `json:"value"`
	}
	if err := c.getJSON(ctx, "lookup user", "/users?$filter="+filter+"&$select=id,mail", &out); err != nil {
		return "", err
	}
	if len(out.Value) == 0 {
		return "", nil
	}
	return out.Value[0].ID, nil
}

// ListUserDirectory pages through the full user collection.
func (c *Client) ListUserDirectory(ctx context.Context) ([]identity.DirectoryUser, error) {
	var users []identity.DirectoryUser
	next := c.base + "/users?$select=id,mail&$top=999"
	for next != "" {
		var out struct {
			Value []struct {
				ID   string `json:"id"`
				Mail string `json:"mail"`
			} `json:"value"`
			NextLink string `json:"@odata.nextLink"`
		}
		if err := c.getJSONURL(ctx, "list user directory", next, &out); err != nil {
			return nil, err
		}
		for _, u := range out.Value {
			users = append(users, identity.DirectoryUser{ID: u.ID, Email: u.Mail})
		}
		next = out.NextLink
	}
	c.logger.Debug("Fetched target user directory", zap.Int("users", len(users)))
	return users, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.api.Do(req)
}

func (c *Client) postEmpty(ctx context.Context, op, path string) error {
	resp, err := c.do(ctx, http.MethodPost, path, "application/json", strings.NewReader("{}"))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	return checkStatus(op, resp)
}

func (c *Client) postJSON(ctx context.Context, op, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}
	resp, err := c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	return c.getJSONURL(ctx, op, c.base+path, out)
}

func (c *Client) getJSONURL(ctx context.Context, op, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	resp, err := c.api.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(op, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{
		Operation: op,
		Status:    resp.StatusCode,
		Detail:    strings.TrimSpace(string(detail)),
	}
}
