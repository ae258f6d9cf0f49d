package ado

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// APIVersion is the Azure DevOps REST API version requested.
const APIVersion = "7.1"

// Client is an Azure DevOps REST client bound to one organization.
type Client struct {
	BaseURL string // Org URL with exactly one trailing slash
	HTTP    *http.Client
	Logger  *slog.Logger
}

// NewClient creates a client whose requests carry PAT Basic auth
// (blank username) and Accept: application/json.
func NewClient(orgURL, pat string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(orgURL, "/") + "/",
		HTTP: &http.Client{
			Transport: &authTransport{
				authorization: BasicAuthHeader(pat),
				base:          http.DefaultTransport,
			},
		},
		Logger: slog.New(slog.DiscardHandler),
	}
}

// BasicAuthHeader returns the Authorization value for a PAT.
func BasicAuthHeader(pat string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+pat))
}

// authTransport sets the default headers on every outgoing request.
type authTransport struct {
	authorization string
	base          http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", t.authorization)
	r.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(r)
}

// --- Tags ---

// ListProjectTags returns the work item tag names of a project in
// response order.
//
// GET {org}/{project}/_apis/wit/tags?api-version=7.1
func (c *Client) ListProjectTags(ctx context.Context, project string) ([]string, error) {
	u, err := c.resolve(escapeDataString(project) + "/_apis/wit/tags")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("api-version", APIVersion)
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	tags, err := parseTags(body)
	if err != nil {
		return nil, err
	}
	c.logger().Debug("listed tags", "project", project, "count", len(tags))
	return tags, nil
}

// parseTags reads {"value":[{"name":...}]} tolerating missing fields.
func parseTags(body []byte) ([]string, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, &ParseError{Err: err}
	}
	if root == nil {
		return nil, &ParseError{Err: errors.New("response is not a JSON object")}
	}

	tags := []string{}
	raw, ok := root["value"]
	if !ok {
		return tags, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return tags, nil // not an array
	}

	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		var name string
		if err := json.Unmarshal(obj["name"], &name); err != nil {
			continue
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		tags = append(tags, name)
	}
	return tags, nil
}

// --- HTTP helper ---

func (c *Client) resolve(rel string) (*url.URL, error) {
	u, err := url.Parse(c.BaseURL + rel)
	if err != nil {
		return nil, fmt.Errorf("invalid organization URL %q: %w", strings.TrimSuffix(c.BaseURL, "/"), err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("invalid organization URL %q: must be absolute", strings.TrimSuffix(c.BaseURL, "/"))
	}
	return u, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	c.logger().Debug("sending request", "method", req.Method, "url", rawURL)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger().Debug("received response", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode), Body: string(body)}
	}
	return body, nil
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// escapeDataString percent-encodes everything outside the RFC 3986
// unreserved set, so a project name is always a single path segment.
func escapeDataString(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
