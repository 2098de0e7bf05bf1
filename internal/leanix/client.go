// Package leanix is the boundary to the enterprise-architecture metadata
// repository: token exchange, GraphQL execution, and flattening of the wire
// payloads into mapper source records. Everything network-shaped lives here;
// the mapping core never sees HTTP.
package leanix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	maxResponseBytes = 8 << 20 // defensive cap on API responses
	defaultTimeout   = 30 * time.Second

	// interfacesPageSize bounds the global interface fetch; the repository
	// caps pages at this size anyway.
	interfacesPageSize = 1000
)

// Options configures the client. GraphQLURL and APIToken are required.
type Options struct {
	GraphQLURL string
	APIToken   string
	Timeout    time.Duration
}

// Client talks to a LeanIX-style GraphQL repository. The workspace API token
// is exchanged once, when the client is built, for the short-lived bearer
// token every query carries.
type Client struct {
	graphqlURL  string
	accessToken string
	httpClient  *http.Client
}

// New validates the options and performs the token exchange.
func New(ctx context.Context, opts Options) (*Client, error) {
	graphqlURL := strings.TrimSpace(opts.GraphQLURL)
	if graphqlURL == "" {
		return nil, errors.New("missing graphql url")
	}
	if _, err := url.Parse(graphqlURL); err != nil {
		return nil, fmt.Errorf("invalid graphql url: %w", err)
	}
	apiToken := strings.TrimSpace(opts.APIToken)
	if apiToken == "" {
		return nil, errors.New("missing api token")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		graphqlURL: graphqlURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	token, err := c.exchangeToken(ctx, apiToken)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	c.accessToken = token
	return c, nil
}

// exchangeToken trades the workspace API token for a bearer token via the mtm
// oauth2 endpoint that lives next to the GraphQL URL.
func (c *Client) exchangeToken(ctx context.Context, apiToken string) (string, error) {
	base, _, ok := strings.Cut(c.graphqlURL, "/services/")
	if !ok {
		return "", fmt.Errorf("cannot derive auth endpoint from %q", c.graphqlURL)
	}
	authURL := base + "/services/mtm/v1/oauth2/token"

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth("apitoken", apiToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("invalid token response: %w", err)
	}
	if strings.TrimSpace(decoded.AccessToken) == "" {
		return "", errors.New("empty access token in response")
	}
	return decoded.AccessToken, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// Execute posts one GraphQL query and returns the raw data payload.
// GraphQL-level errors surface as fetch errors so generation aborts before
// an output file is touched.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	reqBody, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("query failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("invalid query response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		msgs := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("query errors: %s", strings.Join(msgs, "; "))
	}
	if len(decoded.Data) == 0 || string(decoded.Data) == "null" {
		return nil, errors.New("empty query response")
	}
	return decoded.Data, nil
}

// FetchPlatform returns the raw platform payload for one fact sheet id.
func (c *Client) FetchPlatform(ctx context.Context, platformID string) (json.RawMessage, error) {
	id := strings.TrimSpace(platformID)
	if id == "" {
		return nil, errors.New("missing platform id")
	}
	return c.Execute(ctx, queryPlatformByID, map[string]any{"id": id})
}

// FetchInterfaces returns the raw payload of the global interface list.
func (c *Client) FetchInterfaces(ctx context.Context) (json.RawMessage, error) {
	return c.Execute(ctx, queryInterfaces, map[string]any{"limit": interfacesPageSize})
}

// Ping runs a one-row query and returns the workspace's application count.
func (c *Client) Ping(ctx context.Context) (int, error) {
	data, err := c.Execute(ctx, queryPing, nil)
	if err != nil {
		return 0, err
	}
	var decoded struct {
		AllFactSheets struct {
			TotalCount int `json:"totalCount"`
		} `json:"allFactSheets"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return 0, fmt.Errorf("invalid ping response: %w", err)
	}
	return decoded.AllFactSheets.TotalCount, nil
}
