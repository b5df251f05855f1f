// Package controller implements the remote query executor against the
// network controller's REST/graph-query API. It owns session management and
// result decoding; the reconciliation engine only ever sees fragments or a
// failure.
package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ifacegroup/fabricsync/internal/transport"
	"github.com/ifacegroup/fabricsync/pkg/errors"
	"github.com/ifacegroup/fabricsync/pkg/logging"
	"github.com/ifacegroup/fabricsync/pkg/types"
)

// Session is the explicit authentication state for one controller. It is a
// plain value threaded through the client rather than a process-wide
// singleton, so two passes can never share hidden state.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"id"`
}

// Active reports whether the session holds a token.
func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

// Client talks to one controller instance.
type Client struct {
	transport *transport.Client
	baseURL   string
	session   *Session
}

// NewClient creates a controller client for the given base URL.
func NewClient(baseURL string, insecure bool) *Client {
	return &Client{
		transport: transport.New(insecure),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// loginRequest is the authentication request body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the controller and stores the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	url := c.baseURL + "/api/aaa/login"
	resp, err := c.transport.PostJSON(ctx, url, "", loginRequest{Username: username, Password: password})
	if err != nil {
		return errors.NewAuthenticationError(url, "request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var session Session
		if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
			return errors.NewAuthenticationError(url, "malformed login response", err)
		}
		c.session = &session
		logging.Debug().Str("user_id", session.UserID).Msg("controller session established")
		return nil
	case http.StatusUnauthorized:
		return errors.NewAuthenticationError(url, "invalid username or password", nil)
	default:
		body, _ := io.ReadAll(resp.Body)
		return errors.NewAuthenticationError(url,
			fmt.Sprintf("login failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
}

// Logout clears the stored session.
func (c *Client) Logout() {
	c.session = nil
}

// Session returns the current session, nil when not authenticated.
func (c *Client) Session() *Session {
	return c.session
}

// queryRequest is the graph-query request body.
type queryRequest struct {
	Query string `json:"query"`
}

// queryResponse is the graph-query response envelope.
type queryResponse struct {
	Items []json.RawMessage `json:"items"`
	Count int               `json:"count"`
}

// ExecuteQuery runs one graph query against a blueprint and returns the raw
// result items.
func (c *Client) ExecuteQuery(ctx context.Context, blueprint, query string) ([]json.RawMessage, error) {
	if !c.session.Active() {
		return nil, errors.ErrNotAuthenticated
	}

	url := fmt.Sprintf("%s/api/blueprints/%s/qe", c.baseURL, blueprint)
	resp, err := c.transport.PostJSON(ctx, url, c.session.Token, queryRequest{Query: query})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewQueryError(blueprint, 0, "query canceled", ctx.Err())
		}
		return nil, errors.NewQueryError(blueprint, 0, "request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var qr queryResponse
		if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
			return nil, errors.NewQueryError(blueprint, resp.StatusCode, "malformed query response", err)
		}
		return qr.Items, nil
	case http.StatusNotFound:
		return nil, errors.NewQueryError(blueprint, resp.StatusCode, "blueprint not found", nil)
	case http.StatusUnauthorized:
		return nil, errors.NewQueryError(blueprint, resp.StatusCode, "authentication expired or invalid", nil)
	case http.StatusUnprocessableEntity:
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.NewQueryError(blueprint, resp.StatusCode,
			"invalid query: "+strings.TrimSpace(string(body)), nil)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.NewQueryError(blueprint, resp.StatusCode,
			"request failed: "+strings.TrimSpace(string(body)), nil)
	}
}

// FetchConnectivity implements reconcile.QueryExecutor: it queries switch to
// server connectivity for a blueprint, restricted to the given switch-label
// set, and decodes the result into fragments.
func (c *Client) FetchConnectivity(ctx context.Context, blueprint string, switchLabels []string) ([]types.Fragment, error) {
	items, err := c.ExecuteQuery(ctx, blueprint, connectivityQuery(switchLabels))
	if err != nil {
		return nil, err
	}
	return decodeFragments(items), nil
}

// connectivityQuery builds the fixed graph query for switch-to-server
// connectivity, optionally restricted to a set of switch labels.
func connectivityQuery(switchLabels []string) string {
	var b strings.Builder
	b.WriteString("match(node('system', role='leaf', name='switch')")
	if len(switchLabels) > 0 {
		quoted := make([]string, len(switchLabels))
		for i, label := range switchLabels {
			quoted[i] = "'" + label + "'"
		}
		fmt.Fprintf(&b, ".where(lambda switch: switch.label in [%s])", strings.Join(quoted, ","))
	}
	b.WriteString(
		".out('hosted_interfaces').node('interface', name='switch_intf')" +
			".out('link').node('link', name='link')" +
			".in_('link').node('interface', name='server_intf')" +
			".in_('hosted_interfaces').node('system', role='server', name='server')," +
			" optional(node(name='server_intf').in_('composed_of').node('interface', name='lag'))," +
			" optional(node(name='link').in_('ep_affected_by').node('ep_application_instance')" +
			".out('ep_nested').node('ep_endpoint_policy', policy_type_name='batch', name='ct')))")
	return b.String()
}
