package client

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/types"
)

// APIError carries the HTTP status and the dotted error codes returned by the
// server in its {"errors": [...]} body.
type APIError struct {
	Status int
	Codes  []string
}

func (e *APIError) Error() string {
	if len(e.Codes) == 0 {
		return fmt.Sprintf("server.status_%d", e.Status)
	}

	return strings.Join(e.Codes, ", ")
}

// HasCode reports whether the server returned the given error code.
func (e *APIError) HasCode(code string) bool {
	for _, c := range e.Codes {
		if c == code {
			return true
		}
	}

	return false
}

// Client is a typed HTTP client for the cooperative API. Token, when set, is
// sent as a bearer token on every request.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(base_url string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(base_url, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		api_err := &APIError{Status: resp.StatusCode}

		var body struct {
			Errors []string `json:"errors"`
		}
		if err := json.Unmarshal(raw, &body); err == nil {
			api_err.Codes = body.Errors
		}

		return api_err
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}

// Timestamp returns the server clock. Useful as a connectivity check.
func (c *Client) Timestamp(ctx context.Context) (time.Time, error) {
	var ts int64
	if err := c.do(ctx, http.MethodGet, "/api/v2/public/timestamp", nil, nil, &ts); err != nil {
		return time.Time{}, err
	}

	return time.Unix(ts, 0), nil
}

// Preview fetches the balances a liquidation of the member would zero.
func (c *Client) Preview(ctx context.Context, member_id int64) (*entities.LiquidationPreview, error) {
	var preview entities.LiquidationPreview

	path := fmt.Sprintf("/api/v2/liquidations/preview/%d", member_id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &preview); err != nil {
		return nil, err
	}

	return &preview, nil
}

// Execute runs the liquidation for every member in the request. The server
// commits all of them or none.
func (c *Client) Execute(ctx context.Context, request entities.ExecuteRequest) ([]entities.LiquidationEntity, error) {
	var results []entities.LiquidationEntity

	if err := c.do(ctx, http.MethodPost, "/api/v2/liquidations/execute", nil, request, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// HistoryFilters narrows the liquidation history listing. Zero values are
// omitted from the query.
type HistoryFilters struct {
	MemberID int64
	Type     types.LiquidationType
	TimeFrom int64
	TimeTo   int64
	Limit    int
	Page     int
}

func (f HistoryFilters) values() url.Values {
	query := url.Values{}

	if f.MemberID > 0 {
		query.Set("member_id", strconv.FormatInt(f.MemberID, 10))
	}
	if f.Type != "" {
		query.Set("type", string(f.Type))
	}
	if f.TimeFrom > 0 {
		query.Set("time_from", strconv.FormatInt(f.TimeFrom, 10))
	}
	if f.TimeTo > 0 {
		query.Set("time_to", strconv.FormatInt(f.TimeTo, 10))
	}
	if f.Limit > 0 {
		query.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Page > 0 {
		query.Set("page", strconv.Itoa(f.Page))
	}

	return query
}

func (c *Client) History(ctx context.Context, filters HistoryFilters) ([]entities.LiquidationEntity, error) {
	var results []entities.LiquidationEntity

	if err := c.do(ctx, http.MethodGet, "/api/v2/liquidations/history", filters.values(), nil, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func (c *Client) Stats(ctx context.Context) (*entities.LiquidationStats, error) {
	var stats entities.LiquidationStats

	if err := c.do(ctx, http.MethodGet, "/api/v2/liquidations/stats", nil, nil, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (c *Client) Pending(ctx context.Context) ([]entities.PendingMemberEntity, error) {
	var pending []entities.PendingMemberEntity

	if err := c.do(ctx, http.MethodGet, "/api/v2/liquidations/pending", nil, nil, &pending); err != nil {
		return nil, err
	}

	return pending, nil
}

// Receipt fetches the rendered receipt text for an executed liquidation.
func (c *Client) Receipt(ctx context.Context, liquidation_id int64) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v2/liquidations/%d/receipt", c.BaseURL, liquidation_id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 300 {
		api_err := &APIError{Status: resp.StatusCode}

		var body struct {
			Errors []string `json:"errors"`
		}
		if err := json.Unmarshal(raw, &body); err == nil {
			api_err.Codes = body.Errors
		}

		return "", api_err
	}

	return string(raw), nil
}

// Member fetches a single member with its eligibility fields.
func (c *Client) Member(ctx context.Context, member_id int64) (*entities.MemberEntity, error) {
	var member entities.MemberEntity

	path := fmt.Sprintf("/api/v2/members/%d", member_id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &member); err != nil {
		return nil, err
	}

	return &member, nil
}
