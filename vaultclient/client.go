// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vaultclient provides an HTTP client for the stakevault REST API.
// It offers methods to read tiers, estimates, positions, portfolios and
// history, and to submit stake, claim and withdrawal intents.
package vaultclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vechain/stakevault/api/positions"
	"github.com/vechain/stakevault/api/rewards"
	"github.com/vechain/stakevault/api/status"
	"github.com/vechain/stakevault/api/tiers"
	"github.com/vechain/stakevault/historydb"
	"github.com/vechain/stakevault/portfolio"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// StatusError is returned when the server responds with a non 200 status.
type StatusError struct {
	StatusCode int
	Code       string // revert code of a rejected intent
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("http error - Status Code %d - %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("http error - Status Code %d - %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrNot200Status
}

// RevertCode returns the revert code carried by err, or "".
func RevertCode(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// HistoryQuery selects the activity returned by GetHistory.
type HistoryQuery struct {
	From, To *uint64
	Kinds    []historydb.Kind
	Order    historydb.Order
	Offset   uint64
	Limit    uint64
}

func (q *HistoryQuery) values() url.Values {
	v := url.Values{}
	if q == nil {
		return v
	}
	if q.From != nil {
		v.Set("from", strconv.FormatUint(*q.From, 10))
	}
	if q.To != nil {
		v.Set("to", strconv.FormatUint(*q.To, 10))
	}
	for _, k := range q.Kinds {
		v.Add("kind", string(k))
	}
	if q.Order != "" {
		v.Set("order", string(q.Order))
	}
	if q.Offset != 0 {
		v.Set("offset", strconv.FormatUint(q.Offset, 10))
	}
	if q.Limit != 0 {
		v.Set("limit", strconv.FormatUint(q.Limit, 10))
	}
	return v
}

// Client represents the HTTP client for interacting with a vault.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

// GetTiers retrieves the tier table.
func (c *Client) GetTiers() ([]tiers.Tier, error) {
	body, err := c.httpGET(c.url + "/tiers")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve tiers - %w", err)
	}

	var res []tiers.Tier
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal tiers - %w", err)
	}
	return res, nil
}

// Estimate retrieves the reward of staking amount micro-units for blocks.
// A zero blocks lets the server default to one year.
func (c *Client) Estimate(amount, blocks uint64) (*rewards.Estimate, error) {
	v := url.Values{}
	v.Set("amount", strconv.FormatUint(amount, 10))
	if blocks != 0 {
		v.Set("blocks", strconv.FormatUint(blocks, 10))
	}

	body, err := c.httpGET(c.url + "/estimate?" + v.Encode())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve estimate - %w", err)
	}

	var res rewards.Estimate
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal estimate - %w", err)
	}
	return &res, nil
}

// GetStatus retrieves the aggregates of the vault.
func (c *Client) GetStatus() (*status.Status, error) {
	body, err := c.httpGET(c.url + "/status")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve status - %w", err)
	}

	var res status.Status
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal status - %w", err)
	}
	return &res, nil
}

// GetPosition retrieves the position of principal projected to block.
func (c *Client) GetPosition(principal string, block uint64) (*positions.Position, error) {
	body, err := c.httpGET(c.positionURL(principal, "") + "?block=" + strconv.FormatUint(block, 10))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve position - %w", err)
	}

	var res positions.Position
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal position - %w", err)
	}
	return &res, nil
}

// GetPortfolio retrieves the portfolio snapshot of principal. An empty price
// uses the one configured on the server.
func (c *Client) GetPortfolio(principal string, walletBalance, block uint64, price string) (*portfolio.Snapshot, error) {
	v := url.Values{}
	v.Set("block", strconv.FormatUint(block, 10))
	v.Set("wallet", strconv.FormatUint(walletBalance, 10))
	if price != "" {
		v.Set("price", price)
	}

	body, err := c.httpGET(c.positionURL(principal, "/portfolio") + "?" + v.Encode())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve portfolio - %w", err)
	}

	var res portfolio.Snapshot
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal portfolio - %w", err)
	}
	return &res, nil
}

// GetHistory retrieves the recorded activity of principal.
func (c *Client) GetHistory(principal string, q *HistoryQuery) ([]*historydb.Event, error) {
	u := c.positionURL(principal, "/history")
	if v := q.values(); len(v) > 0 {
		u += "?" + v.Encode()
	}

	body, err := c.httpGET(u)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve history - %w", err)
	}

	var res []*historydb.Event
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal history - %w", err)
	}
	return res, nil
}

// Stake adds amount micro-units to the stake of principal at block.
func (c *Client) Stake(principal string, amount, block uint64) (*positions.Position, error) {
	body, err := c.httpPOST(c.positionURL(principal, "/stake"), &positions.AmountRequest{Amount: amount, Block: block})
	if err != nil {
		return nil, fmt.Errorf("unable to stake - %w", err)
	}

	var res positions.Position
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal position - %w", err)
	}
	return &res, nil
}

// Claim pays out the pending rewards of principal at block.
func (c *Client) Claim(principal string, block uint64) (*positions.ClaimResult, error) {
	body, err := c.httpPOST(c.positionURL(principal, "/claim"), &positions.BlockRequest{Block: block})
	if err != nil {
		return nil, fmt.Errorf("unable to claim - %w", err)
	}

	var res positions.ClaimResult
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal claim result - %w", err)
	}
	return &res, nil
}

// RequestWithdrawal starts the cooldown of a withdrawal of amount micro-units.
func (c *Client) RequestWithdrawal(principal string, amount, block uint64) (*positions.WithdrawalResult, error) {
	return c.withdrawal("", principal, &positions.AmountRequest{Amount: amount, Block: block})
}

// CompleteWithdrawal pays out the pending withdrawal once its cooldown elapsed.
func (c *Client) CompleteWithdrawal(principal string, block uint64) (*positions.WithdrawalResult, error) {
	return c.withdrawal("/complete", principal, &positions.BlockRequest{Block: block})
}

// CancelWithdrawal cancels the pending withdrawal.
func (c *Client) CancelWithdrawal(principal string, block uint64) (*positions.WithdrawalResult, error) {
	return c.withdrawal("/cancel", principal, &positions.BlockRequest{Block: block})
}

func (c *Client) withdrawal(action, principal string, payload any) (*positions.WithdrawalResult, error) {
	body, err := c.httpPOST(c.positionURL(principal, "/withdrawals"+action), payload)
	if err != nil {
		return nil, fmt.Errorf("unable to submit withdrawal - %w", err)
	}

	var res positions.WithdrawalResult
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal withdrawal result - %w", err)
	}
	return &res, nil
}

func (c *Client) positionURL(principal, suffix string) string {
	return c.url + "/positions/" + url.PathEscape(principal) + suffix
}

// RawHTTPPost sends a raw HTTP POST request to the specified path with the provided data.
func (c *Client) RawHTTPPost(path string, payload any) ([]byte, int, error) {
	data, err := marshal(payload)
	if err != nil {
		return nil, 0, err
	}
	return c.rawHTTPRequest(http.MethodPost, c.url+path, data)
}

// RawHTTPGet sends a raw HTTP GET request to the specified path.
func (c *Client) RawHTTPGet(path string) ([]byte, int, error) {
	return c.rawHTTPRequest(http.MethodGet, c.url+path, nil)
}
