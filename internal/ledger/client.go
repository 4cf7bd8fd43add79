// Package ledger talks to the RPC relay in front of the on-chain Guardian
// score contract. Writes go through Publisher so they never hold up scoring.
package ledger

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
)

// Contract function indices.
const (
	inputTypeGetScore = 2
)

// Sizes of the contract's read output. The struct is naturally aligned on
// chain (16 bytes, pad after grade and after accessTier); relays that strip
// padding return the 14 byte packed form.
const (
	getScoreAlignedSize = 16
	getScorePackedSize  = 14
)

type Status struct {
	LastProcessedTick struct {
		TickNumber int64 `json:"tickNumber"`
		Epoch      int   `json:"epoch"`
	} `json:"lastProcessedTick"`
}

// Receipt acknowledges a broadcast score update.
type Receipt struct {
	TxID string `json:"txId"`
}

// OnChainScore is a decoded contract read. Raw is the base64 responseData as
// returned by the relay; the typed fields are only meaningful when Decoded is
// true.
type OnChainScore struct {
	Raw        string    `json:"raw"`
	Decoded    bool      `json:"decoded"`
	Found      bool      `json:"found"`
	Score      int       `json:"score,omitempty"`
	Grade      string    `json:"grade,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitempty"`
	CapMin     int64     `json:"capMin,omitempty"`
	CapMax     int64     `json:"capMax,omitempty"`
	FeeTierBps int       `json:"feeTierBps,omitempty"`
	AccessTier string    `json:"accessTier,omitempty"`
}

type Client interface {
	SetScore(ctx context.Context, projectID string, score int, grade scoring.Grade) (*Receipt, error)
	GetScore(ctx context.Context, projectID string) (*OnChainScore, error)
	Status(ctx context.Context) (*Status, error)
}

type Options struct {
	Token         string
	ContractIndex int
	Timeout       time.Duration
	RetryCount    int
}

type HTTPClient struct {
	contractIndex int
	http          *resty.Client
}

func NewHTTPClient(baseURL string, opts Options) *HTTPClient {
	return newHTTPClient(resty.New(), baseURL, opts)
}

func newHTTPClient(rc *resty.Client, baseURL string, opts Options) *HTTPClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	rc.SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if opts.Token != "" {
		rc.SetAuthToken(opts.Token)
	}
	return &HTTPClient{contractIndex: opts.ContractIndex, http: rc}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, result interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("ledger %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("ledger %s %s: %d %s", method, path, resp.StatusCode(), resp.String())
	}
	return nil
}

func (c *HTTPClient) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.do(ctx, http.MethodGet, "/v1/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *HTTPClient) SetScore(ctx context.Context, projectID string, score int, grade scoring.Grade) (*Receipt, error) {
	body := map[string]interface{}{
		"contractIndex": c.contractIndex,
		"projectId":     projectID,
		"score":         score,
		"grade":         grade.LedgerCode(),
	}
	var r Receipt
	if err := c.do(ctx, http.MethodPost, "/v1/setScore", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) GetScore(ctx context.Context, projectID string) (*OnChainScore, error) {
	body := map[string]interface{}{
		"contractIndex": c.contractIndex,
		"inputType":     inputTypeGetScore,
		"inputSize":     len(projectID),
		"requestData":   base64.StdEncoding.EncodeToString([]byte(projectID)),
	}
	var out struct {
		ResponseData string `json:"responseData"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/querySmartContract", body, &out); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(out.ResponseData)
	if err != nil {
		return nil, fmt.Errorf("decode contract response: %w", err)
	}
	return decodeScore(out.ResponseData, data), nil
}

// decodeScore reads the little-endian contract output in either layout.
// Payloads shorter than the packed form come back with only Raw set.
func decodeScore(raw string, data []byte) *OnChainScore {
	s := &OnChainScore{Raw: raw}

	// offsets of timestamp, capMin, capMax, feeTierBps and accessTier
	var ts, capMin, capMax, fee, access int
	switch {
	case len(data) >= getScoreAlignedSize:
		ts, capMin, capMax, fee, access = 4, 8, 10, 12, 14
	case len(data) >= getScorePackedSize:
		ts, capMin, capMax, fee, access = 3, 7, 9, 11, 13
	default:
		return s
	}

	s.Decoded = true
	s.Found = data[0] != 0
	if !s.Found {
		return s
	}
	s.Score = int(data[1])
	s.Grade = string(gradeFromLedger(data[2]))
	s.Timestamp = time.Unix(int64(binary.LittleEndian.Uint32(data[ts:ts+4])), 0).UTC()
	s.CapMin = int64(binary.LittleEndian.Uint16(data[capMin:capMin+2])) * 1000
	s.CapMax = int64(binary.LittleEndian.Uint16(data[capMax:capMax+2])) * 1000
	s.FeeTierBps = int(binary.LittleEndian.Uint16(data[fee : fee+2]))
	s.AccessTier = string(accessTierFromLedger(data[access]))
	return s
}

func gradeFromLedger(code uint8) scoring.Grade {
	switch code {
	case 2:
		return scoring.GradeGreen
	case 1:
		return scoring.GradeYellow
	default:
		return scoring.GradeRed
	}
}

func accessTierFromLedger(code uint8) scoring.AccessTier {
	switch code {
	case 2:
		return scoring.AccessPublic
	case 1:
		return scoring.AccessMidTier
	default:
		return scoring.AccessAccredited
	}
}
