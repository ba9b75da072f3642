package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

// RestOracle calls a generic external word-list HTTP API:
// GET {baseURL}?pattern=...&count=...&exclude=a,b,c
// expecting a JSON body {"words": ["...", ...]}.
//
// Grounded on the pack's go.mod evidence (MrCodeEU-sudoku_gen_go pulls
// in both github.com/go-resty/resty/v2 and github.com/cenkalti/backoff/v4
// as the stack for a Go service calling an external HTTP API) rather
// than on a specific call site in that repo's own code; resty and
// backoff are each used here exactly as their own READMEs demonstrate
// — a resty.Client.R() request and a backoff.Retry wrapper around it.
type RestOracle struct {
	client  *resty.Client
	baseURL string
}

// NewRestOracle builds a REST oracle against baseURL, attaching apiKey
// as a bearer token when non-empty.
func NewRestOracle(baseURL, apiKey string) *RestOracle {
	client := resty.New().SetTimeout(10 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &RestOracle{client: client, baseURL: baseURL}
}

type restWordList struct {
	Words []string `json:"words"`
}

// Request implements csp.Oracle. A failed request (a transport error or a
// non-2xx status) is retried with exponential backoff up to 3 times, so at
// most 4 attempts in all — a failure that survives every retry is reported
// as an error, which the engine treats as an empty result (§5), never as a
// fatal condition. The body is decoded as JSON whatever Content-Type the
// server sends.
func (o *RestOracle) Request(ctx context.Context, pattern string, count int, used map[string]bool) ([]string, error) {
	excluded := make([]string, 0, len(used))
	for w := range used {
		excluded = append(excluded, w)
	}

	var result restWordList
	op := func() error {
		resp, err := o.client.R().
			SetContext(ctx).
			SetQueryParam("pattern", pattern).
			SetQueryParam("count", fmt.Sprintf("%d", count)).
			SetQueryParam("exclude", strings.Join(excluded, ",")).
			SetResult(&result).
			ForceContentType("application/json").
			Get(o.baseURL)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("oracle: rest status %d", resp.StatusCode())
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("oracle: rest request: %w", err)
	}

	words := make([]string, len(result.Words))
	for i, w := range result.Words {
		words[i] = strings.ToUpper(w)
	}
	return words, nil
}
