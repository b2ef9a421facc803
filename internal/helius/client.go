package helius

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tradebot-pipeline/internal/domain"
)

// Helius caps token-metadata requests at 100 mints per call.
const maxMintsPerRequest = 100

const defaultTimeout = 15 * time.Second

// Client resolves token symbol/name for mint addresses through the
// Helius token-metadata API. Lookups are best-effort: any failure
// yields an unresolved entry, never an error.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	apiKey      string
	maxInFlight int
	log         *logrus.Logger

	warnNoKey sync.Once
}

// NewClient builds a metadata client. maxInFlight bounds concurrent
// requests when a batch spans multiple API calls.
func NewClient(endpoint, apiKey string, maxInFlight int, log *logrus.Logger) *Client {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		endpoint:    endpoint,
		apiKey:      apiKey,
		maxInFlight: maxInFlight,
		log:         log,
	}
}

type metadataRequest struct {
	MintAccounts    []string `json:"mintAccounts"`
	IncludeOffChain bool     `json:"includeOffChain"`
	DisableCache    bool     `json:"disableCache"`
}

type metadataEntry struct {
	Account         string `json:"account"`
	OnChainMetadata struct {
		Metadata struct {
			Data struct {
				Symbol string `json:"symbol"`
				Name   string `json:"name"`
			} `json:"data"`
		} `json:"metadata"`
	} `json:"onChainMetadata"`
}

// Resolve returns one TokenMetadata per input mint, index-aligned.
// Invalid addresses and failed lookups come back unresolved (empty
// symbol and name); callers decide what an unresolved entry means.
func (c *Client) Resolve(ctx context.Context, mints []string) []domain.TokenMetadata {
	out := make([]domain.TokenMetadata, len(mints))
	if len(mints) == 0 {
		return out
	}

	if c.apiKey == "" {
		c.warnNoKey.Do(func() {
			c.log.Warn("helius: no API key configured, token metadata will be unresolved")
		})
		return out
	}

	// Dedup and validate before spending requests on them.
	seen := make(map[string]struct{}, len(mints))
	var valid []string
	for _, mint := range mints {
		if _, ok := seen[mint]; ok {
			continue
		}
		seen[mint] = struct{}{}
		if !IsMintAddress(mint) {
			c.log.WithField("address", mint).Warn("helius: skipping malformed mint address")
			continue
		}
		if !IsOnCurve(mint) {
			c.log.WithField("address", mint).Debug("helius: off-curve address, likely a PDA")
		}
		valid = append(valid, mint)
	}

	resolved := make(map[string]domain.TokenMetadata, len(valid))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.maxInFlight)

	for start := 0; start < len(valid); start += maxMintsPerRequest {
		end := start + maxMintsPerRequest
		if end > len(valid) {
			end = len(valid)
		}
		chunk := valid[start:end]

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			entries, err := c.fetch(ctx, chunk)
			if err != nil {
				c.log.WithError(err).WithField("mints", len(chunk)).
					Warn("helius: metadata lookup failed")
				return
			}
			mu.Lock()
			for _, e := range entries {
				data := e.OnChainMetadata.Metadata.Data
				resolved[e.Account] = domain.TokenMetadata{Symbol: data.Symbol, Name: data.Name}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	for i, mint := range mints {
		out[i] = resolved[mint]
	}
	return out
}

func (c *Client) fetch(ctx context.Context, mints []string) ([]metadataEntry, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("api-key", c.apiKey)
	u.RawQuery = q.Encode()

	body, err := json.Marshal(metadataRequest{
		MintAccounts:    mints,
		IncludeOffChain: true,
		DisableCache:    false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
	}

	var entries []metadataEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return entries, nil
}
