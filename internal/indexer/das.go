package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Decentr-net/resume/internal/entities"
	"github.com/Decentr-net/resume/internal/metrics"
)

const (
	methodGetAssetsByOwner = "getAssetsByOwner"
	methodGetAsset         = "getAsset"

	codeInvalidParams = -32602

	pageSize = 1000
	// maxPages bounds the amount of pages fetched for a single owner.
	maxPages = 50
)

var log = logrus.WithField("package", "indexer")

// permanentError marks errors which shouldn't be retried.
type permanentError struct {
	err error
}

func (e permanentError) Error() string {
	return e.err.Error()
}

func (e permanentError) Unwrap() error {
	return e.err
}

func permanent(err error) error {
	return permanentError{err: err}
}

// RPCError is an error returned by indexer in JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error ...
func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether the indexer doesn't know the requested asset.
// Indexers answer with -32000 for any server error, so the message is checked too.
func (e *RPCError) IsNotFound() bool {
	return e.Code == codeInvalidParams || strings.Contains(strings.ToLower(e.Message), "not found")
}

// Options ...
type Options struct {
	// RateLimit is an amount of requests per second. Zero means no limit.
	RateLimit     float64
	Burst         int
	RetryAttempts uint
	RetryDelay    time.Duration
	CacheSize     int
	CacheTTL      time.Duration
}

type das struct {
	endpoint string

	c       *http.Client
	rpc     *rpc.Client
	limiter *rate.Limiter
	cache   *lru.ARCCache

	opts Options
}

type cacheItem struct {
	nfts      []entities.NFT
	expiresAt time.Time
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type getAssetsByOwnerParams struct {
	OwnerAddress string `json:"ownerAddress"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

type getAssetParams struct {
	ID string `json:"id"`
}

type assetList struct {
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Items []asset `json:"items"`
}

type asset struct {
	ID      string `json:"id"`
	Content struct {
		Metadata struct {
			Name string `json:"name"`
		} `json:"metadata"`
		Links struct {
			Image string `json:"image"`
		} `json:"links"`
		Files []struct {
			URI string `json:"uri"`
		} `json:"files"`
	} `json:"content"`
	Burnt bool `json:"burnt"`
}

// New returns Indexer working with DAS-compatible JSON-RPC endpoint.
func New(endpoint string, c *http.Client, opts Options) (Indexer, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1
	}

	cache, err := lru.NewARC(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}

	return &das{
		endpoint: endpoint,
		c:        c,
		rpc:      rpc.New(endpoint),
		limiter:  rate.NewLimiter(limit, opts.Burst),
		cache:    cache,
		opts:     opts,
	}, nil
}

func (d *das) Ping(ctx context.Context) error {
	if _, err := d.rpc.GetHealth(ctx); err != nil {
		return fmt.Errorf("indexer is unhealthy: %w", err)
	}
	return nil
}

func (d *das) ListNFTs(ctx context.Context, owner string) ([]entities.NFT, error) {
	if _, err := solana.PublicKeyFromBase58(owner); err != nil {
		return nil, ErrInvalidOwner
	}

	if v, ok := d.cache.Get(owner); ok {
		item := v.(cacheItem) // nolint
		if time.Now().Before(item.expiresAt) {
			return item.nfts, nil
		}
		d.cache.Remove(owner)
	}

	out := make([]entities.NFT, 0)

	for page := 1; page <= maxPages; page++ {
		var list assetList
		if err := d.call(ctx, methodGetAssetsByOwner, getAssetsByOwnerParams{
			OwnerAddress: owner,
			Page:         page,
			Limit:        pageSize,
		}, &list); err != nil {
			return nil, fmt.Errorf("failed to get page %d: %w", page, err)
		}

		for _, v := range list.Items {
			if v.Burnt {
				continue
			}
			out = append(out, toNFT(v))
		}

		if len(list.Items) < pageSize {
			break
		}
	}

	d.cache.Add(owner, cacheItem{
		nfts:      out,
		expiresAt: time.Now().Add(d.opts.CacheTTL),
	})

	return out, nil
}

func (d *das) GetNFT(ctx context.Context, id string) (*entities.NFT, error) {
	var a asset
	if err := d.call(ctx, methodGetAsset, getAssetParams{ID: id}, &a); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && rpcErr.IsNotFound() {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, rpcErr.Message)
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	if a.ID == "" {
		return nil, ErrNotFound
	}

	nft := toNFT(a)
	return &nft, nil
}

func (d *das) call(ctx context.Context, method string, params interface{}, out interface{}) error {
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      "resume",
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	return retry.Do(
		func() error {
			start := time.Now()

			err := d.do(ctx, body, out)

			status := metrics.StatusOK
			if err != nil {
				status = metrics.StatusError
			}
			metrics.IndexerRequestDuration.WithLabelValues(method, status).Observe(time.Since(start).Seconds())

			return err
		},
		retry.Context(ctx),
		retry.Attempts(d.opts.RetryAttempts),
		retry.Delay(d.opts.RetryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var p permanentError
			return !errors.As(err, &p)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).WithField("method", method).Debugf("retry #%d", n+1)
		}),
	)
}

func (d *das) do(ctx context.Context, body []byte, out interface{}) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.c.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close() // nolint

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return permanent(fmt.Errorf("request failed with status %d", resp.StatusCode))
	}

	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return permanent(fmt.Errorf("failed to unmarshal response: %w", err))
	}

	if r.Error != nil {
		return permanent(r.Error)
	}

	if err := json.Unmarshal(r.Result, out); err != nil {
		return permanent(fmt.Errorf("failed to unmarshal result: %w", err))
	}

	return nil
}

func toNFT(a asset) entities.NFT {
	image := a.Content.Links.Image
	if image == "" && len(a.Content.Files) > 0 {
		image = a.Content.Files[0].URI
	}

	return entities.NFT{
		ID:    a.ID,
		Name:  a.Content.Metadata.Name,
		Image: image,
	}
}
