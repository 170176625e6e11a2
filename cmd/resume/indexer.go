package main

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/resume/internal/indexer"
)

type IndexerOpts struct {
	IndexerEndpoint      string        `long:"indexer.endpoint" env:"INDEXER_ENDPOINT" description:"DAS-compatible solana rpc endpoint, nfts routes are disabled when empty"`
	IndexerRateLimit     float64       `long:"indexer.rate-limit" env:"INDEXER_RATE_LIMIT" default:"10" description:"indexer requests per second, 0 means unlimited"`
	IndexerBurst         int           `long:"indexer.burst" env:"INDEXER_BURST" default:"10" description:"indexer requests burst"`
	IndexerRetryAttempts uint          `long:"indexer.retry-attempts" env:"INDEXER_RETRY_ATTEMPTS" default:"3" description:"indexer request attempts"`
	IndexerRetryDelay    time.Duration `long:"indexer.retry-delay" env:"INDEXER_RETRY_DELAY" default:"200ms" description:"delay between indexer request attempts"`
	IndexerTimeout       time.Duration `long:"indexer.timeout" env:"INDEXER_TIMEOUT" default:"10s" description:"indexer request timeout"`
	IndexerCacheSize     int           `long:"indexer.cache-size" env:"INDEXER_CACHE_SIZE" default:"10000" description:"amount of owners kept in nfts cache"`
	IndexerCacheTTL      time.Duration `long:"indexer.cache-ttl" env:"INDEXER_CACHE_TTL" default:"1m" description:"nfts cache ttl"`
}

func mustGetIndexer() indexer.Indexer {
	if opts.IndexerEndpoint == "" {
		logrus.Warn("empty indexer endpoint, skip indexer initialization")
		return nil
	}

	ix, err := indexer.New(opts.IndexerEndpoint, &http.Client{Timeout: opts.IndexerTimeout}, indexer.Options{
		RateLimit:     opts.IndexerRateLimit,
		Burst:         opts.IndexerBurst,
		RetryAttempts: opts.IndexerRetryAttempts,
		RetryDelay:    opts.IndexerRetryDelay,
		CacheSize:     opts.IndexerCacheSize,
		CacheTTL:      opts.IndexerCacheTTL,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create indexer")
	}

	return ix
}
