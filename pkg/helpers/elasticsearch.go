package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESOptions configures the search cluster client.
type ESOptions struct {
	Addresses  []string
	Username   string
	Password   string
	MaxRetries int
	// RequestTimeout caps how long a search may wait for response headers.
	RequestTimeout time.Duration
}

// NewESClient creates an Elasticsearch client that retries transient
// gateway errors and gives up quickly so callers can fall back.
func NewESClient(opts ESOptions) (*elasticsearch.Client, error) {
	if len(opts.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch: no addresses configured")
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = 2
	}
	cfg := elasticsearch.Config{
		Addresses:     opts.Addresses,
		Username:      opts.Username,
		Password:      opts.Password,
		MaxRetries:    retries,
		RetryOnStatus: []int{502, 503, 504},
		RetryBackoff:  func(attempt int) time.Duration { return time.Duration(attempt) * 100 * time.Millisecond },
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// PingES reports whether the cluster answers a ping.
func PingES(ctx context.Context, es *elasticsearch.Client) error {
	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}
