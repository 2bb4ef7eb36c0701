// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package locate

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultTimeout bounds a remote candidate fetch when the caller does not
// supply one. Resolution happens at CLI startup; a hung fetch must not hang
// the command.
const DefaultTimeout = 10 * time.Second

// Fetch retrieves a single remote candidate. Every failure mode (dial
// error, timeout, non-2xx status) is recoverable by contract: callers log
// the error and fall through to NotFound, they never abort the process.
func Fetch(ctx context.Context, url string, timeout time.Duration, sink log.Interface) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 250 * time.Millisecond
	client.RetryWaitMax = 1 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = nil // diagnostics go through the sink below

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	sink.Debugf("fetched remote candidate: url=%s bytes=%d", url, doc.Len())
	return doc.Bytes(), nil
}
