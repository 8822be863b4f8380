package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const DefaultRetryInterval = 60 * time.Second

// RetryPolicy controls the wait-and-resend loop on 429 responses. The wait is a
// fixed Interval with no backoff or jitter. A zero MaxAttempts and zero
// MaxElapsed leave the loop unbounded: it only stops on a non-429 response or
// when the context is done.
type RetryPolicy struct {
	Interval    time.Duration
	MaxAttempts int
	MaxElapsed  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Interval:    DefaultRetryInterval,
		MaxAttempts: 0,
		MaxElapsed:  0,
	}
}

func (p RetryPolicy) interval() time.Duration {
	if p.Interval <= 0 {
		return DefaultRetryInterval
	}

	return p.Interval
}

// exhausted reports whether another wait is allowed after attempt sends
// and elapsed time already spent.
func (p RetryPolicy) exhausted(attempt int, elapsed time.Duration) bool {
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		return true
	}

	if p.MaxElapsed > 0 && elapsed+p.interval() > p.MaxElapsed {
		return true
	}

	return false
}

func (c *Client) sendWithRetry(
	ctx context.Context,
	out *Outgoing,
	cfg *requestConfig,
) (Response, error) {
	if cfg.retry == nil {
		return c.send(ctx, out, cfg.timeout)
	}

	policy := *cfg.retry
	start := c.clock.Now()

	for attempt := 1; ; attempt++ {
		resp, err := c.send(ctx, out, cfg.timeout)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode() != http.StatusTooManyRequests {
			return resp, nil
		}

		if policy.exhausted(attempt, c.clock.Since(start)) {
			c.logger.Warn().
				Str("method", out.Method).
				Str("url", out.URL).
				Int("attempts", attempt).
				Msg("Rate limit retries exhausted")

			return resp, nil
		}

		wait := policy.interval()

		c.logger.Warn().
			Str("method", out.Method).
			Str("url", out.URL).
			Str("request_id", cfg.requestID).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("Too many requests, waiting before trying again")

		timer := c.clock.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, fmt.Errorf("%w: %w", ErrRetryCancelled, ctx.Err())
		case <-timer.C():
		}
	}
}

func (c *Client) send(ctx context.Context, out *Outgoing, timeout time.Duration) (Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRateLimitWait, err)
		}
	}

	resp, err := c.transport.Send(ctx, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	return resp, nil
}
