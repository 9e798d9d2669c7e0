package wait

import (
	"context"
	"fmt"
	"time"

	"declarative_elements/application/binding"
	"declarative_elements/domain/entities"
	"declarative_elements/domain/interfaces"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Poller retries a route at a constant interval until it succeeds or the
// timeout expires. It serves backends without a native wait.
type Poller struct {
	timeout  time.Duration
	interval time.Duration
	logger   *logrus.Logger
}

// NewPoller - creates new poller
func NewPoller(timeout, interval time.Duration, logger *logrus.Logger) *Poller {
	return &Poller{
		timeout:  timeout,
		interval: interval,
		logger:   logger,
	}
}

// Until - calls route from anchor until it returns without error. Permanent
// errors (entities.IsPermanent) stop the wait at once; any other error is
// retried and the last one is reported on timeout.
func (p *Poller) Until(ctx context.Context, route binding.HandleRoute, anchor interfaces.Anchor) (binding.Result, error) {
	waitCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var (
		result   binding.Result
		lastErr  error
		attempts int
	)
	op := func() error {
		attempts++
		res, err := route(anchor)
		if err != nil {
			if entities.IsPermanent(err) {
				return backoff.Permanent(err)
			}
			lastErr = err
			p.logger.WithError(err).WithField("attempt", attempts).Debug("Route not ready")
			return err
		}
		result = res
		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(backoff.NewConstantBackOff(p.interval), waitCtx))
	if err == nil {
		return result, nil
	}
	if entities.IsPermanent(err) {
		return binding.Result{}, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return binding.Result{}, ctxErr
	}
	if lastErr != nil {
		return binding.Result{}, fmt.Errorf("wait timed out after %d attempts: %w", attempts, lastErr)
	}
	return binding.Result{}, fmt.Errorf("wait failed: %w", err)
}
