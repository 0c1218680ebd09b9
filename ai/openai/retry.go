// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Quota-aware retry policy for the remote embedding service.
// Backoff starts at 2s and doubles, capped at 60s per attempt, with a 600s
// ceiling on total elapsed time. Only quota, availability and deadline
// failures are retried; anything else is terminal.
const (
	initialBackoff = 2 * time.Second
	maxBackoff     = 60 * time.Second
	maxElapsed     = 600 * time.Second
)

// retryTransient runs operation, retrying transient remote failures with
// exponential backoff. Returns the last error once the retry budget is
// exhausted, or immediately for terminal errors.
func retryTransient(ctx context.Context, logger *slog.Logger, operation func() error) error {
	start := time.Now()
	delay := initialBackoff

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := operation()
		if err == nil {
			if attempt > 1 {
				logger.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		if !isTransient(err) {
			return err
		}

		if time.Since(start)+delay > maxElapsed {
			return fmt.Errorf("retry budget exhausted after %d attempts: %w", attempt, err)
		}

		logger.Warn("transient remote failure, backing off",
			"attempt", attempt, "delay", delay, "err", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > maxBackoff {
			delay = maxBackoff
		}
	}
}

// isTransient reports whether the error belongs to one of the retryable
// classes: resource exhaustion, service unavailability, or deadlines.
// Remote providers surface these inconsistently, so classification falls
// back to message matching.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	markers := []string{
		"resource exhausted",
		"resource_exhausted",
		"rate limit",
		"quota",
		"too many requests",
		"429",
		"service unavailable",
		"unavailable",
		"503",
		"deadline exceeded",
		"timeout",
		"timed out",
	}
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
