// Package httputil provides small HTTP-adjacent utilities for the server.
//
// # Retry
//
// [Retry] wraps an operation with automatic retry for transient failures,
// using exponential backoff. It is used when the server connects to its
// storage backends at startup, where a briefly unavailable MongoDB or Redis
// should not abort the process.
//
// Only errors wrapped in [RetryableError] are retried:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    if err := connect(); err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    return nil
//	})
//
// Defaults: 3 attempts with 1 second initial delay, doubling each retry.
package httputil
