// cmd/api/middleware.go
// This file contains HTTP middleware used to wrap the router.
// Middleware functions intercept every request before it reaches a handler.
package main

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// recoverPanic catches any runtime panic that occurs in a downstream handler
// and answers with a 500 "error" envelope instead of dropping the connection.
func (app *applicationDependencies) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				// Tell the HTTP server to close the connection after this response.
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// clientLimiters hands out one token bucket per client IP. Buckets not
// touched for staleAfter are dropped by evict.
type clientLimiters struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rps        rate.Limit
	burst      int
	staleAfter time.Duration
	now        func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	return &clientLimiters{
		buckets:    make(map[string]*bucket),
		rps:        rate.Limit(rps),
		burst:      burst,
		staleAfter: 3 * time.Minute,
		now:        time.Now,
	}
}

// allow consumes one token from ip's bucket, creating the bucket on first use.
func (cl *clientLimiters) allow(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	b, found := cl.buckets[ip]
	if !found {
		b = &bucket{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.buckets[ip] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// evict drops buckets whose client has been quiet for longer than staleAfter.
func (cl *clientLimiters) evict() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	for ip, b := range cl.buckets {
		if now.Sub(b.lastSeen) > cl.staleAfter {
			delete(cl.buckets, ip)
		}
	}
}

func (cl *clientLimiters) size() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	return len(cl.buckets)
}

// rateLimit throttles each client IP with its own token bucket sized from
// app.config.limiter. It is a no-op unless the limiter is enabled.
func (app *applicationDependencies) rateLimit(next http.Handler) http.Handler {
	if !app.config.limiter.enabled {
		return next
	}

	limiters := newClientLimiters(app.config.limiter.rps, app.config.limiter.burst)

	go func() {
		for {
			time.Sleep(time.Minute)
			limiters.evict()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		if !limiters.allow(ip) {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
