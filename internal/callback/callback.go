// Package callback runs a short-lived localhost HTTP listener that receives
// the browser redirect at the end of the external identity-verification
// flow. The listener serves a single return route guarded by a state nonce
// and reports the outcome on a channel, then shuts down.
package callback

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mcmarket/mcmarket-client/internal/config"
	"github.com/mcmarket/mcmarket-client/internal/logger"
)

const returnPath = "/verification/return"

// Result is the outcome reported by the external verification flow when it
// redirects the browser back to the listener.
type Result struct {
	// OK is false when the flow reports a failed or abandoned session.
	OK bool

	// Reason carries the failure status string, empty on success.
	Reason string
}

//go:generate mockgen -source=callback.go -destination=../mock/callback_mock.go -package=mock

// Listener accepts a single verification return redirect.
type Listener interface {
	// Listen binds the configured local address and returns the return URL
	// to hand to the remote API, plus a channel that delivers the outcome
	// of the first redirect carrying the expected state nonce. The
	// listener stops itself after delivering a result; Stop releases it
	// early.
	Listen(ctx context.Context, state string) (returnURL string, done <-chan Result, err error)

	// Stop shuts the listener down. Safe to call when not listening.
	Stop()
}

type httpListener struct {
	cfg    config.Callback
	logger *logger.Logger

	mu     sync.Mutex
	server *http.Server
	done   chan Result
	once   *sync.Once
}

func NewListener(cfg config.Callback, log *logger.Logger) Listener {
	return &httpListener{cfg: cfg, logger: log}
}

func (l *httpListener) Listen(ctx context.Context, state string) (string, <-chan Result, error) {
	if state == "" {
		return "", nil, errors.New("empty state nonce")
	}

	l.Stop()

	lis, err := net.Listen("tcp", l.cfg.Address)
	if err != nil {
		return "", nil, err
	}

	l.mu.Lock()
	l.done = make(chan Result, 1)
	l.once = new(sync.Once)
	l.server = &http.Server{Handler: l.routes(state)}
	server := l.server
	l.mu.Unlock()

	go func() {
		if serveErr := server.Serve(lis); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			l.logger.Err(serveErr).Msg("verification callback listener stopped unexpectedly")
		}
	}()

	returnURL := url.URL{
		Scheme:   "http",
		Host:     lis.Addr().String(),
		Path:     returnPath,
		RawQuery: url.Values{"state": {state}}.Encode(),
	}

	l.logger.Debug().Str("return_url", returnURL.String()).Msg("verification callback listener started")

	return returnURL.String(), l.done, nil
}

func (l *httpListener) routes(state string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(l.withTraceID)
	router.Use(l.withLogging)

	router.Get(returnPath, l.handleReturn(state))

	return router
}

func (l *httpListener) handleReturn(state string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if got := r.URL.Query().Get("state"); got != state {
			log.Warn().Msg("verification return with wrong state nonce")
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}

		status := r.URL.Query().Get("status")
		result := Result{OK: status != "failed" && status != "abandoned", Reason: ""}
		if !result.OK {
			result.Reason = status
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if result.OK {
			_, _ = w.Write([]byte("Verification submitted. You can close this tab and return to the terminal."))
		} else {
			_, _ = w.Write([]byte("Verification was not completed. You can close this tab and try again from the terminal."))
		}

		l.deliver(result)
	}
}

// deliver reports the result exactly once and schedules shutdown off the
// handler goroutine so the response gets flushed first.
func (l *httpListener) deliver(result Result) {
	l.mu.Lock()
	once := l.once
	done := l.done
	l.mu.Unlock()

	if once == nil {
		return
	}

	once.Do(func() {
		done <- result
		go func() {
			time.Sleep(100 * time.Millisecond)
			l.Stop()
		}()
	})
}

func (l *httpListener) Stop() {
	l.mu.Lock()
	server := l.server
	l.server = nil
	l.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		l.logger.Err(err).Msg("verification callback listener shutdown")
	}
}
