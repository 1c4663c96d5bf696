package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
)

// CallbackResult carries the outcome of one authorization redirect: the code,
// or the reason none was obtained. Ephemeral, consumed exactly once.
type CallbackResult struct {
	Code string
	err  error
}

func (r CallbackResult) Err() error {
	return r.err
}

// CallbackHandler receives the provider's redirect carrying the authorization
// code. Implements the [Handler] interface for registration with a [Router].
//
// Exactly one result is produced: the first request with a code or error
// parameter decides the flow. Probes without either (favicon and the like) are
// logged and the wait continues.
type CallbackHandler struct {
	state      string
	logger     *log.Logger
	resultChan chan CallbackResult
	once       sync.Once
	done       bool
	mu         sync.Mutex
}

// NewCallbackHandler creates a callback handler bound to the given anti-CSRF
// state token.
func NewCallbackHandler(state string, logger *log.Logger) *CallbackHandler {
	return &CallbackHandler{
		state:      state,
		logger:     logger,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the authorization redirect.
//
// Validates the state parameter, extracts the code, and sends the result
// through the result channel.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	errParam := query.Get("error")

	if code == "" && errParam == "" {
		// Not the redirect we are waiting for; keep listening.
		h.logger.Warn("ignoring request without code", "path", r.URL.Path, "query", r.URL.RawQuery)
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.done = true
	h.mu.Unlock()

	if errParam != "" {
		errDesc := query.Get("error_description")
		h.send(CallbackResult{err: fmt.Errorf("authorization failed: %s - %s", errParam, errDesc)})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	if state := query.Get("state"); state != h.state {
		h.send(CallbackResult{err: fmt.Errorf("invalid state parameter")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	h.send(CallbackResult{Code: code})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, confirmationPage)
}

// send sends the callback result through the channel (only once).
func (h *CallbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

const confirmationPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Autenticación exitosa</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ ¡Autenticación exitosa!</h1>
        <p>Puedes cerrar esta ventana y volver a la terminal.</p>
    </div>
</body>
</html>
`
