// Package fixtures provides a local HTTP server that stands in for the public endpoints the suite
// talks to: a bearer-token echo service, a JSON resource service and a homepage with a known
// title. It records every request it receives so that tests can check what was actually sent.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gdplabs/e2e-test-harness/framework"
	"github.com/gdplabs/e2e-test-harness/framework/helpers"

	"github.com/gorilla/mux"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

const (
	listenerTimeout = 10 * time.Second

	// Requests beyond this many that nobody has awaited are logged and dropped rather than blocking
	// the handler.
	requestChannelBufferSize = 20
)

var homepageTemplate = template.Must(template.New("homepage").Parse( //nolint:gochecknoglobals
	`<!DOCTYPE html><html><head><meta charset="utf-8"><title>{{.}}</title></head><body><h1>{{.}}</h1></body></html>`))

// RecordedRequest describes a request received by the Server.
type RecordedRequest struct {
	Method  string
	URL     url.URL
	Headers http.Header
}

// Server serves the fixture endpoints. Create it with NewServer, then either call Start to listen
// on a port or use it directly as an http.Handler.
type Server struct {
	data       Data
	router     *mux.Router
	requests   chan RecordedRequest
	logger     framework.Logger
	httpServer *http.Server
	baseURL    string
}

// NewServer creates a Server for the given data. It does not start listening.
func NewServer(data Data, logger framework.Logger) *Server {
	if logger == nil {
		logger = framework.NullLogger()
	}
	s := &Server{
		data:     data,
		requests: make(chan RecordedRequest, requestChannelBufferSize),
		logger:   logger,
	}
	router := mux.NewRouter()
	router.HandleFunc("/bearer", s.serveBearer).Methods("GET")
	router.HandleFunc("/todos/{id:[0-9]+}", s.serveTodo).Methods("GET")
	router.HandleFunc("/", s.serveHomepage).Methods("GET")
	router.NotFoundHandler = http.HandlerFunc(s.serveNotFound)
	s.router = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead && r.URL.Path == "/" {
		w.WriteHeader(http.StatusOK) // used to detect that our own listener is active
		return
	}
	incoming := RecordedRequest{Method: r.Method, URL: *r.URL, Headers: r.Header.Clone()}
	if !helpers.NonBlockingSend(s.requests, incoming) {
		s.logger.Printf("Request channel was full, not recording %s %s", r.Method, r.URL.Path)
	}
	s.router.ServeHTTP(w, r)
}

// Start listens on the given port on the loopback interface, or on any free port if port is zero,
// and returns once the listener is known to be accepting requests.
func (s *Server) Start(port int) error {
	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("fixture server could not listen on port %d: %w", port, err)
	}
	s.baseURL = "http://" + listener.Addr().String()
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Printf("Fixture server stopped unexpectedly: %s", err)
		}
	}()
	if err := awaitListener(s.baseURL); err != nil {
		_ = s.httpServer.Close()
		return err
	}
	s.logger.Printf("Fixture server listening at %s", s.baseURL)
	return nil
}

func awaitListener(baseURL string) error {
	deadline := time.NewTimer(listenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	client := http.Client{Timeout: time.Second}
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect fixture listener at %s", baseURL)
		case <-ticker.C:
			resp, err := client.Head(baseURL + "/")
			if err == nil {
				_ = resp.Body.Close()
				return nil
			}
		}
	}
}

// BaseURL returns the root URL of the running server, with no trailing slash.
func (s *Server) BaseURL() string {
	return s.baseURL
}

// Close stops the listener if Start was called.
func (s *Server) Close() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// RequireRequest waits for the next request that the server received. A timeout fails and
// terminates the test.
func (s *Server) RequireRequest(t helpers.TestContext, timeout time.Duration) RecordedRequest {
	t.Helper()
	return helpers.RequireValue(t, s.requests, timeout)
}

// DiscardRequests drops any requests that have been recorded but not yet awaited.
func (s *Server) DiscardRequests() {
	for {
		select {
		case <-s.requests:
		default:
			return
		}
	}
}

// serveBearer imitates an auth echo service: 401 without a bearer token, otherwise a JSON object
// confirming the token.
func (s *Server) serveBearer(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		s.logger.Printf("Rejecting %s with no bearer token", r.URL.Path)
		w.Header().Set("WWW-Authenticate", "Bearer")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	body := ldvalue.ObjectBuild().
		Set("authenticated", ldvalue.Bool(true)).
		Set("token", ldvalue.String(auth[len(prefix):])).
		Build()
	writeJSON(w, http.StatusOK, []byte(body.JSONString()))
}

func (s *Server) serveTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, []byte("{}"))
		return
	}
	todo, ok := s.data.Todo(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, []byte("{}"))
		return
	}
	data, _ := json.Marshal(todo)
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) serveHomepage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = homepageTemplate.Execute(w, s.data.PageTitle)
}

func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	s.logger.Printf("Fixture server received %s request for unrecognized path %s", r.Method, r.URL.Path)
	writeJSON(w, http.StatusNotFound, []byte("{}"))
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
