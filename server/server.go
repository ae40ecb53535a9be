package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/bitrise-io/genai-prompt-form/llm"
	"github.com/bitrise-io/genai-prompt-form/logger"
	"github.com/bitrise-io/genai-prompt-form/model"
	"github.com/google/uuid"
)

const shutdownTimeout = 5 * time.Second

// Invoker produces the response text for a prompt. It must not fail.
type Invoker interface {
	Invoke(ctx context.Context, req model.PromptRequest) string
}

type Server struct {
	invoker Invoker
	debug   bool
}

func New(invoker Invoker) *Server {
	return &Server{invoker: invoker}
}

// WithDebug makes the server log every handled request at info level
func (s *Server) WithDebug(debug bool) *Server {
	s.debug = debug
	return s
}

// Handler returns the routes served by the prompt form
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleForm)
	return s.withRequestID(mux)
}

// Run listens on addr and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	logger.Infof("Server listening on http://%s", ln.Addr())
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var params url.Values

	switch r.Method {
	case http.MethodGet:
		params = r.URL.Query()
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			logger.Warnf("Failed to parse form: %v", err)
		}
		params = r.PostForm
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	prompt := params.Get("prompt")
	rawProvider := params.Get("provider")

	var provider string
	if params.Has("provider") {
		provider = llm.ResolveSubmittedProvider(rawProvider)
	} else {
		provider = llm.ResolveProvider(rawProvider)
	}

	var response string
	if r.Method == http.MethodPost {
		logger.Infow(fmt.Sprintf("Prompt received: %s | Provider: %s", prompt, rawProvider),
			"request_id", requestID(r.Context()))
		response = s.invoker.Invoke(r.Context(), model.PromptRequest{
			Prompt:   prompt,
			Provider: provider,
		})
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, newFormView(prompt, provider, response)); err != nil {
		logger.Errorf("Failed to render form: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type requestIDKey struct{}

// withRequestID tags every request with a UUID, echoes it in X-Request-ID and
// logs the request, at info level in debug mode and at debug level otherwise
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		logf := logger.Debugf
		if s.debug {
			logf = logger.Infof
		}
		logf("%s %s handled in %s (request_id=%s)", r.Method, r.URL.Path, time.Since(start), id)
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
