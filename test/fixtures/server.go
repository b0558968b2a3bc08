package fixtures

import (
	"bytes"
	"net"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// Request is a recorded inbound request.
type Request struct {
	Method        string
	Path          string
	Query         string
	ContentType   string
	UserAgent     string
	Authorization string
	Body          []byte
}

// Server is a fiber app listening on a loopback port for the lifetime of a test.
type Server struct {
	URL string

	app      *fiber.App
	mu       sync.Mutex
	requests []Request
}

// NewServer starts a fiber app, lets register add routes and shuts it down on test cleanup.
func NewServer(t testing.TB, register func(app *fiber.App)) *Server {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := &Server{
		URL: "http://" + ln.Addr().String(),
		// Immutable: recorded strings must outlive the handler.
		app: fiber.New(fiber.Config{DisableStartupMessage: true, Immutable: true}),
	}
	s.app.Use(func(c *fiber.Ctx) error {
		s.record(c)
		return c.Next()
	})
	register(s.app)

	go func() { _ = s.app.Listener(ln) }()
	t.Cleanup(func() { _ = s.app.Shutdown() })

	return s
}

func (s *Server) record(c *fiber.Ctx) {
	r := Request{
		Method:        c.Method(),
		Path:          c.Path(),
		Query:         string(c.Request().URI().QueryString()),
		ContentType:   c.Get(fiber.HeaderContentType),
		UserAgent:     c.Get(fiber.HeaderUserAgent),
		Authorization: c.Get(fiber.HeaderAuthorization),
		Body:          bytes.Clone(c.Body()),
	}
	s.mu.Lock()
	s.requests = append(s.requests, r)
	s.mu.Unlock()
}

// Requests returns a copy of every recorded request in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Hits counts recorded requests for path.
func (s *Server) Hits(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

// Paths returns the recorded request paths in arrival order.
func (s *Server) Paths() []string {
	reqs := s.Requests()
	paths := make([]string, 0, len(reqs))
	for _, r := range reqs {
		paths = append(paths, r.Path)
	}
	return paths
}
