package http

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

// Server represents an http server which exposes the injected services over
// http.
//
// It is used to provide an abstraction from the net/http package when running
// the http server.
type Server struct {
	server   *http.Server
	router   *chi.Mux
	upgrader *websocket.Upgrader

	// The URL address of the server.
	Addr string
	// The URL address of the frontend server, the only origin allowed
	// through CORS.
	FrontendURL string

	// Services exposed via http.
	InstructorService contoso.InstructorService
	CourseService     contoso.CourseService
	StudentService    contoso.StudentService
	DepartmentService contoso.DepartmentService
	AssignmentService contoso.AssignmentService
	ViewService       contoso.ViewService
	EventBus          contoso.EventBus

	closed atomic.Bool
}

// NewServer creates a new server instance.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{},
		router: chi.NewRouter(),
		upgrader: &websocket.Upgrader{
			HandshakeTimeout: 3 * time.Second,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
	}

	// common middleware.
	s.router.Use(chimw.Logger)
	s.router.Use(cors.Handler(
		cors.Options{
			// FrontendURL is populated after construction, resolve
			// it per request.
			AllowOriginFunc: func(r *http.Request, origin string) bool {
				return s.FrontendURL == "" || origin == s.FrontendURL
			},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		},
	))

	// routes for the instructor master/detail view, instructor CRUD and
	// assignment reconciliation.
	s.router.Route("/instructors", func(r chi.Router) {
		s.registerInstructorRoutes(r)
	})
	// routes for the course catalog.
	s.router.Route("/courses", func(r chi.Router) {
		s.registerCourseRoutes(r)
	})
	// routes for student CRUD and search.
	s.router.Route("/students", func(r chi.Router) {
		s.registerStudentRoutes(r)
	})
	// routes for department CRUD.
	s.router.Route("/departments", func(r chi.Router) {
		s.registerDepartmentRoutes(r)
	})
	// websocket change feed.
	s.router.Get("/events", s.handleEvents)

	s.server.Handler = s.router
	return s
}

// ServeHTTP dispatches directly into the router, it lets the server be
// mounted as a handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Listen starts listening on the configured address using the
// (*http.Server).Serve() method.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}

	return s.server.Serve(ln)
}

// Close gracefully closes the http server and closes the event bus.
//
// no-op if already closed.
func (s *Server) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTime)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}

		// close the event bus since the server is the only publisher.
		return s.EventBus.Close()
	}
	return nil
}

// publish pushes a change event on the bus with the send time attached.
func (s *Server) publish(eventType string, id int, payload interface{}) {
	s.EventBus.Publish(contoso.Event{
		Type:    eventType,
		ID:      id,
		Payload: payload,
		At:      time.Now(),
	})
}
