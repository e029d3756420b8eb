package mockapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Alp4ka/todopager"
	"github.com/Alp4ka/todopager/todos"
)

// Server serves the todos routes:
//
//	GET    /todos       ?completed=&sortBy=&order=&page=&limit=
//	POST   /todos
//	GET    /todos/{id}
//	PUT    /todos/{id}
//	DELETE /todos/{id}
type Server struct {
	store      Store
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
	totalCount bool

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithoutTotalCount stops paged listings from sending X-Total-Count, like
// the hosted API.
func WithoutTotalCount() Option {
	return func(s *Server) {
		s.totalCount = false
	}
}

// WithClock sets the time source for default created_at values.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithIDGenerator sets the id source for created tasks.
func WithIDGenerator(newID func() string) Option {
	return func(s *Server) {
		s.newID = newID
	}
}

// NewServer builds a Server over store.
func NewServer(store Store, opts ...Option) *Server {
	s := &Server{
		store:      store,
		logger:     slog.Default(),
		now:        time.Now,
		newID:      uuid.NewString,
		totalCount: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", s.listTasks)
		r.Post("/", s.createTask)
		r.Get("/{id}", s.getTask)
		r.Put("/{id}", s.replaceTask)
		r.Delete("/{id}", s.deleteTask)
	})

	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.InfoContext(r.Context(), "request",
			slog.String("id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(started)),
		)
	})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, total, err := s.store.List(r.Context(), q)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	if q.Paged() && s.totalCount {
		w.Header().Set(todos.TotalCountHeader, strconv.Itoa(total))
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var payload todos.CreatePayload

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task payload")
		return
	}

	if payload.CreatedAt == "" {
		payload.CreatedAt = todos.FormatTime(s.now())
	}

	task, err := s.store.Create(r.Context(), payload.WithID(s.newID()))
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) replaceTask(w http.ResponseWriter, r *http.Request) {
	var patch todos.Patch

	err := json.NewDecoder(r.Body).Decode(&patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task payload")
		return
	}

	patch.ID = chi.URLParam(r, "id")

	task, err := s.store.Replace(r.Context(), patch)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	s.logger.ErrorContext(r.Context(), "store failed", slog.Any("err", err))
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

// parseListQuery reads completed, sortBy, order, page and limit. Paging is
// on when either page or limit is present.
func parseListQuery(r *http.Request) (Query, error) {
	values := r.URL.Query()

	var q Query

	if raw := values.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return Query{}, errors.New("completed must be a boolean")
		}
		q.Completed = &completed
	}

	if sortBy := values.Get("sortBy"); sortBy != "" {
		orderBy, err := todopager.ParseOrdering(sortBy, values.Get("order"), todos.SortColumns)
		if err != nil {
			return Query{}, err
		}
		q.Order = &orderBy
	}

	if values.Has("page") || values.Has("limit") {
		var raw todopager.RawPageQuery
		for name, dst := range map[string]*int{"page": &raw.Page, "limit": &raw.Limit} {
			v := values.Get(name)
			if v == "" {
				continue
			}

			n, err := strconv.Atoi(v)
			if err != nil {
				return Query{}, errors.New(name + " must be an integer")
			}
			*dst = n
		}
		q.Page = raw.Decode()
	}

	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msg)
}
