package api

import (
	"hash/fnv"
	"net/http"
	"regexp"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/skillsphere/learner-store/internal/storage"
)

var learnerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// learnerMiddleware validates the {learnerID} path parameter and stores it in the request context
func (s *Server) learnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "learnerID")
		if !learnerIDPattern.MatchString(id) {
			respondError(w, http.StatusBadRequest, "invalid_learner_id",
				"learner id must be 1-64 letters, digits, '-' or '_'")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithLearner(r.Context(), id)))
	})
}

// serializeLearner runs one request per learner at a time so that
// read-modify-write sequences on the learner's keys do not interleave.
func (s *Server) serializeLearner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unlock := s.locks.lock(LearnerFromContext(r.Context()))
		defer unlock()

		next.ServeHTTP(w, r)
	})
}

// learnerBackend returns the backend namespaced to the request's learner
func (s *Server) learnerBackend(r *http.Request) storage.Backend {
	return storage.WithPrefix(s.driver, "learner:"+LearnerFromContext(r.Context())+":")
}

const lockStripes = 64

// lockSet is a fixed set of mutexes striped by learner ID
type lockSet struct {
	stripes [lockStripes]sync.Mutex
}

func newLockSet() *lockSet {
	return &lockSet{}
}

func (l *lockSet) lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	mu := &l.stripes[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
