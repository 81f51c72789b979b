package dash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/you/skin-arb/internal/connectors/pricelist"
	imetrics "github.com/you/skin-arb/internal/metrics"
	"go.uber.org/zap"
)

const proxyCacheControl = "s-maxage=300, stale-while-revalidate"

type Server struct {
	store *Store
	src   pricelist.Source
	hub   *Hub
	log   *zap.Logger
}

func NewServer(store *Store, src pricelist.Source, hub *Hub, log *zap.Logger) *Server {
	return &Server{store: store, src: src, hub: hub, log: log}
}

// Handler routes every dashboard endpoint behind the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, feed := range pricelist.Feeds {
		mux.HandleFunc("/api/prices/"+string(feed)+".json", s.handlePriceList(feed))
	}
	mux.HandleFunc("/api/opportunities", s.handleOpportunities)
	mux.HandleFunc("/api/opportunities/item", s.handleOpportunity)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.Handle("/ws", s.hub)
	mux.Handle("/metrics", imetrics.Handler(nil))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexHTML)
	})
	return withCORS(mux)
}

// StartHTTP serves the dashboard on addr until ctx is done.
func (s *Server) StartHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("dash listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handlePriceList(feed pricelist.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := s.src.Fetch(r.Context(), feed)
		if err != nil {
			s.log.Error("proxy: fetch failed", zap.String("feed", string(feed)), zap.Error(err))
			imetrics.ProxyRequests.WithLabelValues(string(feed), strconv.Itoa(http.StatusInternalServerError)).Inc()
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to fetch data", Message: err.Error()})
			return
		}
		imetrics.ProxyRequests.WithLabelValues(string(feed), strconv.Itoa(http.StatusOK)).Inc()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", proxyCacheControl)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid query", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.Query(q))
}

func (s *Server) handleOpportunity(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid query", Message: "name is required"})
		return
	}
	o, ok := s.store.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found", Message: name})
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Summary())
}
