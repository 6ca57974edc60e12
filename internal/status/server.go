// Package status serves the operational HTTP surface: a JSON snapshot of the
// engine link on / and Prometheus metrics on /metrics.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Data is the snapshot model for the status endpoint.
type Data struct {
	RunID      string `json:"run_id"`
	ServerTime string `json:"server_time"`

	SimID   uint32 `json:"sim_id"`
	SimName string `json:"sim_name"`

	ReliableState    string `json:"reliable_state"`
	ReliablePending  int    `json:"reliable_pending"`
	MessagesSent     uint64 `json:"messages_sent"`
	EventsDispatched uint64 `json:"events_dispatched"`
	MessagesDropped  uint64 `json:"messages_dropped"`
	LiveShapes       int    `json:"live_shapes"`
}

type Server struct {
	srv *http.Server
}

func Start(ctx context.Context, addr string, provider func() Data) (*Server, error) {
	if addr == "" {
		return nil, fmt.Errorf("status addr is empty")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		var data Data
		if provider != nil {
			data = provider()
		}
		data.ServerTime = time.Now().UTC().Format(time.RFC3339)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(data)
	})

	s := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ss := &Server{srv: s}
	go func() {
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	}()

	go func() { _ = s.ListenAndServe() }()
	return ss, nil
}
