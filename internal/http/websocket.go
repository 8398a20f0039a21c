package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/factsuniv/Pk4/internal/domain/model"
	"github.com/factsuniv/Pk4/internal/service"
)

// StreamHandlers pushes live job snapshots over websockets. Dashboards and
// the two client apps hold one socket each instead of polling.
type StreamHandlers struct {
	Match  *service.MatchService
	Logger *slog.Logger
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is same-host with the demo clients; origin enforcement would
	// belong to a gateway in front of this service.
	CheckOrigin: func(*http.Request) bool { return true },
}

// jobsMessage is the envelope for board and parker feed frames.
type jobsMessage struct {
	Type string      `json:"type"`
	Jobs []model.Job `json:"jobs"`
}

// customerMessage is the envelope for customer feed frames. Job is null while
// the customer has no live job.
type customerMessage struct {
	Type string     `json:"type"`
	Job  *model.Job `json:"job"`
}

// Jobs streams snapshots for one of the three views, selected by query
// parameter: ?parkerId= for a Parker's feed, ?customerId= for a customer's
// current job, neither for the full board. The first frame arrives
// immediately; subsequent frames follow every change to the job collection.
func (h *StreamHandlers) Jobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	parkerID := q.Get("parkerId")
	customerID := q.Get("customerId")

	// Subscribe before upgrading so a snapshot failure is still a plain
	// HTTP error the client can read.
	var (
		unsub    func()
		jobsFeed <-chan []model.Job
		custFeed <-chan *model.Job
		feedType string
		err      error
	)
	switch {
	case parkerID != "":
		unsub, jobsFeed, err = h.Match.SubscribeParker(r.Context(), parkerID)
		feedType = "parkerJobs"
	case customerID != "":
		unsub, custFeed, err = h.Match.SubscribeCustomer(r.Context(), customerID)
		feedType = "customerJob"
	default:
		unsub, jobsFeed, err = h.Match.SubscribeBoard(r.Context())
		feedType = "jobs"
	}
	if err != nil {
		WriteAppError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		unsub()
		if h.Logger != nil {
			h.Logger.Warn("websocket upgrade failed", "error", err)
		}
		return
	}

	done := make(chan struct{})
	go func() {
		// Discard inbound frames; the read loop exists to notice disconnects.
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		unsub()
		conn.Close()
	}()

	if custFeed != nil {
		h.pumpCustomer(conn, custFeed, done)
		return
	}
	h.pumpJobs(conn, jobsFeed, feedType, done)
}

func (h *StreamHandlers) pumpJobs(conn *websocket.Conn, feed <-chan []model.Job, feedType string, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case snapshot, ok := <-feed:
			if !ok {
				return
			}
			if snapshot == nil {
				snapshot = []model.Job{}
			}
			if err := conn.WriteJSON(jobsMessage{Type: feedType, Jobs: snapshot}); err != nil {
				h.logWriteError(err)
				return
			}
		}
	}
}

func (h *StreamHandlers) pumpCustomer(conn *websocket.Conn, feed <-chan *model.Job, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case snapshot, ok := <-feed:
			if !ok {
				return
			}
			if err := conn.WriteJSON(customerMessage{Type: "customerJob", Job: snapshot}); err != nil {
				h.logWriteError(err)
				return
			}
		}
	}
}

func (h *StreamHandlers) logWriteError(err error) {
	if h.Logger != nil {
		h.Logger.Debug("websocket write failed", "error", err)
	}
}
