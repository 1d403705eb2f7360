package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/hybel/portfolio/internal/store"
	"github.com/hybel/portfolio/internal/types"
)

// StreamHandler pushes a fresh view-model snapshot over WebSocket whenever
// the store changes, plus one initial snapshot on connect.
type StreamHandler struct {
	store *store.Store
}

// NewStreamHandler creates a StreamHandler.
func NewStreamHandler(st *store.Store) *StreamHandler {
	return &StreamHandler{store: st}
}

// streamMessage is the wire envelope for pushed snapshots.
type streamMessage struct {
	Type string                   `json:"type"` // "snapshot"
	Data types.PortfolioViewModel `json:"data"`
}

// ServeHTTP upgrades to WebSocket and runs the push loop.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("stream: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	updates := make(chan types.PortfolioViewModel, 1)

	// Each connection subscribes under a unique name and unsubscribes when
	// the push loop returns.
	subID := "stream-" + uuid.NewString()
	h.store.Subscribe(subID, func(vm types.PortfolioViewModel) {
		queueLatest(updates, vm)
	})
	defer h.store.Unsubscribe(subID)

	if err := h.send(ctx, conn, h.store.ViewModel()); err != nil {
		return
	}

	for {
		select {
		case vm := <-updates:
			if err := h.send(ctx, conn, vm); err != nil {
				return
			}
		case <-ctx.Done():
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}
	}
}

// queueLatest replaces whatever is pending in the single-slot buffer with
// the newest snapshot, so a slow client always catches up to current state
// even when no further write arrives.
func queueLatest(updates chan types.PortfolioViewModel, vm types.PortfolioViewModel) {
	for {
		select {
		case updates <- vm:
			return
		default:
			select {
			case <-updates:
			default:
			}
		}
	}
}

func (h *StreamHandler) send(ctx context.Context, conn *websocket.Conn, vm types.PortfolioViewModel) error {
	err := wsjson.Write(ctx, conn, streamMessage{Type: "snapshot", Data: vm})
	if err != nil && websocket.CloseStatus(err) == -1 {
		log.Printf("stream: write: %v", err)
	}
	return err
}
