package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/service"
	ws "github.com/macuoit/articulation-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams job progress over WebSocket.
type WSHandler struct {
	transcriptService *service.TranscriptService
	log               zerolog.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(transcriptService *service.TranscriptService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		transcriptService: transcriptService,
		log:               log.With().Str("component", "ws_handler").Logger(),
		upgrader:          buildUpgrader(allowedOrigins),
	}
}

// JobStream godoc
// WS /ws/v1/transcripts/:job_id/stream
// Upgrades to WebSocket and forwards the job's stage transitions until it
// reaches a terminal state or the client disconnects.
func (h *WSHandler) JobStream(c *gin.Context) {
	jobID := c.Param("job_id")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	state, err := h.transcriptService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("job_id", jobID).Logger()
	wsLog.Info().Msg("Subscriber connected")

	// Subscribe before reporting the current state so no transition can
	// slip between the snapshot and the stream.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := h.transcriptService.Subscribe(ctx, jobID)
	defer sub.Close()

	if h.sendState(conn, state) {
		return
	}

	// Reader loop only serves pings and close detection.
	go func() {
		defer cancel()
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				return
			}
			if msg.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
				continue
			}
			_ = ws.WriteError(conn, "unknown action")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			wsLog.Debug().Msg("Subscriber disconnected")
			return
		case raw, ok := <-sub.Channel():
			if !ok {
				return
			}
			var event service.ProgressEvent
			if err := json.Unmarshal([]byte(raw.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed progress event")
				continue
			}
			if h.forward(conn, &event) {
				wsLog.Info().Str("status", string(event.Status)).Msg("Stream finished")
				return
			}
		}
	}
}

// sendState reports the job's snapshot state. Returns true when the job is
// already terminal and the stream should end.
func (h *WSHandler) sendState(conn *websocket.Conn, state *model.JobState) bool {
	return h.forward(conn, &service.ProgressEvent{
		JobID:  state.ID,
		Status: state.Status,
		Detail: state.Error,
	})
}

// forward writes one event to the client. Returns true for terminal states.
func (h *WSHandler) forward(conn *websocket.Conn, event *service.ProgressEvent) bool {
	switch event.Status {
	case model.JobDone, model.JobFailed:
		_ = ws.WriteTyped(conn, ws.DoneResponse{
			Event:  ws.EventDone,
			JobID:  event.JobID,
			Status: string(event.Status),
		})
		return true
	default:
		_ = ws.WriteTyped(conn, ws.ProgressResponse{
			Event:  ws.EventProgress,
			JobID:  event.JobID,
			Status: string(event.Status),
			Detail: event.Detail,
		})
		return false
	}
}
