package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

// The job to follow is named in the stream URL, so the only client
// message is a keepalive ping.
const ActionPing Action = "ping"

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventProgress Event = "progress"
	EventDone     Event = "done"
	EventPong     Event = "pong"
)

// ProgressResponse reports a job stage transition.
type ProgressResponse struct {
	Event  Event  `json:"event"`
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// DoneResponse signals that the job reached a terminal state. The full
// result is fetched over the REST API, not pushed through the socket.
type DoneResponse struct {
	Event  Event  `json:"event"`
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
