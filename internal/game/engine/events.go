package engine

import "time"

// Event describes one processed command for observers (spectator hub,
// journal, archive). Final carries the closing snapshot once the
// session ends.
type Event struct {
	SessionID string       `json:"sessionId"`
	Command   string       `json:"command"`
	ActorID   string       `json:"actorId"`
	Success   bool         `json:"success"`
	ErrorKind string       `json:"errorKind,omitempty"`
	Messages  []string     `json:"messages"`
	Phase     string       `json:"phase"`
	WinnerID  string       `json:"winnerId,omitempty"`
	Final     *SessionView `json:"final,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Sink receives engine events. Sinks must not call back into the
// engine's Execute path.
type Sink interface {
	HandleEvent(event Event)
}
