package orchestrator

import (
	"student-calendar-assistant/pkg/llmprovider"
)

// SessionMemory holds the recent conversation history for one chat
// session.
type SessionMemory struct {
	SessionID string
	Messages  []llmprovider.Message
}
