package application

import "voice-to-docs/internal/domain"

type State int

const (
	StateIdle State = iota
	StateRecording
	StateProcessing
	StateAwaitingIssueConfirmation
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	case StateAwaitingIssueConfirmation:
		return "awaiting_issue_confirmation"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Session is the mutable state of one interactive run. Only the Controller
// changes it.
type Session struct {
	mode     domain.Mode
	deviceID *int
	state    State
}

func NewSession(mode domain.Mode, deviceID *int) *Session {
	if mode == "" {
		mode = domain.ModeNormal
	}
	return &Session{
		mode:     mode,
		deviceID: deviceID,
		state:    StateIdle,
	}
}

func (s *Session) Mode() domain.Mode { return s.mode }
func (s *Session) State() State      { return s.state }
func (s *Session) Running() bool     { return s.state != StateTerminated }

func (s *Session) DeviceID() (int, bool) {
	if s.deviceID == nil {
		return 0, false
	}
	return *s.deviceID, true
}
