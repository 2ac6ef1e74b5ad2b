package application

import (
	"strings"

	"voice-to-docs/internal/domain"
)

type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdStartRecord
	CmdStopRecord
	CmdSwitchMode
	CmdQuit
	CmdHelp
	CmdConfirm
	CmdDecline
	CmdDefaultAnswer
)

type Command struct {
	Kind CommandKind
	// Mode is the target of CmdSwitchMode; empty means toggle.
	Mode domain.Mode
	Raw  string
}

// ParseCommand interprets one input line in the context of the current state.
// An empty line is the primary action of each state.
func ParseCommand(state State, input string) Command {
	raw := input
	in := strings.ToLower(strings.TrimSpace(input))

	if state == StateAwaitingIssueConfirmation {
		switch in {
		case "":
			return Command{Kind: CmdDefaultAnswer, Raw: raw}
		case "y", "yes":
			return Command{Kind: CmdConfirm, Raw: raw}
		case "n", "no":
			return Command{Kind: CmdDecline, Raw: raw}
		default:
			return Command{Kind: CmdUnknown, Raw: raw}
		}
	}

	switch in {
	case "m", "mode":
		return Command{Kind: CmdSwitchMode, Raw: raw}
	case "n", "normal":
		return Command{Kind: CmdSwitchMode, Mode: domain.ModeNormal, Raw: raw}
	case "a", "agile", "pm":
		return Command{Kind: CmdSwitchMode, Mode: domain.ModeAgilePM, Raw: raw}
	case "q", "quit", "exit":
		return Command{Kind: CmdQuit, Raw: raw}
	case "h", "?", "help":
		return Command{Kind: CmdHelp, Raw: raw}
	}

	switch state {
	case StateIdle:
		if in == "" || in == "r" {
			return Command{Kind: CmdStartRecord, Raw: raw}
		}
	case StateRecording:
		if in == "" || in == "s" {
			return Command{Kind: CmdStopRecord, Raw: raw}
		}
	}

	return Command{Kind: CmdUnknown, Raw: raw}
}
