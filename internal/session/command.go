package session

import (
	"fmt"
	"strings"
)

// Command is a menu selection.
type Command int

const (
	CmdDialogue Command = iota + 1
	CmdMinigame
	CmdReports
	CmdSwitchAccount
	CmdExit
)

// commands lists every Command; New refuses to build a controller that
// cannot handle one of them.
var commands = []Command{CmdDialogue, CmdMinigame, CmdReports, CmdSwitchAccount, CmdExit}

func (c Command) String() string {
	switch c {
	case CmdDialogue:
		return "dialogue"
	case CmdMinigame:
		return "minigame"
	case CmdReports:
		return "reports"
	case CmdSwitchAccount:
		return "switch-account"
	case CmdExit:
		return "exit"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// ParseCommand maps menu input to a Command. ok is false for anything that is
// not a menu option.
func ParseCommand(input string) (cmd Command, ok bool) {
	switch strings.TrimSpace(input) {
	case "1":
		return CmdDialogue, true
	case "2":
		return CmdMinigame, true
	case "3":
		return CmdReports, true
	case "4":
		return CmdSwitchAccount, true
	case "5":
		return CmdExit, true
	default:
		return 0, false
	}
}
