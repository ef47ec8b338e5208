package project

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidUTF8Path is returned when a layout path cannot be sent to i3.
	ErrInvalidUTF8Path = errors.New("path is not valid UTF-8")
	// ErrLayoutNotSpecified is returned when general.layout is missing or empty.
	ErrLayoutNotSpecified = errors.New("layout not specified")
	// ErrEmptyCommand is returned when an application command has no tokens.
	ErrEmptyCommand = errors.New("command can not be empty")
	// ErrCommandSplittingFailed is returned when a command string cannot be
	// split into words, usually because of an unterminated quote.
	ErrCommandSplittingFailed = errors.New("failed to split command")
)

// DefaultExecTimeout bounds a single xdotool invocation when a project does
// not set one.
const DefaultExecTimeout = 5 * time.Second

// Config is a parsed project file.
type Config struct {
	General      General       `toml:"general"`
	Applications []Application `toml:"applications"`
}

// General holds the project-wide settings.
type General struct {
	WorkingDirectory string `toml:"working_directory,omitempty"`
	Workspace        string `toml:"workspace,omitempty"`
	Layout           Layout `toml:"layout"`
}

// Application is one program to launch. Applications start in file order.
type Application struct {
	Command          ApplicationCommand `toml:"command"`
	WorkingDirectory string             `toml:"working_directory,omitempty"`
	Exec             *Exec              `toml:"exec,omitempty"`
}

// ApplicationCommand is a program and its arguments. It is executed
// directly, never through a shell.
type ApplicationCommand struct {
	Program string
	Args    []string
}

func (c ApplicationCommand) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// LayoutKind tells how a Layout value is interpreted.
type LayoutKind int

const (
	// LayoutContents holds inline layout JSON.
	LayoutContents LayoutKind = iota
	// LayoutManaged names a layout stored in the layouts directory.
	LayoutManaged
	// LayoutPath points at a layout file on disk.
	LayoutPath
)

func (k LayoutKind) String() string {
	switch k {
	case LayoutContents:
		return "contents"
	case LayoutManaged:
		return "managed"
	case LayoutPath:
		return "path"
	default:
		return fmt.Sprintf("LayoutKind(%d)", int(k))
	}
}

// Layout is the layout source of a project.
type Layout struct {
	Kind LayoutKind
	// Value is the JSON for LayoutContents, the layout name for
	// LayoutManaged and the expanded path for LayoutPath.
	Value string
}

// ExecType selects how exec commands are sent to an application.
type ExecType int

const (
	// ExecText types each command and presses Return after it.
	ExecText ExecType = iota
	// ExecTextNoReturn types each command without pressing Return.
	ExecTextNoReturn
	// ExecKeys sends all commands as key names in one invocation.
	ExecKeys
)

func (t ExecType) String() string {
	switch t {
	case ExecText:
		return "text"
	case ExecTextNoReturn:
		return "text_no_return"
	case ExecKeys:
		return "keys"
	default:
		return fmt.Sprintf("ExecType(%d)", int(t))
	}
}

// ParseExecType converts the project-file spelling of an exec type.
func ParseExecType(s string) (ExecType, error) {
	switch s {
	case "text":
		return ExecText, nil
	case "text_no_return":
		return ExecTextNoReturn, nil
	case "keys":
		return ExecKeys, nil
	default:
		return 0, fmt.Errorf("unknown exec_type %q (expected text, text_no_return or keys)", s)
	}
}

// Exec is the input sent to an application after it was spawned.
type Exec struct {
	Commands []string
	Type     ExecType
	Timeout  time.Duration
}
