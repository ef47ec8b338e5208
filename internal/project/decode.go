package project

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kballard/go-shellquote"
)

// ParseOptions carries the context needed to interpret a project file.
type ParseOptions struct {
	// LayoutExists reports whether a managed layout with the given name
	// exists. A nil func treats every non-JSON layout value as a path.
	LayoutExists func(name string) bool
	// DefaultExecTimeout applies to exec entries without a timeout.
	// Zero means DefaultExecTimeout.
	DefaultExecTimeout time.Duration
}

type rawConfig struct {
	General      rawGeneral       `toml:"general"`
	Applications []rawApplication `toml:"applications"`
}

type rawGeneral struct {
	WorkingDirectory string `toml:"working_directory"`
	Workspace        string `toml:"workspace"`
	Layout           string `toml:"layout"`
}

// Command and Exec accept several shapes and are converted after decoding.
type rawApplication struct {
	Command          any    `toml:"command"`
	WorkingDirectory string `toml:"working_directory"`
	Exec             any    `toml:"exec"`
}

// Parse decodes a project file. Unknown keys anywhere are an error.
func Parse(data []byte, opts ParseOptions) (*Config, error) {
	var raw rawConfig
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	if unknown := unknownKeys(md); len(unknown) > 0 {
		return nil, fmt.Errorf("failed to parse project: unknown field(s) %s", strings.Join(unknown, ", "))
	}
	if !md.IsDefined("applications") {
		return nil, fmt.Errorf("failed to parse project: missing field `applications`")
	}
	if raw.General.Layout == "" {
		return nil, ErrLayoutNotSpecified
	}

	timeout := opts.DefaultExecTimeout
	if timeout <= 0 {
		timeout = DefaultExecTimeout
	}

	cfg := &Config{
		General: General{
			WorkingDirectory: ExpandTilde(raw.General.WorkingDirectory),
			Workspace:        raw.General.Workspace,
			Layout:           ClassifyLayout(raw.General.Layout, opts.LayoutExists),
		},
		Applications: make([]Application, 0, len(raw.Applications)),
	}

	for i, ra := range raw.Applications {
		cmd, err := parseCommand(ra.Command)
		if err != nil {
			return nil, fmt.Errorf("applications[%d].command: %w", i, err)
		}
		app := Application{
			Command:          cmd,
			WorkingDirectory: ExpandTilde(ra.WorkingDirectory),
		}
		if ra.Exec != nil {
			ex, err := parseExec(ra.Exec, timeout)
			if err != nil {
				return nil, fmt.Errorf("applications[%d].exec: %w", i, err)
			}
			app.Exec = ex
		}
		cfg.Applications = append(cfg.Applications, app)
	}

	return cfg, nil
}

// unknownKeys lists undecoded keys. Keys below command and exec are checked
// by parseCommand and parseExec instead.
func unknownKeys(md toml.MetaData) []string {
	var out []string
	for _, k := range md.Undecoded() {
		if len(k) > 2 && k[0] == "applications" && (k[1] == "command" || k[1] == "exec") {
			continue
		}
		out = append(out, k.String())
	}
	sort.Strings(out)
	return out
}

// ClassifyLayout decides how a general.layout value is interpreted. A value
// containing '{' is inline JSON, the name of an existing managed layout refers
// to that layout, anything else is a path with a leading '~' expanded.
func ClassifyLayout(value string, layoutExists func(name string) bool) Layout {
	if strings.Contains(value, "{") {
		return Layout{Kind: LayoutContents, Value: value}
	}
	if layoutExists != nil && layoutExists(value) {
		return Layout{Kind: LayoutManaged, Value: value}
	}
	return Layout{Kind: LayoutPath, Value: ExpandTilde(value)}
}

// ExpandTilde replaces a leading "~" or "~/" with the home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func parseCommand(v any) (ApplicationCommand, error) {
	switch v := v.(type) {
	case nil:
		return ApplicationCommand{}, fmt.Errorf("missing field `command`")
	case string:
		words, err := shellquote.Split(v)
		if err != nil {
			return ApplicationCommand{}, fmt.Errorf("%w: %v", ErrCommandSplittingFailed, err)
		}
		return commandFromWords(words)
	case []any:
		words, err := stringList(v)
		if err != nil {
			return ApplicationCommand{}, err
		}
		return commandFromWords(words)
	case map[string]any:
		for key := range v {
			if key != "program" && key != "args" {
				return ApplicationCommand{}, fmt.Errorf("unknown field `%s`, expected `program` or `args`", key)
			}
		}
		program, ok := v["program"].(string)
		if !ok && v["program"] != nil {
			return ApplicationCommand{}, fmt.Errorf("`program` must be a string")
		}
		if strings.TrimSpace(program) == "" {
			return ApplicationCommand{}, ErrEmptyCommand
		}
		args := []string{}
		if rawArgs, ok := v["args"]; ok {
			list, ok := rawArgs.([]any)
			if !ok {
				return ApplicationCommand{}, fmt.Errorf("`args` must be an array of strings")
			}
			if args, ok = toStrings(list); !ok {
				return ApplicationCommand{}, fmt.Errorf("`args` must be an array of strings")
			}
		}
		return ApplicationCommand{Program: program, Args: args}, nil
	default:
		return ApplicationCommand{}, fmt.Errorf("expected a string, an array of strings or a table, got %T", v)
	}
}

func commandFromWords(words []string) (ApplicationCommand, error) {
	if len(words) == 0 {
		return ApplicationCommand{}, ErrEmptyCommand
	}
	return ApplicationCommand{Program: words[0], Args: words[1:]}, nil
}

func parseExec(v any, defaultTimeout time.Duration) (*Exec, error) {
	ex := &Exec{Type: ExecText, Timeout: defaultTimeout}

	switch v := v.(type) {
	case string:
		ex.Commands = []string{v}
	case []any:
		cmds, err := stringList(v)
		if err != nil {
			return nil, err
		}
		ex.Commands = cmds
	case map[string]any:
		for key, val := range v {
			switch key {
			case "commands":
				switch c := val.(type) {
				case string:
					ex.Commands = []string{c}
				case []any:
					cmds, err := stringList(c)
					if err != nil {
						return nil, fmt.Errorf("commands: %w", err)
					}
					ex.Commands = cmds
				default:
					return nil, fmt.Errorf("`commands` must be a string or an array of strings")
				}
			case "exec_type":
				s, ok := val.(string)
				if !ok {
					return nil, fmt.Errorf("`exec_type` must be a string")
				}
				t, err := ParseExecType(s)
				if err != nil {
					return nil, err
				}
				ex.Type = t
			case "timeout":
				d, err := parseTimeout(val)
				if err != nil {
					return nil, err
				}
				ex.Timeout = d
			default:
				return nil, fmt.Errorf("unknown field `%s`, expected `commands`, `exec_type` or `timeout`", key)
			}
		}
	default:
		return nil, fmt.Errorf("expected a string, an array of strings or a table, got %T", v)
	}

	if len(ex.Commands) == 0 {
		return nil, fmt.Errorf("exec commands can not be empty")
	}
	return ex, nil
}

const maxTimeoutSeconds = math.MaxInt64 / int64(time.Second)

// parseTimeout accepts whole seconds or a Go duration string.
func parseTimeout(v any) (time.Duration, error) {
	var d time.Duration
	switch v := v.(type) {
	case int64:
		if v > maxTimeoutSeconds {
			return 0, fmt.Errorf("timeout %d is too large (maximum %d seconds)", v, maxTimeoutSeconds)
		}
		d = time.Duration(v) * time.Second
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout %q: %w", v, err)
		}
		d = parsed
	default:
		return 0, fmt.Errorf("`timeout` must be an integer number of seconds or a duration string")
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive")
	}
	return d, nil
}

func stringList(list []any) ([]string, error) {
	out, ok := toStrings(list)
	if !ok {
		return nil, fmt.Errorf("expected an array of strings")
	}
	return out, nil
}

func toStrings(list []any) ([]string, bool) {
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
