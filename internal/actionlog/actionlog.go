// Package actionlog appends one line per wmproj action (project start,
// application spawn, input delivery, verification) to a size-rotated file.
package actionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level orders actions by importance.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Action identifies what happened.
type Action string

const (
	ActionStart      Action = "START"
	ActionSpawn      Action = "SPAWN"
	ActionExec       Action = "EXEC"
	ActionExecFailed Action = "EXEC-FAILED"
	ActionVerify     Action = "VERIFY"
)

func (a Action) level() Level {
	switch a {
	case ActionExec:
		return LevelDebug
	case ActionExecFailed:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// Config controls the action log.
type Config struct {
	Enabled   bool
	Level     Level
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

// Logger writes action records. A nil *Logger discards everything.
type Logger struct {
	mu   sync.Mutex
	cfg  Config
	file *os.File
	size int64
	now  func() time.Time
}

// Open prepares the log file. A disabled config yields a Logger that drops
// every record.
func Open(cfg Config) (*Logger, error) {
	l := &Logger{cfg: cfg, now: time.Now}
	if !cfg.Enabled {
		return l, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create action log directory: %w", err)
	}
	if err := l.openFile(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Logger) openFile() error {
	f, err := os.OpenFile(l.cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open action log %s: %w", l.cfg.FilePath, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat action log: %w", err)
	}
	l.file = f
	l.size = info.Size()
	return nil
}

// Record appends one action line for project with the given fields.
func (l *Logger) Record(action Action, project string, fields map[string]any) {
	if l == nil || !l.cfg.Enabled || action.level() < l.cfg.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}

	if limit := int64(l.cfg.MaxSizeMB) * 1024 * 1024; limit > 0 && l.size >= limit {
		if err := l.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "wmproj: action log rotation failed: %v\n", err)
			if l.file == nil {
				return
			}
		}
	}

	n, err := l.file.WriteString(formatLine(l.now(), action, project, fields))
	if err != nil {
		fmt.Fprintf(os.Stderr, "wmproj: failed to write action log: %v\n", err)
		return
	}
	l.size += int64(n)
}

func formatLine(ts time.Time, action Action, project string, fields map[string]any) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]", ts.Format("2006-01-02 15:04:05"), action)
	if project != "" {
		fmt.Fprintf(&sb, " project=%q", project)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			fmt.Fprintf(&sb, " %s=%q", k, v)
		case error:
			fmt.Fprintf(&sb, " %s=%q", k, v.Error())
		default:
			fmt.Fprintf(&sb, " %s=%v", k, v)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// rotate shifts actions.log.N to .N+1, drops the oldest and starts a fresh
// file. With MaxFiles=3 the files .1 to .3 are kept.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	base := l.cfg.FilePath
	if l.cfg.MaxFiles > 0 {
		os.Remove(fmt.Sprintf("%s.%d", base, l.cfg.MaxFiles))
		for i := l.cfg.MaxFiles - 1; i >= 1; i-- {
			os.Rename(fmt.Sprintf("%s.%d", base, i), fmt.Sprintf("%s.%d", base, i+1))
		}
		if err := os.Rename(base, base+".1"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rotate action log: %w", err)
		}
	} else if err := os.Remove(base); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to truncate action log: %w", err)
	}

	return l.openFile()
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel converts a settings value to a Level. Unknown values map to
// LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
