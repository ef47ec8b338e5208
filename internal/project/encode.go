package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Encode writes c in project-file form. Parse reads the result back to an
// equal Config when given the same layout lookup.
func Encode(c *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalTOML writes the command in its array form.
func (c ApplicationCommand) MarshalTOML() ([]byte, error) {
	return []byte(quoteList(append([]string{c.Program}, c.Args...))), nil
}

// MarshalTOML writes the layout as the plain string it was classified from.
func (l Layout) MarshalTOML() ([]byte, error) {
	return []byte(quote(l.Value)), nil
}

// MarshalTOML writes the exec entry as an inline table.
func (e Exec) MarshalTOML() ([]byte, error) {
	var timeout string
	if e.Timeout%time.Second == 0 {
		timeout = fmt.Sprintf("%d", int64(e.Timeout/time.Second))
	} else {
		timeout = quote(e.Timeout.String())
	}
	return []byte(fmt.Sprintf("{ commands = %s, exec_type = %s, timeout = %s }",
		quoteList(e.Commands), quote(e.Type.String()), timeout)), nil
}

// quote produces a TOML basic string. JSON string escapes are a subset of
// TOML's, apart from DEL which TOML requires to be escaped.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(out, "\x7f", `\u007f`)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
