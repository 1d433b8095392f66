// Package messages holds the server's canned texts, keyed by a short code.
package messages

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/pixil98/go-tinymud/internal/game"
)

// Well known message codes.
const (
	Welcome        = "welcome"
	MOTD           = "motd"
	NewPlayer      = "new_player"
	ExistingPlayer = "existing_player"
	Help           = "help"
)

var templateFuncs = sprig.TxtFuncMap()

// Table maps lower case message codes to text.
type Table struct {
	entries map[string]string
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: map[string]string{}}
}

// LoadFile reads a messages file from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening messages file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load reads lines of the form "<code> <text>". A %r in the text becomes a
// newline. Later definitions of a code replace earlier ones.
func Load(r io.Reader) (*Table, error) {
	t := New()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimLeft(sc.Text(), " \t")
		if line == "" {
			continue
		}
		code, text := line, ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			code, text = line[:i], strings.TrimLeft(line[i:], " \t")
		}
		t.Set(code, text)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading messages: %w", err)
	}

	return t, nil
}

// Set stores text under code.
func (t *Table) Set(code, text string) {
	t.entries[strings.ToLower(code)] = strings.ReplaceAll(text, game.LineBreak, "\n")
}

// Get returns the text for code, or "" when there is none.
func (t *Table) Get(code string) string {
	return t.entries[strings.ToLower(code)]
}

// Len returns the number of messages.
func (t *Table) Len() int {
	return len(t.entries)
}

// Render returns the text for code with any template actions expanded
// against data. Text that fails to expand is returned unexpanded.
func (t *Table) Render(code string, data any) string {
	text := t.Get(code)
	if !strings.Contains(text, "{{") {
		return text
	}

	out, err := expand(text, data)
	if err != nil {
		slog.Warn("expanding message", "code", code, "error", err)
		return text
	}
	return out
}

func expand(text string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
