package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-tinymud/internal/game"
)

// EncodeRecord renders a player as three lines: password, room id and the
// space separated flags.
func EncodeRecord(p *game.Player) []byte {
	var b bytes.Buffer
	b.WriteString(p.Password)
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(p.Room))
	b.WriteByte('\n')
	b.WriteString(p.Flags.String())
	b.WriteByte('\n')
	return b.Bytes()
}

// DecodeRecord parses a record written by EncodeRecord for the named player.
func DecodeRecord(name string, data []byte) (*game.Player, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	lines := make([]string, 0, 3)
	for len(lines) < 3 && sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%s: %w: expected at least 2 lines, got %d", name, ErrCorruptRecord, len(lines))
	}

	pw := strings.Fields(lines[0])
	if len(pw) == 0 {
		return nil, fmt.Errorf("%s: %w: missing password", name, ErrCorruptRecord)
	}

	room, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: bad room %q", name, ErrCorruptRecord, lines[1])
	}

	p := game.NewPlayer(game.Capitalize(name), room)
	p.Password = pw[0]
	if len(lines) > 2 {
		for _, f := range strings.Fields(lines[2]) {
			p.Flags.Add(f)
		}
	}

	return p, nil
}
