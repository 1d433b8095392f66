package game

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LineBreak is the escape sequence data files use for an embedded newline.
const LineBreak = "%r"

// LoadWorldFile reads a world definition from path.
func LoadWorldFile(path string, directions NameSet) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rooms file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadWorld(f, directions)
}

// LoadWorld reads a world definition. Each room is three lines: the room id,
// its description and a list of "<direction> <room id>" pairs. Loading stops at
// a zero or unparseable id or an empty description. Duplicate rooms and exits
// in unknown directions are logged and skipped.
func LoadWorld(r io.Reader, directions NameSet) (*World, error) {
	w := NewWorld()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		idLine, ok := nextNonBlank(sc)
		if !ok {
			break
		}
		fields := strings.Fields(idLine)
		id, err := strconv.Atoi(fields[0])
		if err != nil || id == 0 {
			break
		}

		if !sc.Scan() {
			break
		}
		desc := sc.Text()
		if desc == "" {
			break
		}

		var exitLine string
		if sc.Scan() {
			exitLine = sc.Text()
		}

		room := NewRoom(id, strings.ReplaceAll(desc, LineBreak, "\n")+"\n")
		if err := w.Add(room); err != nil {
			slog.Warn("room appears more than once in rooms file", "room", id)
			continue
		}

		parseExits(room, exitLine, directions)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading rooms: %w", err)
	}

	return w, nil
}

func parseExits(room *Room, line string, directions NameSet) {
	tokens := strings.Fields(line)
	for i := 0; i < len(tokens); i += 2 {
		dir := tokens[i]
		if i+1 >= len(tokens) {
			slog.Warn("missing room number for exit", "room", room.Id, "direction", dir)
			return
		}
		dest, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			slog.Warn("bad room number for exit", "room", room.Id, "direction", dir, "value", tokens[i+1])
			return
		}

		if !directions.Has(dir) {
			slog.Warn("exit direction not in list of directions", "room", room.Id, "direction", dir)
			continue
		}

		if dest == 0 {
			return
		}

		room.AddExit(dir, dest)
	}
}

func nextNonBlank(sc *bufio.Scanner) (string, bool) {
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, true
		}
	}
	return "", false
}
