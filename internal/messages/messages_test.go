package messages

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestLoad(t *testing.T) {
	tests := map[string]struct {
		data string
		exp  map[string]string
	}{
		"simple": {
			data: "motd Hello there!\n",
			exp:  map[string]string{"motd": "Hello there!"},
		},
		"line break escape": {
			data: "help Commands:%r  look%r  quit%r\n",
			exp:  map[string]string{"help": "Commands:\n  look\n  quit\n"},
		},
		"code lower cased": {
			data: "MOTD Hi\n",
			exp:  map[string]string{"motd": "Hi"},
		},
		"blank lines skipped": {
			data: "\n\nwelcome Hi\n\n",
			exp:  map[string]string{"welcome": "Hi"},
		},
		"later wins": {
			data: "motd first\nmotd second\n",
			exp:  map[string]string{"motd": "second"},
		},
		"code without text": {
			data: "motd\n",
			exp:  map[string]string{"motd": ""},
		},
		"extra spacing": {
			data: "motd    spaced out\n",
			exp:  map[string]string{"motd": "spaced out"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tbl, err := Load(strings.NewReader(tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "count", tbl.Len(), len(tt.exp))
			for code, text := range tt.exp {
				testutil.AssertEqual(t, code, tbl.Get(code), text)
			}
		})
	}
}

func TestTable_Get(t *testing.T) {
	tbl := New()
	tbl.Set("Welcome", "Hi%r")

	testutil.AssertEqual(t, "exact", tbl.Get("welcome"), "Hi\n")
	testutil.AssertEqual(t, "case insensitive", tbl.Get("WELCOME"), "Hi\n")
	testutil.AssertEqual(t, "missing", tbl.Get("motd"), "")
}

func TestTable_Render(t *testing.T) {
	tests := map[string]struct {
		text string
		data any
		exp  string
	}{
		"plain text": {
			text: "Welcome back!",
			exp:  "Welcome back!",
		},
		"field": {
			text: "Welcome back, {{ .Name }}!",
			data: struct{ Name string }{Name: "Bob"},
			exp:  "Welcome back, Bob!",
		},
		"sprig function": {
			text: "{{ .Name | upper }} has arrived",
			data: struct{ Name string }{Name: "Bob"},
			exp:  "BOB has arrived",
		},
		"broken template returned raw": {
			text: "Hello {{ .Name",
			data: struct{ Name string }{Name: "Bob"},
			exp:  "Hello {{ .Name",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tbl := New()
			tbl.Set("msg", tt.text)
			testutil.AssertEqual(t, "rendered", tbl.Render("msg", tt.data), tt.exp)
		})
	}
}
