package launchagent

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBuildPlist_ContainsExpectedEntries(t *testing.T) {
	content := buildPlist("/usr/local/bin/pomo", "/Users/dev/.pomo/logs")

	wants := []string{
		"<key>Label</key>",
		"<string>com.pomokit.pomo</string>",
		"<string>/usr/local/bin/pomo</string>",
		"<string>daemon</string>",
		"<key>RunAtLoad</key>",
		"<key>KeepAlive</key>",
		"<string>/Users/dev/.pomo/logs/daemon.log</string>",
		"<string>/Users/dev/.pomo/logs/daemon.err.log</string>",
	}
	for _, want := range wants {
		if !strings.Contains(content, want) {
			t.Errorf("plist missing %q", want)
		}
	}
}

func TestBuildPlist_WellFormedXML(t *testing.T) {
	content := buildPlist("/usr/local/bin/pomo", "/tmp/logs")

	decoder := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("plist is not well-formed XML: %v", err)
		}
	}
}

func TestBuildPlist_EscapesSpecialCharacters(t *testing.T) {
	content := buildPlist(`/Users/o'brien/bin & tools/pomo`, "/tmp/logs")

	if !strings.Contains(content, "/Users/o&apos;brien/bin &amp; tools/pomo") {
		t.Errorf("plist should escape the executable path, got:\n%s", content)
	}
	if strings.Contains(content, "bin & tools") {
		t.Error("plist contains an unescaped ampersand")
	}
}

func TestXMLEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"a&b", "a&amp;b"},
		{"<tag>", "&lt;tag&gt;"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it&apos;s"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := xmlEscape(tt.input); got != tt.want {
				t.Errorf("xmlEscape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseListPID(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want int
	}{
		{
			name: "running agent",
			out: `{
	"LimitLoadToSessionType" = "Aqua";
	"Label" = "com.pomokit.pomo";
	"OnDemand" = false;
	"PID" = 4521;
	"Program" = "/usr/local/bin/pomo";
};`,
			want: 4521,
		},
		{
			name: "loaded but not running",
			out: `{
	"Label" = "com.pomokit.pomo";
	"LastExitStatus" = 0;
};`,
			want: 0,
		},
		{
			name: "empty output",
			out:  "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseListPID(tt.out); got != tt.want {
				t.Errorf("parseListPID() = %d, want %d", got, tt.want)
			}
		})
	}
}
