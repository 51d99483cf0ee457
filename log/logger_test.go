package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	type spec struct {
		name     string
		expLevel Level
		expErr   bool
	}
	specs := []spec{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{" notice ", Notice, false},
		{"Warning", Warning, false},
		{"error", Error, false},
		{"verbose", Notice, true},
	}

	for index, s := range specs {
		level, err := ParseLevel(s.name)
		if s.expErr != (err != nil) {
			t.Fatalf("[spec %d] expected error to be %t; got %v", index, s.expErr, err)
		}
		if level != s.expLevel {
			t.Fatalf("[spec %d] expected level %s; got %s", index, s.expLevel, level)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	origLevel := CurrentLevel()
	defer SetLevel(origLevel)

	logger := New("test")

	SetLevel(Warning)
	logger.Infof("hidden %d", 1)
	logger.Warningf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Fatalf("expected info message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "[test]") {
		t.Fatalf("expected warning message tagged with the logger name; got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("expected debug message to be logged; got %q", buf.String())
	}
}
