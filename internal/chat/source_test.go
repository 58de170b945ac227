package chat

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLineSource_InitialThenReads(t *testing.T) {
	src := NewLineSource(strings.NewReader("second\n"), "first")

	line, queued, err := src.Next()
	if err != nil || !queued || line != "first" {
		t.Fatalf("expected queued first line, got (%q, %v, %v)", line, queued, err)
	}

	line, queued, err = src.Next()
	if err != nil || queued || line != "second" {
		t.Fatalf("expected interactive second line, got (%q, %v, %v)", line, queued, err)
	}

	if _, _, err = src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestLineSource_NoInitial(t *testing.T) {
	src := NewLineSource(strings.NewReader("only\n"), "")

	line, queued, err := src.Next()
	if err != nil || queued || line != "only" {
		t.Fatalf("unexpected (%q, %v, %v)", line, queued, err)
	}
}

func TestLineSource_LongLine(t *testing.T) {
	// Raw-mode request bodies routinely exceed bufio.Scanner's 64KB default.
	long := `{"data":"` + strings.Repeat("x", 70*1024) + `"}`
	src := NewLineSource(strings.NewReader(long+"\n"), "")

	line, _, err := src.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != long {
		t.Fatalf("long line truncated: got %d bytes, want %d", len(line), len(long))
	}

	if _, _, err = src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}
