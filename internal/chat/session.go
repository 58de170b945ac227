package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/probekit/chatprobe/internal/archive"
	"github.com/probekit/chatprobe/internal/transport"
	"go.uber.org/zap"
)

// Poster is the transport boundary: one synchronous JSON POST per turn.
type Poster interface {
	Post(ctx context.Context, payload any) (*transport.Response, error)
}

// Options configures a Session.
type Options struct {
	Params   Params
	Poster   Poster
	Source   InputSource
	Out      io.Writer
	Archiver archive.Storage // nil disables /save
	Logger   *zap.Logger
}

// Session owns the conversation state of one interactive debugging run: the
// current input mode and the message history. It is not safe for concurrent
// use; exactly one Run drives it.
type Session struct {
	mode     Mode
	history  []Message
	params   Params
	poster   Poster
	source   InputSource
	out      io.Writer
	archiver archive.Storage
	log      *zap.Logger
}

// NewSession creates a session starting in user mode with empty history.
func NewSession(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		mode:     ModeUser,
		params:   opts.Params,
		poster:   opts.Poster,
		source:   opts.Source,
		out:      opts.Out,
		archiver: opts.Archiver,
		log:      log,
	}
}

// Mode returns the current input mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// History returns a copy of the conversation history.
func (s *Session) History() []Message {
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Run drives the read-interpret-post loop until /quit, end of input, or
// context cancellation. All three are normal exits.
func (s *Session) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(s.out, "\nInterrupted.")
			return nil
		}

		fmt.Fprintf(s.out, "[%s]> ", s.mode)
		line, queued, err := s.source.Next()
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		line = strings.TrimSpace(line)
		if queued {
			fmt.Fprintln(s.out, line)
		}

		if line == "" {
			continue
		}

		if quit := s.dispatch(ctx, line); quit {
			return nil
		}
	}
}

// dispatch handles one non-empty input line and reports whether the session
// should terminate.
func (s *Session) dispatch(ctx context.Context, line string) bool {
	switch {
	case line == "/quit":
		return true
	case line == "/help":
		fmt.Fprint(s.out, Help())
		return false
	case line == "/show":
		s.printHistory()
		return false
	case line == "/clear":
		s.history = nil
		fmt.Fprintln(s.out, "History cleared.")
		return false
	case line == "/save" || strings.HasPrefix(line, "/save "):
		s.saveTranscript(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/save")))
		return false
	case strings.HasPrefix(line, "/mode "):
		s.switchMode(strings.TrimPrefix(line, "/mode "))
		return false
	}

	// Unmatched slash input intentionally falls through to mode handling.
	s.runTurn(ctx, line)
	return false
}

func (s *Session) switchMode(name string) {
	mode, ok := ParseMode(name)
	if !ok {
		fmt.Fprintln(s.out, "Invalid mode.")
		return
	}
	s.mode = mode
	fmt.Fprintf(s.out, "Mode set to: %s\n", mode)
}

// runTurn interprets one message-bearing input line, issues the request, and
// folds a successful assistant reply back into history.
func (s *Session) runTurn(ctx context.Context, line string) {
	var payload any

	if s.mode == ModeRaw {
		// Raw mode: the input is the literal request body and history is
		// left untouched, even on success.
		var value any
		if err := json.Unmarshal([]byte(line), &value); err != nil {
			fmt.Fprintf(s.out, "Invalid raw JSON body: %v\n", err)
			return
		}
		payload = value
	} else {
		var msgs []Message
		if s.mode == ModeJSON {
			parsed, err := ParseJSONMessages(line)
			if err != nil {
				fmt.Fprintf(s.out, "Invalid JSON message input: %v\n", err)
				return
			}
			msgs = parsed
		} else {
			msgs = []Message{{Role: string(s.mode), Content: line}}
		}
		s.history = append(s.history, msgs...)
		payload = BuildPayload(s.params, s.history)
	}

	resp, err := s.poster.Post(ctx, payload)
	if err != nil {
		// Timeouts and connection failures cost the turn, not the session.
		fmt.Fprintf(s.out, "Request failed: %v\n", err)
		s.log.Debug("transport error", zap.Error(err))
		return
	}

	fmt.Fprintf(s.out, "HTTP %d\n", resp.Status)
	fmt.Fprintln(s.out, resp.Body)

	if s.mode != ModeRaw && resp.Status >= 200 && resp.Status < 300 {
		if text, ok := ExtractAssistantText(resp.Body); ok {
			s.history = append(s.history, Message{Role: "assistant", Content: text})
		}
	}
}

func (s *Session) printHistory() {
	fmt.Fprintln(s.out, renderHistory(s.history))
}

func (s *Session) saveTranscript(ctx context.Context, name string) {
	if s.archiver == nil {
		fmt.Fprintln(s.out, "Archive not configured.")
		return
	}
	if name == "" {
		name = "session"
	}

	data, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		fmt.Fprintf(s.out, "Save failed: %v\n", err)
		return
	}

	key := fmt.Sprintf("%s-%s-%s.json",
		name, time.Now().UTC().Format("20060102T150405Z"), uuid.NewString())
	if err := s.archiver.Write(ctx, key, data); err != nil {
		fmt.Fprintf(s.out, "Save failed: %v\n", err)
		s.log.Warn("archiving transcript", zap.Error(err))
		return
	}
	fmt.Fprintf(s.out, "Saved transcript: %s\n", key)
}

// Help returns the command and mode summary printed at startup and by /help.
func Help() string {
	return `Commands:
  /mode user|assistant|system|json|raw|none   Switch input mode
  /show                                  Show current history
  /clear                                 Clear history
  /save [name]                           Archive history as a transcript
  /help                                  Show this help
  /quit                                  Exit

Modes:
  user/assistant/system -> input becomes one message and is appended to history
  json -> input must be JSON message object or array, appended to history
  raw -> input sent as entire request body, no history modification
`
}
