package chat

import "testing"

func TestParseJSONMessages_SingleObject(t *testing.T) {
	msgs, err := ParseJSONMessages(`{"role":"system","content":"be terse"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[0].Content != "be terse" {
		t.Errorf("unexpected message: %+v", msgs[0])
	}
}

func TestParseJSONMessages_Array(t *testing.T) {
	msgs, err := ParseJSONMessages(`[{"role":"system","content":"a"},{"role":"user","content":"b"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Errorf("array order not preserved: %+v", msgs)
	}
}

func TestParseJSONMessages_Invalid(t *testing.T) {
	cases := []string{
		`{"role":"user"}`,                 // missing content
		`{"content":"hi"}`,                // missing role
		`{"role":1,"content":"hi"}`,       // non-string role
		`[{"role":"user","content":"a"},"x"]`, // non-object item
		`"just a string"`,                 // not object or array
		`{broken`,                         // malformed
	}
	for _, input := range cases {
		if _, err := ParseJSONMessages(input); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}
