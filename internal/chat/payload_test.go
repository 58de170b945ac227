package chat

import "testing"

func TestBuildPayload_RequiredFields(t *testing.T) {
	params := Params{
		Model:       "gpt-4o",
		Temperature: 0.7,
		TopP:        1.0,
		MaxTokens:   512,
	}
	messages := []Message{{Role: "user", Content: "hi"}}

	payload := BuildPayload(params, messages)

	if payload["model"] != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %v", payload["model"])
	}
	if payload["temperature"] != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", payload["temperature"])
	}
	if payload["top_p"] != 1.0 {
		t.Errorf("expected top_p 1.0, got %v", payload["top_p"])
	}
	if payload["max_tokens"] != 512 {
		t.Errorf("expected max_tokens 512, got %v", payload["max_tokens"])
	}
	got, ok := payload["messages"].([]Message)
	if !ok || len(got) != 1 || got[0].Content != "hi" {
		t.Errorf("unexpected messages: %v", payload["messages"])
	}
}

func TestBuildPayload_TopKOmittedWhenUnset(t *testing.T) {
	payload := BuildPayload(Params{Model: "m", MaxTokens: 1}, nil)
	if _, present := payload["top_k"]; present {
		t.Error("top_k should be omitted when not supplied")
	}
}

func TestBuildPayload_TopKIncludedWhenSet(t *testing.T) {
	topK := 40
	payload := BuildPayload(Params{Model: "m", MaxTokens: 1, TopK: &topK}, nil)
	if payload["top_k"] != 40 {
		t.Errorf("expected top_k 40, got %v", payload["top_k"])
	}
}

func TestBuildPayload_ReasoningEffort(t *testing.T) {
	payload := BuildPayload(Params{Model: "m", MaxTokens: 1}, nil)
	if _, present := payload["reasoning_effort"]; present {
		t.Error("reasoning_effort should be omitted when empty")
	}

	payload = BuildPayload(Params{Model: "m", MaxTokens: 1, ReasoningEffort: "high"}, nil)
	if payload["reasoning_effort"] != "high" {
		t.Errorf("expected reasoning_effort high, got %v", payload["reasoning_effort"])
	}
}

func TestBuildPayload_ExtraParamsOverride(t *testing.T) {
	params := Params{
		Model:     "m",
		MaxTokens: 512,
		Extra:     map[string]any{"max_tokens": 9, "seed": 42},
	}

	payload := BuildPayload(params, nil)

	if payload["max_tokens"] != 9 {
		t.Errorf("extra params override should win, got %v", payload["max_tokens"])
	}
	if payload["seed"] != 42 {
		t.Errorf("expected seed 42, got %v", payload["seed"])
	}
}
