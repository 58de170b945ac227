package chat

// Params holds the fixed request parameters supplied once at startup.
type Params struct {
	Model           string
	Temperature     float64
	TopP            float64
	TopK            *int
	MaxTokens       int
	ReasoningEffort string
	Extra           map[string]any
}

// BuildPayload assembles a chat-completions request body from the session
// parameters and the full message history. Extra params are merged last and
// shallow-overwrite any computed key; that is the escape hatch for
// provider-specific fields.
func BuildPayload(p Params, messages []Message) map[string]any {
	payload := map[string]any{
		"model":       p.Model,
		"messages":    messages,
		"temperature": p.Temperature,
		"top_p":       p.TopP,
		"max_tokens":  p.MaxTokens,
	}
	if p.TopK != nil {
		payload["top_k"] = *p.TopK
	}
	if p.ReasoningEffort != "" {
		payload["reasoning_effort"] = p.ReasoningEffort
	}
	for k, v := range p.Extra {
		payload[k] = v
	}
	return payload
}
