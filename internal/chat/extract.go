package chat

import "github.com/tidwall/gjson"

// ExtractAssistantText pulls the first choice's message content out of a raw
// chat-completions response body. Providers deviate from the OpenAI schema,
// so any shape mismatch reports ok=false instead of an error.
func ExtractAssistantText(rawBody string) (string, bool) {
	if !gjson.Valid(rawBody) {
		return "", false
	}
	result := gjson.Get(rawBody, "choices.0.message.content")
	if result.Type != gjson.String {
		return "", false
	}
	return result.Str, true
}
