package chat

import (
	"encoding/json"
	"fmt"
)

// Message represents a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ParseJSONMessages decodes operator input in json mode: either a single
// message object or an array of them. Every object must carry string "role"
// and "content" keys. Messages are returned in input order.
func ParseJSONMessages(text string) ([]Message, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case map[string]any:
		msg, err := messageFromObject(v)
		if err != nil {
			return nil, err
		}
		return []Message{msg}, nil
	case []any:
		out := make([]Message, 0, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("item %d: each list item must be an object with role and content", i)
			}
			msg, err := messageFromObject(obj)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out = append(out, msg)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("JSON message must be an object or a list of objects")
	}
}

func messageFromObject(obj map[string]any) (Message, error) {
	role, ok := obj["role"].(string)
	if !ok {
		return Message{}, fmt.Errorf("object must contain a string role")
	}
	content, ok := obj["content"].(string)
	if !ok {
		return Message{}, fmt.Errorf("object must contain a string content")
	}
	return Message{Role: role, Content: content}, nil
}
