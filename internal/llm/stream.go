package llm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// streamEvent is one line of stream-json output from the model CLI.
type streamEvent struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	Result  string `json:"result"`
	IsError bool   `json:"is_error"`
}

// DecodeReply extracts the reply text from model CLI output.
//
// Stream-json output is a sequence of JSON lines ending in a
// {"type":"result"} event; its result field is the reply. Output that is
// not JSON lines is treated as the plain-text reply itself.
func DecodeReply(output []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	sawJSON := false
	var result *streamEvent

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev streamEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			if sawJSON {
				continue
			}
			// Not a JSON stream at all.
			return strings.TrimSpace(string(output)), nil
		}
		sawJSON = true
		if ev.Type == "result" {
			evCopy := ev
			result = &evCopy
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read model output: %w", err)
	}

	if !sawJSON {
		return strings.TrimSpace(string(output)), nil
	}
	if result == nil {
		return "", fmt.Errorf("model output ended without a result event")
	}
	if result.IsError {
		return "", fmt.Errorf("model reported an error: %s", firstNonEmpty(result.Result, result.Subtype))
	}
	return strings.TrimSpace(result.Result), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "unknown"
}
