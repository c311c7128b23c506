// package codec decodes JSON payloads from the QQ Music API into typed results.
//
// The parsing policy is fixed: // and /* */ comments are allowed, unknown keys are ignored
// and missing fields keep their zero value. [Decode] is fail-open: a payload that cannot be
// decoded is logged and replaced by the zero value of the target type.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/jsonc"
)

// maxLoggedInput caps how much of an offending payload is written to the log.
const maxLoggedInput = 4096

// TryDecode parses data into a new T and reports any failure to the caller.
//
// On failure the returned value is always the zero T, never a partially populated one.
func TryDecode[T any](data []byte) (T, error) {
	var value T
	if err := json.Unmarshal(jsonc.ToJSON(data), &value); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Decode parses data into a new T.
//
// Malformed input, type mismatches and empty payloads do not return an error: a single
// error entry with the formatted parse error and the offending input is written to logger
// and the zero T is returned. A nil logger falls back to [log.Default].
func Decode[T any](logger *log.Logger, data []byte) T {
	value, err := TryDecode[T](data)
	if err == nil {
		return value
	}

	if logger == nil {
		logger = log.Default()
	}
	logger.Error("json decode failed",
		"type", fmt.Sprintf("%T", value),
		"error", FormatError(err, data),
		"input", truncate(data),
	)
	return value
}

// FormatError renders a decode error with the line and column it occurred at and a caret
// under the offending byte. Errors that carry no offset are returned as-is.
func FormatError(err error, data []byte) string {
	if err == nil {
		return ""
	}

	offset := int64(-1)
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	if offset < 0 || len(data) == 0 {
		return err.Error()
	}

	pos := min(max(int(offset)-1, 0), len(data)-1)
	line, col, text := locate(data, pos)

	// Long single-line payloads are windowed around the column.
	const window = 40
	lo := min(max(col-1-window, 0), len(text))
	hi := max(min(col-1+window, len(text)), lo)
	snippet, pad := text[lo:hi], col-1-lo
	if lo > 0 {
		snippet, pad = "..."+snippet, pad+3
	}
	if hi < len(text) {
		snippet += "..."
	}

	caret := strings.Repeat(" ", pad) + "^"
	return fmt.Sprintf("%d:%d: %v\n   %s\n   %s", line, col, err, snippet, caret)
}

// locate returns the 1-based line and column of pos and the text of that line.
func locate(data []byte, pos int) (line, col int, text string) {
	line = 1
	lineStart := 0
	for i := 0; i < pos; i++ {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	lineEnd := len(data)
	if idx := strings.IndexByte(string(data[lineStart:]), '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}

	text = strings.TrimRight(string(data[lineStart:lineEnd]), "\r")
	return line, pos - lineStart + 1, text
}

func truncate(data []byte) string {
	if len(data) <= maxLoggedInput {
		return string(data)
	}
	return string(data[:maxLoggedInput]) + "…"
}
