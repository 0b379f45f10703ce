package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// InstructionsKind is the shape a recipe's raw instructions arrived in.
type InstructionsKind int

const (
	// InstructionsMissing means the field was absent or null.
	InstructionsMissing InstructionsKind = iota
	// InstructionsText is a single string.
	InstructionsText
	// InstructionsList is an array of strings.
	InstructionsList
	// InstructionsSteps is an array of objects that each carry a non-empty text.
	InstructionsSteps
	// InstructionsUnsupported is any other shape (numbers, mixed arrays, ...).
	InstructionsUnsupported
)

func (k InstructionsKind) String() string {
	switch k {
	case InstructionsMissing:
		return "missing"
	case InstructionsText:
		return "text"
	case InstructionsList:
		return "list"
	case InstructionsSteps:
		return "steps"
	default:
		return "unsupported"
	}
}

// Instructions holds the raw instructions value of a recipe. Values decoded
// from JSON keep their source bytes and re-encode to them unchanged.
type Instructions struct {
	Kind  InstructionsKind
	Text  string
	Lines []string

	raw json.RawMessage
}

// TextInstructions builds InstructionsText.
func TextInstructions(text string) Instructions {
	return Instructions{Kind: InstructionsText, Text: text}
}

// ListInstructions builds InstructionsList. A nil list is encoded as [].
func ListInstructions(lines ...string) Instructions {
	if lines == nil {
		lines = []string{}
	}
	return Instructions{Kind: InstructionsList, Lines: lines}
}

// StepInstructions builds InstructionsSteps from the step texts.
func StepInstructions(texts ...string) Instructions {
	return Instructions{Kind: InstructionsSteps, Lines: texts}
}

// Equal reports whether two values hold the same instructions, ignoring the
// source bytes.
func (in Instructions) Equal(other Instructions) bool {
	return in.Kind == other.Kind && in.Text == other.Text && slices.Equal(in.Lines, other.Lines)
}

func (in Instructions) MarshalJSON() ([]byte, error) {
	if len(in.raw) > 0 {
		return in.raw, nil
	}

	switch in.Kind {
	case InstructionsText:
		return json.Marshal(in.Text)
	case InstructionsList:
		lines := in.Lines
		if lines == nil {
			lines = []string{}
		}
		return json.Marshal(lines)
	case InstructionsSteps:
		type step struct {
			Text string `json:"text"`
		}
		steps := make([]step, 0, len(in.Lines))
		for _, line := range in.Lines {
			steps = append(steps, step{Text: line})
		}
		return json.Marshal(steps)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON classifies the value. It never fails on a well-formed JSON
// value: shapes that are not understood become InstructionsUnsupported.
func (in *Instructions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty instructions value")
	}
	if !json.Valid(trimmed) {
		return fmt.Errorf("invalid instructions value")
	}

	parsed := classifyInstructions(trimmed)
	if parsed.Kind != InstructionsMissing {
		parsed.raw = append(json.RawMessage(nil), trimmed...)
	}
	*in = parsed
	return nil
}

func classifyInstructions(data []byte) Instructions {
	switch data[0] {
	case 'n':
		return Instructions{Kind: InstructionsMissing}
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return Instructions{Kind: InstructionsUnsupported}
		}
		return Instructions{Kind: InstructionsText, Text: text}
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return Instructions{Kind: InstructionsUnsupported}
		}
		// An empty array is a list; it formats to an empty string.
		if len(elems) == 0 {
			return Instructions{Kind: InstructionsList, Lines: []string{}}
		}
		if texts, ok := stepTexts(elems); ok {
			return Instructions{Kind: InstructionsSteps, Lines: texts}
		}
		if lines, ok := stringElems(elems); ok {
			return Instructions{Kind: InstructionsList, Lines: lines}
		}
		return Instructions{Kind: InstructionsUnsupported}
	default:
		return Instructions{Kind: InstructionsUnsupported}
	}
}

func stepTexts(elems []json.RawMessage) ([]string, bool) {
	texts := make([]string, 0, len(elems))
	for _, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, false
		}
		var step struct {
			Text *string `json:"text"`
		}
		if err := json.Unmarshal(elem, &step); err != nil || step.Text == nil || *step.Text == "" {
			return nil, false
		}
		texts = append(texts, *step.Text)
	}
	return texts, true
}

func stringElems(elems []json.RawMessage) ([]string, bool) {
	lines := make([]string, 0, len(elems))
	for _, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '"' {
			return nil, false
		}
		var line string
		if err := json.Unmarshal(elem, &line); err != nil {
			return nil, false
		}
		lines = append(lines, line)
	}
	return lines, true
}
