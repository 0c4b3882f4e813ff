package toolparse

import (
	"regexp"

	"github.com/martinemde/ralph/llm"
)

// Candidate is a name/arguments pair mined from text, before correlation
// ids are assigned.
type Candidate struct {
	Name      string
	Arguments llm.Value
}

var (
	// strictCallPattern finds object spans carrying a "name" key followed by
	// an "arguments" key, without brace counting. The optional group admits
	// one level of nested braces inside the arguments object.
	strictCallPattern = regexp.MustCompile(`\{[^{}]*"name"[^{}]*"arguments"[^{}]*(?:\{[^{}]*\}[^{}]*)?\}`)

	// labelPairPattern finds the labeled form models fall back to:
	//
	//	Tool: read_file
	//	Arguments: {"path": "main.go"}
	labelPairPattern = regexp.MustCompile(`(?i)Tool:\s*(\w+)\s+Arguments:\s*(\{[^}]*\})`)

	// callSyntaxPattern finds function-call syntax like read_file({"path": "x"}).
	callSyntaxPattern = regexp.MustCompile(`(\w+)\(\s*(\{[^}]*\})\s*\)`)
)

// DefaultKnownTools lists the names the call-syntax scan accepts when a
// Matcher is built without an explicit registry. The gate exists because
// prose is full of word(...) shapes; only spans naming a real tool are
// worth decoding. Docker and task-workflow names are included even though
// the standard executor has no handlers for them: mining those calls lets
// the unknown-tool text result steer the model back, instead of leaving
// the request buried in prose.
var DefaultKnownTools = []string{
	"read_file", "write_file", "list_dir", "grep",
	"git_status", "git_diff", "git_commit_all", "git_current_branch",
	"git_checkout", "git_create_branch",
	"run_cmd", "mkdir", "remove", "apply_patch",
	"run_tests", "update_prd", "append_progress", "get_next_story",
	"docker_build", "docker_compose_up", "docker_compose_down",
	"docker_exec", "docker_logs", "docker_ps", "docker_test",
}

// Matcher mines tool invocations out of free text. Models running without
// native tool support, and plenty that nominally have it, narrate their
// calls as JSON blobs, labeled pairs, or pseudo-code; the matcher runs every
// strategy and concatenates the hits in strategy order.
type Matcher struct {
	known map[string]bool
}

// NewMatcher creates a matcher. knownTools gates the call-syntax scan; nil
// means DefaultKnownTools, an empty non-nil slice disables that scan.
func NewMatcher(knownTools []string) *Matcher {
	if knownTools == nil {
		knownTools = DefaultKnownTools
	}
	known := make(map[string]bool, len(knownTools))
	for _, name := range knownTools {
		known[name] = true
	}
	return &Matcher{known: known}
}

// Detect returns the candidates found in text, in strategy order and then
// document order within each strategy. The brace-balanced scan runs only
// when the strict pattern yielded no decoded calls, so a text mixing a
// flat call with a deeply nested one yields only the flat one.
func (m *Matcher) Detect(text string) []Candidate {
	calls := decodeSpans(strictCallPattern.FindAllString(text, -1))
	if len(calls) == 0 {
		calls = scanBalancedObjects(text)
	}
	calls = append(calls, scanLabelPairs(text)...)
	calls = append(calls, m.scanCallSyntax(text)...)
	return calls
}

// decodeCandidate decodes span as a call object. The span must be a JSON
// object with a string "name" member and an "arguments" member of any
// shape; anything else is dropped silently.
func decodeCandidate(span string) (Candidate, bool) {
	obj, err := llm.ParseValue([]byte(span))
	if err != nil || obj.Kind() != llm.KindObject {
		return Candidate{}, false
	}
	name, ok := obj.StringField("name")
	if !ok {
		return Candidate{}, false
	}
	args, ok := obj.Field("arguments")
	if !ok {
		return Candidate{}, false
	}
	return Candidate{Name: name, Arguments: args}, true
}

func decodeSpans(spans []string) []Candidate {
	var calls []Candidate
	for _, span := range spans {
		if c, ok := decodeCandidate(span); ok {
			calls = append(calls, c)
		}
	}
	return calls
}

// scanBalancedObjects walks the text byte by byte tracking brace depth and
// decodes each top-level {...} span. Stray closing braces at depth zero are
// skipped. This recovers calls whose arguments nest too deeply for the
// strict pattern, at the cost of decoding every object in sight.
func scanBalancedObjects(text string) []Candidate {
	var calls []Candidate
	depth := 0
	start := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				if c, ok := decodeCandidate(text[start : i+1]); ok {
					calls = append(calls, c)
				}
				start = -1
			}
		}
	}
	return calls
}

func scanLabelPairs(text string) []Candidate {
	var calls []Candidate
	for _, groups := range labelPairPattern.FindAllStringSubmatch(text, -1) {
		args, err := llm.ParseValue([]byte(groups[2]))
		if err != nil {
			continue
		}
		calls = append(calls, Candidate{Name: groups[1], Arguments: args})
	}
	return calls
}

func (m *Matcher) scanCallSyntax(text string) []Candidate {
	var calls []Candidate
	for _, groups := range callSyntaxPattern.FindAllStringSubmatch(text, -1) {
		if !m.known[groups[1]] {
			continue
		}
		args, err := llm.ParseValue([]byte(groups[2]))
		if err != nil {
			continue
		}
		calls = append(calls, Candidate{Name: groups[1], Arguments: args})
	}
	return calls
}
