package toolparse

import (
	"fmt"
	"strings"

	"github.com/martinemde/ralph/llm"
)

// Extraction is the call list recovered from one completion turn plus the
// reasoning text left over once call JSON is cut out.
type Extraction struct {
	Calls     []llm.ToolCall
	Reasoning string
}

// Extract reconciles a turn's native structured calls with text-mined ones.
// Native calls pass through verbatim and skip text mining entirely, keeping
// their ids and argument values exactly as the provider issued them. When
// there are none, the matcher runs over the content: mined calls get
// synthetic text_tool_<k> ids in discovery order and each call's canonical
// encoding is removed from the reasoning text. A turn with no calls at all
// returns the content untouched.
func Extract(resp *llm.Response, matcher *Matcher) Extraction {
	if len(resp.ToolCalls) > 0 {
		return Extraction{Calls: resp.ToolCalls, Reasoning: resp.Content}
	}

	candidates := matcher.Detect(resp.Content)
	if len(candidates) == 0 {
		return Extraction{Reasoning: resp.Content}
	}

	calls := make([]llm.ToolCall, len(candidates))
	cleaned := resp.Content
	for i, c := range candidates {
		calls[i] = llm.ToolCall{
			ID:        fmt.Sprintf("text_tool_%d", i),
			Name:      c.Name,
			Arguments: c.Arguments,
			Origin:    llm.OriginSynthesized,
		}
		// Candidates mined from compact JSON re-encode to their source span
		// and vanish from the reasoning; reformatted spans stay behind,
		// which is harmless noise in a transcript.
		cleaned = strings.ReplaceAll(cleaned, llm.EncodeCall(c.Name, c.Arguments), "")
	}
	return Extraction{Calls: calls, Reasoning: strings.TrimSpace(cleaned)}
}
