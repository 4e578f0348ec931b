package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tabtidy/internal/tabs"
)

type wireGroup struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	TabIDs []int64 `json:"tabIds"`
}

type wireResult struct {
	TabsToClose []int64     `json:"tabsToClose"`
	TabGroups   []wireGroup `json:"tabGroups"`
	Reasoning   string      `json:"reasoning"`
}

var groupTitler = cases.Title(language.English, cases.NoLower)

// DecodeResult parses a raw provider completion into a Result. The
// payload may be wrapped in prose or a code fence; decoding falls back
// to the substring between the first '{' and the last '}'. Unknown ids
// are kept here (the safety filter reconciles against the live set);
// unknown colors fall back to grey, empty groups are dropped, and the
// group list is capped.
func DecodeResult(payload string) (Result, error) {
	var wire wireResult
	if err := decodeTolerant(payload, &wire); err != nil {
		return Result{}, err
	}

	result := Result{
		CloseIDs:  dedupeIDs(wire.TabsToClose),
		Rationale: strings.TrimSpace(wire.Reasoning),
	}
	for _, group := range wire.TabGroups {
		ids := dedupeIDs(group.TabIDs)
		if len(ids) == 0 {
			continue
		}
		result.Groups = append(result.Groups, tabs.Group{
			Name:   normalizeGroupName(group.Name),
			Color:  tabs.ParseColor(group.Color),
			TabIDs: ids,
		})
		if len(result.Groups) == MaxGroups {
			break
		}
	}
	return result, nil
}

// Fallback builds the trivial classification used whenever a provider
// fails: close nothing and gather every input id into one group.
func Fallback(providerName string, ids []int64) Result {
	return Result{
		Groups: []tabs.Group{{
			Name:   "All Tabs",
			Color:  tabs.ColorPurple,
			TabIDs: append([]int64(nil), ids...),
		}},
		Rationale: fmt.Sprintf("%s error - basic grouping applied", providerName),
		Fallback:  true,
	}
}

func decodeTolerant(content string, target any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errors.New("empty payload")
	}

	directErr := json.Unmarshal([]byte(trimmed), target)
	if directErr == nil {
		return nil
	}

	sanitized := sanitizePayload(trimmed)
	if sanitized == "" || sanitized == trimmed {
		return fmt.Errorf("%w (payload snippet: %s)", directErr, payloadSnippet(trimmed))
	}
	if err := json.Unmarshal([]byte(sanitized), target); err != nil {
		return fmt.Errorf("%w (sanitized payload snippet: %s)", err, payloadSnippet(sanitized))
	}
	return nil
}

func sanitizePayload(content string) string {
	trimmed := strings.TrimSpace(stripCodeFence(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '{' {
		return trimmed
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := trimmed[3:]
	body = strings.TrimLeft(body, " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

func payloadSnippet(content string) string {
	const limit = 160
	snippet := strings.Join(strings.Fields(content), " ")
	if len(snippet) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut] + "..."
	}
	return fmt.Sprintf("%q", snippet)
}

func normalizeGroupName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Group"
	}
	return groupTitler.String(name)
}

func dedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
