package classify

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the batch prompt for a request. The encoding is
// deterministic: tabs appear in request order with their id, title,
// URL, and a bounded snapshot summary, followed by the threshold and
// the required output schema.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are organizing a user's open browser tabs.\n")
	b.WriteString("Rate each tab's importance from 1 (disposable) to 10 (critical), ")
	fmt.Fprintf(&b, "then select tabs below importance %d to close and cluster the rest into named groups.\n\n", req.Threshold)
	b.WriteString("Tabs:\n")
	for _, tab := range req.Tabs {
		fmt.Fprintf(&b, "- id=%d title=%q url=%q", tab.ID, tab.Title, tab.URL)
		if summary := tab.Snapshot.Summary(req.SnapshotLimit); summary != "" {
			fmt.Fprintf(&b, " content=%q", summary)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- Never invent tab ids; use only the ids listed above.\n")
	fmt.Fprintf(&b, "- Create at most %d groups and give each a short name and a color from: grey, blue, red, yellow, green, pink, purple, cyan, orange.\n", MaxGroups)
	b.WriteString("- Every tab you do not close should appear in exactly one group.\n")
	b.WriteString("\nRespond with JSON only, matching exactly this schema:\n")
	b.WriteString(`{"tabsToClose":[1,2],"tabGroups":[{"name":"Research","color":"blue","tabIds":[3,4]}],"reasoning":"short explanation"}`)
	b.WriteString("\n")
	return b.String()
}
