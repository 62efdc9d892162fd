package domain

import "strconv"

// DedupeKey groups issues that likely share one underlying layout bug.
func DedupeKey(is OverflowIssue) string {
	if is.HasSource() {
		return is.SourceFile + ":" + strconv.Itoa(is.SourceLine)
	}
	return is.TextContent
}

// Dedupe collapses each result's issues by DedupeKey, keeping the highest
// severity and the first issue on ties. Inputs are not modified.
func Dedupe(results []AuditResult) []AuditResult {
	out := make([]AuditResult, 0, len(results))
	for _, r := range results {
		out = append(out, dedupeResult(r))
	}
	return out
}

func dedupeResult(r AuditResult) AuditResult {
	index := make(map[string]int)
	kept := make([]OverflowIssue, 0, len(r.Issues))

	for _, is := range r.Issues {
		key := DedupeKey(is)
		pos, seen := index[key]
		if !seen {
			index[key] = len(kept)
			kept = append(kept, is)
			continue
		}
		if SeverityRank(is.Severity) > SeverityRank(kept[pos].Severity) {
			kept[pos] = is
		}
	}

	r.Issues = kept
	r.IssueCount = len(kept)
	return r
}
