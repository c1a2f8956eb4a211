package domain

import "strings"

// Candidate is a normalized commit-message candidate: trimmed, no trailing
// space on any line, internal blank-line runs collapsed to one, never empty.
type Candidate string

// NewCandidate normalizes one raw completion into a Candidate. The second
// return value is false when nothing usable remains.
func NewCandidate(raw string) (Candidate, bool) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank = true
			continue
		}
		// Commit messages separate summary and body with a blank line;
		// keep one, drop runs.
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}

	msg := strings.TrimSpace(strings.Join(out, "\n"))
	if msg == "" {
		return "", false
	}
	return Candidate(msg), true
}

// Summary returns the first line, which is what selection lists display.
func (c Candidate) Summary() string {
	if i := strings.IndexByte(string(c), '\n'); i >= 0 {
		return string(c[:i])
	}
	return string(c)
}

func (c Candidate) String() string {
	return string(c)
}
