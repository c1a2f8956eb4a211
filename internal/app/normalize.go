package app

import "github.com/commitgpt/commitgpt/internal/domain"

// NormalizeBatch turns raw completions into an ordered, deduplicated
// candidate list. First occurrence wins; empty results are dropped. An empty
// outcome is ErrNoUsableSuggestions, distinct from transport failures: the
// request succeeded but yielded nothing usable.
func NormalizeBatch(batch []string) ([]domain.Candidate, error) {
	seen := make(map[domain.Candidate]struct{}, len(batch))
	out := make([]domain.Candidate, 0, len(batch))
	for _, raw := range batch {
		c, ok := domain.NewCandidate(raw)
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrNoUsableSuggestions
	}
	return out, nil
}
