package app

// Prompt is the bounded, immutable prompt for one run. Re-rolls reuse the
// same Prompt; fresh randomness lives in the service call, not here.
type Prompt struct {
	System string
	User   string
}

// DefaultContextPrefix is the instruction preamble sent when the config does
// not override context_prefix.
const DefaultContextPrefix = `You are a helpful assistant which writes git commit messages for the given staged diff.
Write in the imperative mood. Keep the summary line at 72 characters or less, with no trailing period.
Follow this convention:
<type>: <summary>

[optional body explaining why]

[optional footer(s)]

Reply with the commit message only, no surrounding commentary.`

// BuildPrompt derives the prompt from the instruction preamble and the
// already-bounded diff. Pure: identical inputs always produce an identical
// prompt.
func BuildPrompt(contextPrefix string, diff StagedDiff) Prompt {
	if contextPrefix == "" {
		contextPrefix = DefaultContextPrefix
	}
	return Prompt{
		System: contextPrefix,
		User:   "```diff\n" + diff.Text + "\n```",
	}
}
