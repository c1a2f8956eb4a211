package security

import "regexp"

// Redactor scrubs credential-looking strings before a diff leaves the
// machine and before anything is written to the error log.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor builds a redactor with the default pattern set.
func NewRedactor() *Redactor {
	return &Redactor{patterns: []*regexp.Regexp{
		// OpenAI-style keys
		regexp.MustCompile(`sk-[a-zA-Z0-9_\-]{20,}`),
		// AWS access keys
		regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		// GitHub tokens
		regexp.MustCompile(`gh[pous]_[a-zA-Z0-9]{36}`),
		// Google API keys
		regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),
		// Bearer headers
		regexp.MustCompile(`(?i)(?:authorization|auth|token):\s*Bearer\s+[a-zA-Z0-9._\-]+`),
		// key/password assignments in config-ish lines
		regexp.MustCompile(`(?i)"(?:api_key|apiKey|API_KEY)"\s*:\s*"[^"]+"`),
		regexp.MustCompile(`(?i)(?:password|passwd|pwd)\s*[:=]\s*"[^"]+"`),
		// PEM private key headers
		regexp.MustCompile(`-----BEGIN (?:RSA |DSA |EC |OPENSSH )?PRIVATE KEY-----`),
	}}
}

// Redact replaces every sensitive match with a placeholder.
func (r *Redactor) Redact(text string) string {
	for _, p := range r.patterns {
		text = p.ReplaceAllString(text, "[REDACTED]")
	}
	return text
}

// RedactLog additionally strips emails and IP addresses; log lines need
// less fidelity than prompts.
func (r *Redactor) RedactLog(text string) string {
	text = r.Redact(text)
	text = ipPattern.ReplaceAllString(text, "[IP]")
	text = emailPattern.ReplaceAllString(text, "[EMAIL]")
	return text
}

// ContainsSecret reports whether text matches any sensitive pattern, used
// for warnings before sending.
func (r *Redactor) ContainsSecret(text string) bool {
	for _, p := range r.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

var (
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
)
