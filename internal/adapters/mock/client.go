package mock

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/commitgpt/commitgpt/internal/ports"
)

// Client is an offline ports.Completer for trying the tool without an API
// key (provider = "mock").
type Client struct{}

// NewClient creates the mock completer.
func NewClient() *Client {
	return &Client{}
}

var templates = []struct {
	summary string
	body    string
}{
	{"feat: add new functionality", "Introduces new behavior covering the staged changes."},
	{"fix: resolve defect in changed code", "Addresses an issue surfaced by the staged changes."},
	{"refactor: simplify changed code paths", "Restructures the touched code without changing behavior."},
	{"docs: update documentation", "Brings documentation in line with the staged changes."},
	{"chore: routine maintenance", "Housekeeping across the files touched by this change."},
	{"test: extend coverage for changed code", "Adds tests around the staged changes."},
}

// Complete returns req.N deterministic candidates derived from the diff
// content, so repeated runs on the same staged state look stable.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) ([]string, error) {
	h := fnv.New64a()
	h.Write([]byte(req.User))
	seed := h.Sum64()

	batch := make([]string, 0, req.N)
	for i := 0; i < req.N; i++ {
		t := templates[int((seed+uint64(i))%uint64(len(templates)))]
		batch = append(batch, fmt.Sprintf("%s\n\n%s", t.summary, t.body))
	}
	return batch, nil
}
