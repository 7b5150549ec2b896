// Research request construction.

package research

import (
	"fmt"
	"strings"
)

// ResearchRequest is the immutable request handed to the execution bridge.
// Constructed once, never mutated.
type ResearchRequest struct {
	Query     string
	Config    SessionConfiguration
	Documents DocumentBundle
	Streaming bool
}

// NewResearchRequest trims and validates the query and attaches the session
// configuration and document bundle. An empty or whitespace-only query is
// rejected before any engine interaction.
func NewResearchRequest(query string, config SessionConfiguration, documents DocumentBundle, streaming bool) (ResearchRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return ResearchRequest{}, &ValidationError{Message: "empty query"}
	}

	return ResearchRequest{
		Query:     query,
		Config:    config,
		Documents: documents,
		Streaming: streaming,
	}, nil
}

// UploadedContent concatenates the bundle's documents into a single labeled
// text block, each document prefixed with a header carrying its filename.
// Returns "" when the bundle is empty.
func (r ResearchRequest) UploadedContent() string {
	if r.Documents.Empty() {
		return ""
	}

	blocks := make([]string, 0, len(r.Documents.Documents))
	for _, doc := range r.Documents.Documents {
		blocks = append(blocks, fmt.Sprintf("=== File: %s ===\n%s\n", doc.Name, doc.Text))
	}
	return strings.Join(blocks, "\n\n")
}
