package domain

import (
	"context"
	"fmt"
)

// Document is the raw text extracted from one source file. It only lives
// for the duration of an ingestion run.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a bounded slice of a document's text used as the unit of retrieval.
type Chunk struct {
	DocumentID string
	Text       string
	Index      int
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// GenerateRequest carries everything a generator may need to answer a question.
// Prompt is the fully assembled instruction; Question and Passages are the raw
// parts it was built from.
type GenerateRequest struct {
	Prompt   string
	Question string
	Passages []string
}

// Generator turns a grounded prompt into an answer.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (Reply, error)
}

// ReplyKind tags the shape of a generator response.
type ReplyKind int

const (
	ReplyGenerated ReplyKind = iota
	ReplySummary
	ReplyAPIError
	ReplyUnrecognized
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyGenerated:
		return "generated"
	case ReplySummary:
		return "summary"
	case ReplyAPIError:
		return "api_error"
	case ReplyUnrecognized:
		return "unrecognized"
	default:
		return fmt.Sprintf("ReplyKind(%d)", int(k))
	}
}

// Reply is the answer returned by a generator.
type Reply struct {
	Kind       ReplyKind
	Text       string
	StatusCode int
	Raw        string
}

// String renders the reply the way it is shown to the operator.
func (r Reply) String() string {
	switch r.Kind {
	case ReplyAPIError:
		return fmt.Sprintf("API Error %d: %s", r.StatusCode, r.Raw)
	case ReplyUnrecognized:
		return r.Raw
	default:
		return r.Text
	}
}
