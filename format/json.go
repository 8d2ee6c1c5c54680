package format

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/tsawler/structura/model"
)

// JSONFormatter serializes the whole document tree as JSON.
type JSONFormatter struct {
	// Pretty indents the output for human consumption.
	Pretty bool
}

// NewJSONFormatter returns a pretty-printing JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Pretty: true}
}

// Format renders the document as JSON.
func (f *JSONFormatter) Format(doc *model.Document) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if f.Pretty {
		out, err = sonic.MarshalIndent(doc, "", "  ")
	} else {
		out, err = sonic.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode document as JSON: %w", err)
	}
	return out, nil
}
