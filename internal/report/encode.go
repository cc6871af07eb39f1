package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ginjaninja78/travel-booking-reports/internal/csvtable"
)

// Artifact is an encoded document or table ready to be written.
type Artifact struct {
	// FileName is the artifact name plus its extension, e.g. "regionSummary.csv".
	FileName string

	// Name is the artifact name without extension.
	Name string

	Data []byte
}

// EncodeJSON renders v as two-space indented JSON without HTML escaping and
// without a trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

// EncodeDocuments renders every document as JSON.
func (r *Report) EncodeDocuments() ([]Artifact, error) {
	docs := r.Documents()
	out := make([]Artifact, 0, len(docs))
	for _, doc := range docs {
		data, err := EncodeJSON(doc.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", doc.Name, err)
		}
		out = append(out, Artifact{FileName: doc.Name + ".json", Name: doc.Name, Data: data})
	}
	return out, nil
}

// EncodeTables renders every table as delimited text.
func (r *Report) EncodeTables() []Artifact {
	tables := r.Tables()
	out := make([]Artifact, 0, len(tables))
	for _, table := range tables {
		out = append(out, Artifact{
			FileName: table.Name + ".csv",
			Name:     table.Name,
			Data:     csvtable.Encode(table.Rows, table.Columns),
		})
	}
	return out
}
