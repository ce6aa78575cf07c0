package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var resumeSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(resumeSchema)

// Validate checks a resume against the embedded draft schema. The error
// message lists every violation.
func Validate(r Resume) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(r))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid resume: %s", strings.Join(msgs, "; "))
}
