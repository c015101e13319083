package profile

import (
	"bytes"
	_ "embed"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

// Compiled once at init; the schema is embedded, so failure here is a
// programming error.
var profileSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("profile.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("add profile schema resource: %v", err))
	}
	schema, err := compiler.Compile("profile.schema.json")
	if err != nil {
		panic(fmt.Sprintf("compile profile schema: %v", err))
	}
	return schema
}

// validateSchema checks a decoded JSON document against the profile schema
// and converts the validator's error tree into a flat issue list.
func validateSchema(doc any) []Issue {
	err := profileSchema.Validate(doc)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Issue{{Field: "(root)", Reason: err.Error()}}
	}

	var issues []Issue
	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		// Interior nodes repeat their children's messages; keep leaves only.
		if len(e.Causes) == 0 && e.Message != "" {
			field := e.InstanceLocation
			if field == "" {
				field = "(root)"
			}
			issues = append(issues, Issue{Field: field, Reason: e.Message})
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(validationErr)

	if len(issues) == 0 {
		issues = []Issue{{Field: "(root)", Reason: "document does not match the profile schema"}}
	}
	return issues
}
