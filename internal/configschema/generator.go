// Package configschema holds the JSON Schema for the optional
// .pathlock.jsonc policy file. The policy shape is five fields, so the
// schema is written out by hand rather than derived by reflection; the
// package test keeps it honest against policy.PolicyFile.
package configschema

import "encoding/json"

// SchemaID is the canonical raw URL for the published schema, checked in
// at docs/schema/pathlock.schema.json.
const SchemaID = "https://raw.githubusercontent.com/pathlock/pathlock/main/docs/schema/pathlock.schema.json"

type property struct {
	Type        any       `json:"type,omitempty"`
	Format      string    `json:"format,omitempty"`
	Description string    `json:"description,omitempty"`
	Items       *property `json:"items,omitempty"`
}

type document struct {
	Schema               string              `json:"$schema"`
	ID                   string              `json:"$id"`
	Title                string              `json:"title"`
	Type                 string              `json:"type"`
	AdditionalProperties bool                `json:"additionalProperties"`
	Properties           map[string]property `json:"properties"`
}

func stringList(description string) property {
	return property{
		Type:        "array",
		Description: description,
		Items:       &property{Type: "string"},
	}
}

// Generate renders the policy-file schema. additionalProperties stays
// false so a typo'd key is flagged in schema-aware editors instead of
// silently ignored.
func Generate() ([]byte, error) {
	doc := document{
		Schema:               "https://json-schema.org/draft/2020-12/schema",
		ID:                   SchemaID,
		Title:                "pathlock policy file",
		Type:                 "object",
		AdditionalProperties: false,
		Properties: map[string]property{
			"$schema": {
				Type:        "string",
				Format:      "uri",
				Description: "Editor hint pointing at this schema; ignored by pathlock.",
			},
			"extends": {
				Type:        "string",
				Description: "Another policy file whose values are layered underneath this one, resolved relative to this file.",
			},
			"blockedPaths": stringList("Absolute path prefixes to deny: a path equal to an entry or beneath it is blocked."),
			"blockedGlobs": stringList("doublestar glob patterns denied in addition to the literal prefixes."),
			"blockedCommands": stringList("Command names resolved to absolute executable paths at load time and folded into the blocked prefixes."),
			"debug": {
				Type:        []string{"boolean", "null"},
				Description: "Emit a decision trace to stderr.",
			},
		},
	}
	return json.MarshalIndent(doc, "", "  ")
}
