// Package llm - extractor.go describes the JSON shape a completion must return.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the JSON object a structured completion must produce.
// It is rendered into the system prompt so every step states its output contract
// the same way.
type ExtractionSchema struct {
	Name   string        // Schema name (e.g., "ParsedJobDescription")
	Fields []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint rendered verbatim, e.g. "string" or ["string"]
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildOutputInstructions renders the output contract appended to a step's system prompt.
func BuildOutputInstructions(schema ExtractionSchema) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Return ONLY a valid JSON object (%s) matching this exact structure:\n{\n", schema.Name))
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Use exactly these camelCase field names; do not wrap the object in another key.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}

// --- Predefined Schemas ---

// JobDescriptionSchema is the output contract of the parse step.
func JobDescriptionSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ParsedJobDescription",
		Fields: []SchemaField{
			{Name: "companyName", Description: "Hiring company", Required: true},
			{Name: "roleTitle", Description: "Role title as posted", Required: true},
			{Name: "seniorityLevel", Type: `"intern|junior|mid|senior|staff|principal|lead|manager|director|unknown"`, Required: true},
			{Name: "requiredSkills", Type: `["string"]`, Description: "Hard requirements", Required: true},
			{Name: "preferredSkills", Type: `["string"]`, Description: "Preferred but optional skills", Required: true},
			{Name: "keywords", Type: `["string"]`, Description: "Other ATS keywords from the posting", Required: true},
			{Name: "responsibilities", Type: `["string"]`, Required: true},
			{Name: "qualifications", Type: `["string"]`, Required: true},
			{Name: "niceToHaves", Type: `["string"]`, Required: true},
			{Name: "industryDomain", Type: `"string" | null`},
			{Name: "teamSize", Type: `"string" | null`},
			{Name: "techStack", Type: `["string"]`, Description: "Named technologies", Required: true},
		},
	}
}

// RelevanceSelectionSchema is the output contract of the select step.
func RelevanceSelectionSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "RelevanceSelection",
		Fields: []SchemaField{
			{Name: "proposedSummary", Description: "Tailored professional summary", Required: true},
			{
				Name:        "selectedExperiences",
				Type:        `[{"experienceId": "string", "include": true, "selectedBullets": [{"experienceId": "string", "bulletIndex": 0, "originalText": "string", "relevanceScore": 0, "matchedKeywords": ["string"]}]}]`,
				Description: "bulletIndex is the zero-based index into the profile experience's bullets; relevanceScore is 0-100",
				Required:    true,
			},
			{Name: "selectedSkills", Type: `["string"]`, Description: "Skill names from the profile", Required: true},
			{Name: "selectedProjects", Type: `["string"]`, Description: "Project ids from the profile", Required: true},
			{Name: "selectedCertifications", Type: `["string"]`, Description: "Certification ids from the profile", Required: true},
			{Name: "overallMatchScore", Type: "number", Description: "0-100", Required: true},
		},
	}
}

// ResumeDataSchema is the output contract of the generate step.
func ResumeDataSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeData",
		Fields: []SchemaField{
			{Name: "contact", Type: `{"name": "string", "email": "string", "phone": "string", "location": "string", "linkedin": "string", "github": "string", "website": "string"}`, Required: true},
			{Name: "summary", Required: true},
			{Name: "experience", Type: `[{"title": "string", "company": "string", "location": "string", "startDate": "string", "endDate": "string", "bullets": ["string"]}]`, Description: "omit endDate for a current role", Required: true},
			{Name: "education", Type: `[{"institution": "string", "degree": "string", "field": "string", "startDate": "string", "endDate": "string", "gpa": "string", "highlights": ["string"]}]`, Required: true},
			{Name: "skills", Type: `{"categories": [{"name": "string", "skills": ["string"]}]}`, Required: true},
			{Name: "projects", Type: `[{"name": "string", "description": "string", "url": "string", "highlights": ["string"]}]`, Required: true},
			{Name: "certifications", Type: `[{"name": "string", "issuer": "string", "date": "string"}]`, Required: true},
		},
	}
}

// CoverLetterSchema is the output contract of the cover-letter step.
func CoverLetterSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "CoverLetterData",
		Fields: []SchemaField{
			{Name: "opening", Description: "Opening paragraph", Required: true},
			{Name: "bodyParagraphs", Type: `["string"]`, Required: true},
			{Name: "closing", Description: "Closing paragraph", Required: true},
			{Name: "tone", Type: `"formal|professional|conversational"`, Required: true},
		},
	}
}
