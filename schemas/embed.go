// Package schemas embeds the JSON Schemas that define every structured artifact.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS
