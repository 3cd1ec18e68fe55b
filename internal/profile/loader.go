// Package profile loads and validates the candidate's master career profile.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resu/internal/schemas"
	"github.com/jonathan/resu/internal/types"
)

// DefaultPath is where the profile is read from when no path is configured
const DefaultPath = "data/profile.json"

// Source provides the current master profile
type Source interface {
	Profile(ctx context.Context) (*types.Profile, error)
}

// FileSource loads the profile from a JSON file once and caches it
type FileSource struct {
	path string

	mu      sync.Mutex
	profile *types.Profile
}

// NewFileSource creates a FileSource for path
func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultPath
	}
	return &FileSource{path: path}
}

// Path returns the file the source reads
func (s *FileSource) Path() string {
	return s.path
}

// Profile returns the cached profile, loading it on first use
func (s *FileSource) Profile(_ context.Context) (*types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile != nil {
		return s.profile, nil
	}
	p, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	s.profile = p
	return p, nil
}

// Reload drops the cached profile and reads the file again
func (s *FileSource) Reload() (*types.Profile, error) {
	p, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	return p, nil
}

// Static serves a fixed profile
type Static struct {
	Value *types.Profile
}

// Profile returns the fixed profile
func (s Static) Profile(_ context.Context) (*types.Profile, error) {
	if s.Value == nil {
		return nil, errors.New("no profile configured")
	}
	return s.Value, nil
}

// Load reads, validates and decodes a profile file
func Load(path string) (*types.Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{
				Path:    path,
				Message: "profile not found; copy data/profile.example.json and fill in your data",
				Cause:   err,
			}
		}
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, content)
}

// Parse validates profile JSON against the profile schema and struct rules
func Parse(path string, content []byte) (*types.Profile, error) {
	if err := schemas.ValidateBytes(schemas.Profile, content); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			issues := make([]Issue, 0, len(schemaErr.Errors))
			for _, fe := range schemaErr.Errors {
				issues = append(issues, Issue{Field: fe.Field, Message: fe.Message})
			}
			return nil, &ValidationError{Path: path, Issues: issues}
		}
		return nil, &LoadError{Path: path, Message: "failed to validate JSON", Cause: err}
	}

	var p types.Profile
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to unmarshal JSON", Cause: err}
	}

	if issues := checkProfile(&p); len(issues) > 0 {
		return nil, &ValidationError{Path: path, Issues: issues}
	}
	return &p, nil
}

var validate = validator.New()

// checkProfile applies the struct rules the schema cannot express
func checkProfile(p *types.Profile) []Issue {
	var issues []Issue

	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				issues = append(issues, Issue{
					Field:   fe.Namespace(),
					Message: fmt.Sprintf("failed %q rule", fe.Tag()),
				})
			}
		} else {
			issues = append(issues, Issue{Field: "(root)", Message: err.Error()})
		}
	}

	seen := make(map[string]bool, len(p.Experience))
	for i, exp := range p.Experience {
		if seen[exp.ID] {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("experience.%d.id", i),
				Message: fmt.Sprintf("duplicate experience id %q", exp.ID),
			})
		}
		seen[exp.ID] = true
	}
	return issues
}
