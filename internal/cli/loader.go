package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/riskcast/internal/model"
)

// Loader error codes (E001-E009)
const (
	ErrCodeGeneric     = "E001" // generic/unknown error
	ErrCodeNotFound    = "E002" // project file not found
	ErrCodeParseFailed = "E003" // YAML parse failed
	ErrCodeInvalid     = "E004" // configuration failed validation
)

// LoadError represents an error that occurred while loading a project file.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// projectFile is the on-disk shape of a project configuration.
type projectFile struct {
	Name   string        `yaml:"name"`
	Stages []model.Stage `yaml:"stages"`
}

// LoadProject reads a YAML project file and constructs a validated
// Project.
//
// The decoder rejects unknown fields so typos like "impact_mn:" fail
// loudly instead of silently defaulting. Validation errors come back as
// model.ValidationErrors wrapped in a LoadError-coded message; callers
// that need the individual violations use LoadProjectErrors.
func LoadProject(path string) (*model.Project, error) {
	p, errs, err := LoadProjectErrors(path)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return p, nil
}

// LoadProjectErrors is LoadProject with validation violations surfaced
// individually. The error return covers I/O and parse failures only.
func LoadProjectErrors(path string) (*model.Project, model.ValidationErrors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("project file not found: %s", path)}
		}
		return nil, nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading project file: %v", err)}
	}

	var file projectFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&file); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing %s: %v", path, err)}
	}

	project, err := model.NewProject(file.Name, file.Stages)
	if err != nil {
		var errs model.ValidationErrors
		if errors.As(err, &errs) {
			return nil, errs, nil
		}
		return nil, nil, &LoadError{Code: ErrCodeInvalid, Message: err.Error()}
	}

	return project, nil, nil
}
