package types

import (
	"fmt"
	"go/token"

	"gopkg.in/yaml.v3"

	"github.com/fmtlint/fmtlint/internal/diff"
)

// Severity is the reporting level attached to an issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
	SeverityOff:     "off",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalYAML encodes the severity by name.
func (s Severity) MarshalYAML() (any, error) {
	name, ok := severityNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
	return name, nil
}

// UnmarshalYAML decodes a severity by name.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	for sev, n := range severityNames {
		if n == name {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", name)
}

// Issue represents a formatting difference found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Severity   Severity
	Start      token.Position
	End        token.Position

	// Edit carries the machine-applicable change backing this issue; nil for
	// issues that are not fixable.
	Edit *diff.Edit
}

// Fixable reports whether the issue carries an applicable edit.
func (i Issue) Fixable() bool {
	return i.Edit != nil
}
