package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/bonsai/pkg/config"
	"github.com/yaklabco/bonsai/pkg/lower"
)

// ValidationError is one problem found in a configuration, located by
// dotted field path and, when known, by file.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult splits findings into errors, which stop loading, and
// warnings, which are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages lists errors then warnings, each prefixed with its severity.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks field values and kind names. A nil cfg is valid.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor))
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: yaml, cbor", cfg.Format))
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}

	if cfg.Dump.MaxTextWidth < 0 {
		result.addError("dump.max_text_width", cfg.Dump.MaxTextWidth,
			"max_text_width must be >= 0 (0 means terminal width)")
	}
	if cfg.Dump.MaxDepth < 0 {
		result.addError("dump.max_depth", cfg.Dump.MaxDepth,
			"max_depth must be >= 0 (0 means unlimited)")
	}

	switch cfg.Stats.SortBy {
	case "", config.SortByCount, config.SortByAlpha, config.SortByKind:
	default:
		result.addError("stats.sort_by", cfg.Stats.SortBy,
			fmt.Sprintf("invalid sort field %q; must be one of: count, alpha, kind", cfg.Stats.SortBy))
	}

	validateKinds(cfg, result)

	return result
}

// validateKinds rejects unusable kind names and warns when two names share
// a number or a name shadows one used by the Markdown lowering.
func validateKinds(cfg *config.Config, result *ValidationResult) {
	builtin := lower.KindNames()

	byNumber := make(map[uint16][]string)
	for _, name := range slices.Sorted(maps.Keys(cfg.Kinds)) {
		kind := cfg.Kinds[name]
		field := "kinds." + name

		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\n") {
			result.addError(field, name, fmt.Sprintf("invalid kind name %q; names must not contain whitespace", name))
			continue
		}
		if want, ok := builtin[name]; ok && uint16(want) != kind {
			result.addWarning(field, kind,
				fmt.Sprintf("kind %q is %d in Markdown trees; %d will be used", name, want, kind))
		}
		byNumber[kind] = append(byNumber[kind], name)
	}

	for _, kind := range slices.Sorted(maps.Keys(byNumber)) {
		if names := byNumber[kind]; len(names) > 1 {
			result.addWarning("kinds", kind,
				fmt.Sprintf("kind %d has several names (%s); %q is printed", kind, strings.Join(names, ", "), shortest(names)))
		}
	}
}

// shortest returns the name treefile prints for a kind with several names.
func shortest(names []string) string {
	best := names[0]
	for _, name := range names[1:] {
		if len(name) < len(best) || (len(name) == len(best) && name < best) {
			best = name
		}
	}
	return best
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, findings := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	return result
}
