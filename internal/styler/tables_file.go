package styler

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// TablesFile is the YAML form of the category tables. A non-empty section
// replaces the corresponding table; an absent or empty one keeps it.
type TablesFile struct {
	Keywords  []string `yaml:"keywords,omitempty"`
	Operators []string `yaml:"operators,omitempty"`
	Brackets  []string `yaml:"brackets,omitempty"`
	Modules   []string `yaml:"modules,omitempty"`
	Builtins  []string `yaml:"builtins,omitempty"`
}

// LoadTablesFile reads and parses a YAML tables file.
func LoadTablesFile(filename string) (*TablesFile, error) {
	data, err := os.ReadFile(filename) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file '%s': %w", filename, err)
	}
	return ParseTablesFile(data, filename)
}

// ParseTablesFile parses YAML tables file content. name is used in errors.
func ParseTablesFile(data []byte, name string) (*TablesFile, error) {
	var f TablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in tables file '%s': %w", name, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid tables file '%s': %w", name, err)
	}
	return &f, nil
}

func (f *TablesFile) validate() error {
	sections := []struct {
		name  string
		words []string
	}{
		{"keywords", f.Keywords},
		{"operators", f.Operators},
		{"brackets", f.Brackets},
		{"modules", f.Modules},
		{"builtins", f.Builtins},
	}
	for _, s := range sections {
		for i, w := range s.words {
			if w == "" {
				return fmt.Errorf("%s entry %d is empty", s.name, i)
			}
		}
	}
	return nil
}

// ApplyTablesFile returns spec with every non-empty section of f replacing
// the matching table.
func ApplyTablesFile(spec TableSpec, f *TablesFile) TableSpec {
	if f == nil {
		return spec
	}
	replace := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = slices.Clone(src)
		}
	}
	replace(&spec.Keywords, f.Keywords)
	replace(&spec.Operators, f.Operators)
	replace(&spec.Brackets, f.Brackets)
	replace(&spec.Modules, f.Modules)
	replace(&spec.Builtins, f.Builtins)
	return spec
}

// SpecToTablesFile converts spec into its YAML file form.
func SpecToTablesFile(spec TableSpec) *TablesFile {
	return &TablesFile{
		Keywords:  slices.Clone(spec.Keywords),
		Operators: slices.Clone(spec.Operators),
		Brackets:  slices.Clone(spec.Brackets),
		Modules:   slices.Clone(spec.Modules),
		Builtins:  slices.Clone(spec.Builtins),
	}
}

// Marshal encodes f as YAML.
func (f *TablesFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tables to YAML: %w", err)
	}
	return data, nil
}
