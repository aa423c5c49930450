package param

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExclusionRule marks parameters that become non-editable while a trigger
// parameter holds a specific value. Rules come from the camera definition.
type ExclusionRule struct {
	// Param is the trigger parameter name.
	Param string `yaml:"param"`

	// Value is the trigger raw value, compared against the parameter's
	// formatted current value.
	Value string `yaml:"value"`

	// Excludes lists the parameters removed from the editable set while
	// the rule is active.
	Excludes []string `yaml:"excludes"`
}

// Matches reports whether the rule is active given the registry's current
// values.
func (r *ExclusionRule) Matches(reg Registry) bool {
	p, ok := reg.Get(r.Param)
	if !ok || !p.Loaded() {
		return false
	}
	return p.ValueString() == r.Value
}

// Definition is a parsed camera definition file.
type Definition struct {
	// Vendor and Model identify the camera. Variant detection matches
	// substrings of Model.
	Vendor string `yaml:"vendor"`
	Model  string `yaml:"model"`

	// Version is the definition file revision.
	Version int `yaml:"version"`

	// Parameters in definition order.
	Parameters []DefinitionParam `yaml:"parameters"`

	// Rules are the option-exclusion rules.
	Rules []ExclusionRule `yaml:"rules"`
}

// DefinitionParam is one parameter entry of a definition file.
type DefinitionParam struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Default     any               `yaml:"default"`
	ReadOnly    bool              `yaml:"readonly"`
	Description string            `yaml:"description"`
	Options     []DefinitionOption `yaml:"options"`
}

// DefinitionOption is one enumerated value of a definition parameter.
type DefinitionOption struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// ParseDefinition parses a YAML camera definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("definition parse error: %w", err)
	}

	seen := make(map[string]bool, len(def.Parameters))
	for _, p := range def.Parameters {
		if p.Name == "" {
			return nil, fmt.Errorf("definition has a parameter without a name")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate parameter %q in definition", p.Name)
		}
		seen[p.Name] = true
		if _, err := parseDataType(p.Type); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
	}

	for _, rule := range def.Rules {
		if !seen[rule.Param] {
			return nil, fmt.Errorf("exclusion rule references unknown parameter %q", rule.Param)
		}
	}

	return &def, nil
}

// LoadDefinition reads and parses a YAML camera definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDefinition(data)
}

// BuildRegistry creates a registry holding one parameter per definition
// entry, in definition order.
func (d *Definition) BuildRegistry() (*MemoryRegistry, error) {
	reg := NewMemoryRegistry()
	for _, dp := range d.Parameters {
		dt, err := parseDataType(dp.Type)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", dp.Name, err)
		}

		var opts []Option
		for _, o := range dp.Options {
			opts = append(opts, Option{Name: o.Name, Value: normalizeYAML(o.Value)})
		}

		p := NewParameter(&Metadata{
			Name:        dp.Name,
			Type:        dt,
			Options:     opts,
			ReadOnly:    dp.ReadOnly,
			Default:     normalizeYAML(dp.Default),
			Description: dp.Description,
		})
		if err := reg.Add(p); err != nil {
			return nil, err
		}
	}
	reg.SetRules(d.Rules)
	return reg, nil
}

// parseDataType maps a definition type string to a DataType.
func parseDataType(s string) (DataType, error) {
	switch s {
	case "bool":
		return TypeBool, nil
	case "uint32":
		return TypeUint32, nil
	case "int32":
		return TypeInt32, nil
	case "float64", "":
		return TypeFloat64, nil
	case "string":
		return TypeString, nil
	case "bytes":
		return TypeBytes, nil
	default:
		return TypeUnknown, fmt.Errorf("unknown data type %q", s)
	}
}

// normalizeYAML widens YAML scalar ints so option matching does not depend
// on the decoder's choice of integer width.
func normalizeYAML(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case uint:
		return int64(n)
	case uint64:
		return int64(n)
	default:
		return v
	}
}
