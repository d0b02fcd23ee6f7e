// Package config loads expression inputs from YAML files and command-line
// assignments.
//
// File format:
//
//	expression: sin(a*b + 2) + sqrt(c/4)
//	schedule: tape
//	inputs:
//	  a: 2
//	  b: 3
//	  c: {value: 1, requires_grad: false}
//
// A scalar input requires gradient; the mapping form can mark it constant.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input is one named scalar input.
type Input struct {
	Value        float64 `yaml:"value" validate:"finite"`
	RequiresGrad bool    `yaml:"requires_grad"`
}

// UnmarshalYAML accepts either a bare number or a {value, requires_grad}
// mapping. Unknown mapping keys are rejected.
func (in *Input) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var value float64
		if err := node.Decode(&value); err != nil {
			return fmt.Errorf("line %d: input must be a number: %w", node.Line, err)
		}
		*in = Input{Value: value, RequiresGrad: true}
		return nil

	case yaml.MappingNode:
		// node.Decode would start a decoder without KnownFields, so the
		// keys are walked by hand.
		var value *float64
		requiresGrad := true
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			switch key.Value {
			case "value":
				var v float64
				if err := val.Decode(&v); err != nil {
					return fmt.Errorf("line %d: value must be a number: %w", val.Line, err)
				}
				value = &v
			case "requires_grad":
				if err := val.Decode(&requiresGrad); err != nil {
					return fmt.Errorf("line %d: requires_grad must be a boolean: %w", val.Line, err)
				}
			default:
				return fmt.Errorf("line %d: %w: field %q in input mapping", key.Line, ErrUnknownField, key.Value)
			}
		}
		if value == nil {
			return fmt.Errorf("line %d: input mapping needs a value", node.Line)
		}
		*in = Input{Value: *value, RequiresGrad: requiresGrad}
		return nil

	default:
		return fmt.Errorf("line %d: input must be a number or a mapping", node.Line)
	}
}

// File is a parsed input file.
type File struct {
	Expression string           `yaml:"expression"`
	Schedule   string           `yaml:"schedule,omitempty" validate:"omitempty,oneof=tape countdown"`
	Inputs     map[string]Input `yaml:"inputs" validate:"omitempty,dive,keys,identifier,endkeys"`
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a YAML document. Unknown fields are rejected.
// An empty document yields an empty File.
func Parse(data []byte) (*File, error) {
	f := &File{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse input file: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the schedule name and input names, then input values.
// The first failure by field path is returned as a *ValidationError.
func (f *File) Validate() error {
	if err := validationError(validate.Struct(f), ""); err != nil {
		return err
	}
	for _, name := range f.Names() {
		if err := validationError(validate.Struct(f.Inputs[name]), "inputs."+name); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the input names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Inputs))
	for name := range f.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge overrides or adds inputs.
func (f *File) Merge(overrides map[string]Input) {
	if f.Inputs == nil {
		f.Inputs = make(map[string]Input, len(overrides))
	}
	for name, in := range overrides {
		f.Inputs[name] = in
	}
}

// ParseAssignment parses a "name=value" flag into a named input.
func ParseAssignment(s string, requiresGrad bool) (string, Input, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", Input{}, fmt.Errorf("%w: %q: want name=value", ErrInvalidAssignment, s)
	}
	if validate.Var(name, "identifier") != nil {
		return "", Input{}, fmt.Errorf("%w: %q: name must be an identifier", ErrInvalidAssignment, s)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", Input{}, fmt.Errorf("%w: %q: %w", ErrInvalidAssignment, s, err)
	}
	return name, Input{Value: value, RequiresGrad: requiresGrad}, nil
}
