package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawDefinition is the YAML shape of a configuration definition file.
type RawDefinition struct {
	RCIErrors    *ErrorMap `yaml:"rci_errors"`
	GlobalErrors ErrorMap  `yaml:"global_errors"`
	Setting      []Group   `yaml:"setting"`
	State        []Group   `yaml:"state"`
}

// Model converts the raw definition into a ConfigModel. When the definition
// has no rci_errors section the DefaultRCIErrors set is used.
func (d *RawDefinition) Model() *ConfigModel {
	rci := DefaultRCIErrors()
	if d.RCIErrors != nil {
		rci = *d.RCIErrors
	}
	m := NewConfigModel(rci)
	m.GlobalErrors = d.GlobalErrors
	for _, g := range d.Setting {
		m.AddGroup(CategorySetting, g)
	}
	for _, g := range d.State {
		m.AddGroup(CategoryState, g)
	}
	return m
}

// Parse parses and validates a configuration definition from YAML bytes.
func Parse(data []byte) (*ConfigModel, error) {
	var def RawDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: parsing config definition: %w", ErrModelIntegrity, err)
	}
	m := def.Model()
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads, parses and validates a configuration definition file.
func Load(path string) (*ConfigModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
