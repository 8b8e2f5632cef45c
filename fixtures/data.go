package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed fixture_data.yml
var defaultData []byte

// Data is what the fixture server serves.
type Data struct {
	PageTitle string `json:"pageTitle" yaml:"pageTitle"`
	Todos     []Todo `json:"todos" yaml:"todos"`
}

// Todo is one item of the resource endpoint.
type Todo struct {
	UserID    int    `json:"userId" yaml:"userId"`
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// DefaultData returns the built-in fixture data.
func DefaultData() Data {
	var d Data
	if err := ParseJSONOrYAML(defaultData, &d); err != nil {
		panic(fmt.Errorf("built-in fixture data is malformed: %w", err))
	}
	return d
}

// LoadData reads fixture data from a JSON or YAML file.
func LoadData(path string) (Data, error) {
	raw, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Data{}, err
	}
	var d Data
	if err := ParseJSONOrYAML(raw, &d); err != nil {
		return Data{}, fmt.Errorf("fixture data file %q is malformed: %w", path, err)
	}
	return d, d.validate()
}

func (d Data) validate() error {
	seen := make(map[int]bool, len(d.Todos))
	for _, t := range d.Todos {
		if seen[t.ID] {
			return fmt.Errorf("duplicate todo id %d", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Todo returns the item with the given ID, if any.
func (d Data) Todo(id int) (Todo, bool) {
	for _, t := range d.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// ParseJSONOrYAML is used in the same way as json.Unmarshal, but if the data is YAML and not
// JSON, it will convert the YAML to JSON and then parse it as JSON, so that only the json
// struct tags matter.
func ParseJSONOrYAML(data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}
	var rawStructure interface{}
	if err := yaml.Unmarshal(data, &rawStructure); err != nil {
		return err
	}
	normalized, err := normalizeYAML(rawStructure)
	if err != nil {
		return err
	}
	jsonData, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}

// normalizeYAML converts any map[interface{}]interface{} produced by the YAML parser into a
// map[string]interface{} that encoding/json can handle.
func normalizeYAML(data interface{}) (interface{}, error) {
	switch data := data.(type) {
	case []interface{}:
		out := make([]interface{}, 0, len(data))
		for _, v := range data {
			v1, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			out = append(out, v1)
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(data))
		for k, v := range data {
			v1, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			out[k] = v1
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(data))
		for k, v := range data {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported YAML key %v; keys must be strings", k)
			}
			v1, err := normalizeYAML(v)
			if err != nil {
				return nil, err
			}
			out[key] = v1
		}
		return out, nil
	default:
		return data, nil
	}
}
