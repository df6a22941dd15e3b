package importer

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser reads items from a YAML list or an {items: [...]} document.
type YAMLParser struct{}

// Format returns the parser name.
func (p *YAMLParser) Format() string { return "yaml" }

// cell accepts any scalar and keeps its literal text, so 80, 80.5 and "80"
// all arrive as written.
type cell string

func (c *cell) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	*c = cell(n.Value)
	return nil
}

type yamlItem struct {
	Description cell `yaml:"description"`
	Desc        cell `yaml:"desc"`
	Area        cell `yaml:"area"`
	Qty         cell `yaml:"qty"`
	Quantity    cell `yaml:"quantity"`
	Rate        cell `yaml:"rate"`
	Price       cell `yaml:"price"`
}

func (y yamlItem) input() ItemInput {
	first := func(a, b cell) string {
		if a != "" {
			return string(a)
		}
		return string(b)
	}
	return ItemInput{
		Description: first(y.Description, y.Desc),
		Area:        string(y.Area),
		Quantity:    first(y.Qty, y.Quantity),
		Rate:        first(y.Rate, y.Price),
	}
}

// Parse reads YAML items.
func (p *YAMLParser) Parse(r io.Reader) ([]ItemInput, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing items YAML: %w", err)
	}

	var raw []yamlItem
	list := &doc
	if list.Kind == yaml.DocumentNode && len(list.Content) > 0 {
		list = list.Content[0]
	}
	if list.Kind == yaml.MappingNode {
		var wrapped struct {
			Items []yamlItem `yaml:"items"`
		}
		if err := list.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("parsing items YAML: %w", err)
		}
		raw = wrapped.Items
	} else if err := list.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing items YAML: %w", err)
	}

	var items []ItemInput
	for _, y := range raw {
		in := y.input()
		if in.IsBlank() {
			continue
		}
		items = append(items, in)
	}
	return items, nil
}

// WriteYAML writes items as an {items: [...]} document.
func WriteYAML(w io.Writer, items []ItemInput) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := struct {
		Items []ItemInput `yaml:"items"`
	}{Items: items}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing items YAML: %w", err)
	}
	return enc.Close()
}

// Write writes items in the given format.
func Write(w io.Writer, format string, items []ItemInput) error {
	switch format {
	case "csv":
		return WriteCSV(w, items)
	case "xlsx":
		return WriteXLSX(w, items)
	case "yaml", "yml":
		return WriteYAML(w, items)
	default:
		return fmt.Errorf("writing items: unsupported format %q", format)
	}
}
