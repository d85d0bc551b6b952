package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vovanwin/bitmaskgen/internal/model"
)

type yamlFile struct {
	Bitmask []yamlBitmask `yaml:"bitmask"`
}

type yamlBitmask struct {
	Name   string        `yaml:"name"`
	Type   string        `yaml:"type"`
	Config yamlConfig    `yaml:"config"`
	Prefix string        `yaml:"prefix"`
	Doc    string        `yaml:"doc"`
	Flags  []yamlVariant `yaml:"flags"`

	line, col int
}

func (b *yamlBitmask) UnmarshalYAML(n *yaml.Node) error {
	// KnownFields не действует внутри Node.Decode, ключи проверяем сами
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			switch k := n.Content[i]; k.Value {
			case "name", "type", "config", "prefix", "doc", "flags":
			default:
				return errors.Errorf("строка %d: неизвестный ключ %q", k.Line, k.Value)
			}
		}
	}

	type plain yamlBitmask
	if err := n.Decode((*plain)(b)); err != nil {
		return err
	}
	b.line, b.col = n.Line, n.Column
	return nil
}

// yamlConfig принимает строку "a, b" или список [a, b]
type yamlConfig struct {
	clause string
}

func (c *yamlConfig) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		c.clause = n.Value
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return errors.Errorf("строка %d: опция конфигурации должна быть строкой", item.Line)
			}
			items = append(items, item.Value)
		}
		c.clause = strings.Join(items, ", ")
		return nil
	default:
		return errors.Errorf("строка %d: config должен быть строкой или списком", n.Line)
	}
}

// yamlVariant принимает имя флага или отображение {name, value, doc}
type yamlVariant struct {
	name, value, doc string
	line, col        int
}

func (v *yamlVariant) UnmarshalYAML(n *yaml.Node) error {
	v.line, v.col = n.Line, n.Column

	switch n.Kind {
	case yaml.ScalarNode:
		v.name = n.Value
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return errors.Errorf("строка %d: %s должен быть скаляром", val.Line, key.Value)
			}
			switch key.Value {
			case "name":
				v.name = val.Value
			case "value":
				// значение берется как записано: 0x100 остается 0x100
				if strings.TrimSpace(val.Value) == "" {
					return errors.Errorf("строка %d: пустое выражение", val.Line)
				}
				v.value = val.Value
			case "doc":
				v.doc = val.Value
			default:
				return errors.Errorf("строка %d: неизвестный ключ %q", key.Line, key.Value)
			}
		}
		return nil
	default:
		return errors.Errorf("строка %d: флаг должен быть именем или отображением", n.Line)
	}
}

// ParseYAML читает спецификации из YAML
func ParseYAML(path string, b []byte) ([]model.RawSpec, error) {
	var f yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "декодирование yaml %s", path)
	}

	specs := make([]model.RawSpec, 0, len(f.Bitmask))
	for _, bm := range f.Bitmask {
		raw := model.RawSpec{
			Name:   bm.Name,
			Width:  bm.Type,
			Config: bm.Config.clause,
			Prefix: bm.Prefix,
			Doc:    bm.Doc,
			Pos:    model.Pos{File: path, Line: bm.line, Col: bm.col},
		}
		for _, fv := range bm.Flags {
			raw.Variants = append(raw.Variants, model.RawVariant{
				Name:  fv.name,
				Value: fv.value,
				Doc:   fv.doc,
				Pos:   model.Pos{File: path, Line: fv.line, Col: fv.col},
			})
		}
		specs = append(specs, raw)
	}
	return specs, nil
}
