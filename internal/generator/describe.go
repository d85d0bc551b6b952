package generator

import (
	"math/big"

	"gopkg.in/yaml.v3"

	"github.com/vovanwin/bitmaskgen/internal/eval"
	"github.com/vovanwin/bitmaskgen/internal/model"
)

type manifestConstant struct {
	Name     string `yaml:"name"`
	Ident    string `yaml:"ident"`
	Kind     string `yaml:"kind"`
	Explicit bool   `yaml:"explicit,omitempty"`
	Expr     string `yaml:"expr"`
	Value    string `yaml:"value"`
}

type manifest struct {
	Name      string             `yaml:"name"`
	Type      string             `yaml:"type"`
	Config    []string           `yaml:"config,omitempty"`
	Debug     string             `yaml:"debug"`
	AllFlags  string             `yaml:"all_flags"`
	Constants []manifestConstant `yaml:"constants"`
}

// Describe строит YAML манифест с вычисленными значениями констант.
// Значения, которые не удалось вычислить, остаются пустыми.
func Describe(gt *model.GeneratedType) ([]byte, error) {
	ev := eval.New(gt.Width, gt.Name)
	m := manifest{
		Name:   gt.Name,
		Type:   gt.Width.String(),
		Config: gt.Config.Options(),
		Debug:  gt.Debug.String(),
	}

	all := new(big.Int)
	resolved := true
	for _, c := range gt.Constants {
		mc := manifestConstant{
			Name:     c.Name,
			Ident:    c.Ident,
			Kind:     c.Kind.String(),
			Explicit: c.Explicit,
			Expr:     c.Expr,
		}
		if c.Value != nil {
			mc.Value = ev.Hex(c.Value)
		}
		if c.Kind == model.ConstFlag {
			if c.Value == nil {
				resolved = false
			} else {
				all.Or(all, c.Value)
			}
		}
		m.Constants = append(m.Constants, mc)
	}
	if resolved {
		m.AllFlags = ev.Hex(all)
	}

	return yaml.Marshal(&m)
}
