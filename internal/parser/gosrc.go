package parser

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"

	"github.com/pkg/errors"

	"github.com/vovanwin/bitmaskgen/internal/model"
)

// directivePrefix префикс директив в комментарии к блоку const
const directivePrefix = "//bitmask:"

// ParseGo читает спецификации из Go файла. Спецификацией считается блок const,
// в комментарии к которому есть директива //bitmask:name. Файл обычно помечают
// //go:build ignore, чтобы его константы не попадали в сборку.
//
//	//bitmask:name Perm
//	//bitmask:type u8
//	//bitmask:config inverted_flags, vec_debug
//	const (
//		Read
//		Write
//		All = Read | Write
//	)
func ParseGo(path string, src []byte) ([]model.RawSpec, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, path, src, goparser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "парсинг %s", path)
	}

	var specs []model.RawSpec
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST || gd.Doc == nil {
			continue
		}

		raw, found, err := directives(gd.Doc, fset)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		for _, s := range gd.Specs {
			vs, ok := s.(*ast.ValueSpec)
			if !ok {
				continue
			}
			doc := commentText(vs.Doc)
			if doc == "" {
				doc = commentText(vs.Comment)
			}
			for j, name := range vs.Names {
				rv := model.RawVariant{
					Name: name.Name,
					Doc:  doc,
					Pos:  position(fset, name.Pos()),
				}
				if j < len(vs.Values) {
					rv.Value = sourceText(fset, src, vs.Values[j])
				}
				raw.Variants = append(raw.Variants, rv)
			}
		}
		specs = append(specs, raw)
	}
	return specs, nil
}

// directives разбирает строки //bitmask:key value из комментария к блоку
func directives(doc *ast.CommentGroup, fset *token.FileSet) (model.RawSpec, bool, error) {
	raw := model.RawSpec{Pos: position(fset, doc.Pos())}
	found := false

	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		found = true
		key, value, _ := strings.Cut(strings.TrimPrefix(c.Text, directivePrefix), " ")
		value = strings.TrimSpace(value)

		switch key {
		case "name":
			raw.Name = value
		case "type":
			raw.Width = value
		case "config":
			raw.Config = value
		case "prefix":
			raw.Prefix = value
		default:
			return raw, false, errors.Errorf("%s: неизвестная директива %q", position(fset, c.Pos()), directivePrefix+key)
		}
	}
	if !found {
		return raw, false, nil
	}
	if raw.Name == "" {
		return raw, false, errors.Errorf("%s: нет директивы %sname", raw.Pos, directivePrefix)
	}

	// Text() пропускает строки-директивы вида //word:...
	raw.Doc = commentText(doc)
	return raw, true, nil
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

func position(fset *token.FileSet, p token.Pos) model.Pos {
	pp := fset.Position(p)
	return model.Pos{File: pp.Filename, Line: pp.Line, Col: pp.Column}
}

// sourceText возвращает выражение в том виде, в каком оно записано в файле
func sourceText(fset *token.FileSet, src []byte, n ast.Node) string {
	f := fset.File(n.Pos())
	start, end := f.Offset(n.Pos()), f.Offset(n.End())
	return string(src[start:end])
}
