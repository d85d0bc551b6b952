package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/vovanwin/bitmaskgen/internal/diag"
	"github.com/vovanwin/bitmaskgen/internal/model"
)

// tomlBitmask одна секция [[bitmask]]
type tomlBitmask struct {
	Name   string `toml:"name"`
	Type   string `toml:"type"`
	Config any    `toml:"config"`
	Prefix string `toml:"prefix"`
	Doc    string `toml:"doc"`
	Flags  []any  `toml:"flags"`
}

// tomlFile корневая структура файла спецификации
type tomlFile struct {
	Bitmask []tomlBitmask `toml:"bitmask"`
}

// headerInfo строка и комментарий перед заголовком [[bitmask]]
type headerInfo struct {
	Line    int
	Comment string
}

// ParseTOML читает спецификации из TOML. path используется только в диагностиках.
func ParseTOML(path string, b []byte) ([]model.RawSpec, error) {
	var f tomlFile
	if _, err := toml.Decode(string(b), &f); err != nil {
		return nil, errors.Wrapf(err, "декодирование toml %s", path)
	}

	headers, err := extractHeaders(b)
	if err != nil {
		return nil, errors.Wrapf(err, "извлечение комментариев %s", path)
	}

	specs := make([]model.RawSpec, 0, len(f.Bitmask))
	for i, bm := range f.Bitmask {
		pos := model.Pos{File: path}
		doc := bm.Doc
		if i < len(headers) {
			pos.Line = headers[i].Line
			if doc == "" {
				doc = headers[i].Comment
			}
		}

		cfg, err := configClause(bm.Config, pos)
		if err != nil {
			return nil, err
		}

		raw := model.RawSpec{
			Name:   bm.Name,
			Width:  bm.Type,
			Config: cfg,
			Prefix: bm.Prefix,
			Doc:    doc,
			Pos:    pos,
		}
		for j, entry := range bm.Flags {
			rv, err := variantFromAny(entry, pos)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: %s: флаг #%d", pos, bm.Name, j+1)
			}
			raw.Variants = append(raw.Variants, rv)
		}
		specs = append(specs, raw)
	}
	return specs, nil
}

// extractHeaders находит заголовки [[bitmask]] и комментарии непосредственно перед ними
func extractHeaders(b []byte) ([]headerInfo, error) {
	var headers []headerInfo
	var pendingComments []string

	headerRe := regexp.MustCompile(`^\s*\[\[\s*bitmask\s*\]\]\s*(#.*)?$`)
	commentRe := regexp.MustCompile(`^\s*#\s?(.*)$`)

	scanner := bufio.NewScanner(bytes.NewReader(b))
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()

		if headerRe.MatchString(text) {
			headers = append(headers, headerInfo{Line: line, Comment: strings.Join(pendingComments, "\n")})
			pendingComments = nil
			continue
		}

		if match := commentRe.FindStringSubmatch(text); match != nil {
			pendingComments = append(pendingComments, strings.TrimRight(match[1], " \t"))
			continue
		}

		// Любая другая строка сбрасывает накопленные комментарии
		pendingComments = nil
	}

	return headers, scanner.Err()
}

// configClause приводит значение config к строке через запятую
func configClause(val any, pos model.Pos) (string, error) {
	switch v := val.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				tok := fmt.Sprint(item)
				return "", diag.Errorf(diag.UnknownConfigOption, pos, tok, "неизвестная опция конфигурации %q", tok)
			}
			items = append(items, s)
		}
		return strings.Join(items, ", "), nil
	case []string:
		return strings.Join(v, ", "), nil
	default:
		tok := fmt.Sprint(val)
		return "", diag.Errorf(diag.UnknownConfigOption, pos, tok, "неизвестная опция конфигурации %q", tok)
	}
}

// variantFromAny разбирает элемент flags: строку с именем или таблицу {name, value, doc}
func variantFromAny(entry any, pos model.Pos) (model.RawVariant, error) {
	switch e := entry.(type) {
	case string:
		return model.RawVariant{Name: e, Pos: pos}, nil
	case map[string]any:
		rv := model.RawVariant{Pos: pos}
		keys := make([]string, 0, len(e))
		for k := range e {
			keys = append(keys, k)
		}
		// порядок обхода map случаен, диагностика должна быть стабильной
		sort.Strings(keys)
		for _, k := range keys {
			v := e[k]
			switch k {
			case "name":
				s, ok := v.(string)
				if !ok {
					return rv, errors.Errorf("name: ожидалась строка, получен %T", v)
				}
				rv.Name = s
			case "value":
				s, err := valueLiteral(v)
				if err != nil {
					return rv, err
				}
				rv.Value = s
			case "doc":
				s, ok := v.(string)
				if !ok {
					return rv, errors.Errorf("doc: ожидалась строка, получен %T", v)
				}
				rv.Doc = s
			default:
				return rv, errors.Errorf("неизвестный ключ %q", k)
			}
		}
		return rv, nil
	default:
		return model.RawVariant{}, errors.Errorf("ожидалась строка или таблица, получен %T", entry)
	}
}

// valueLiteral возвращает выражение значения: строку без изменений или целое в десятичной записи
func valueLiteral(v any) (string, error) {
	switch n := v.(type) {
	case string:
		if strings.TrimSpace(n) == "" {
			return "", errors.Errorf("value: пустое выражение")
		}
		return n, nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case int:
		return strconv.Itoa(n), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	default:
		return "", errors.Errorf("value: ожидалось выражение или целое, получен %T", v)
	}
}
