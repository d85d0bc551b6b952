package generator

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovanwin/bitmaskgen/internal/model"
)

func variants(names ...string) []model.RawVariant {
	out := make([]model.RawVariant, 0, len(names))
	for _, n := range names {
		out = append(out, model.RawVariant{Name: n})
	}
	return out
}

func mustBuild(t *testing.T, raw model.RawSpec) *model.GeneratedType {
	t.Helper()
	gt, err := Build(raw)
	require.NoError(t, err)
	return gt
}

func mustRender(t *testing.T, raw model.RawSpec) string {
	t.Helper()
	src, err := Render(mustBuild(t, raw), "flags", "spec.toml")
	require.NoError(t, err, string(src))
	return string(src)
}

// typeCheck проверяет, что сгенерированный код компилируется, и возвращает пакет
func typeCheck(t *testing.T, src string) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "gen.go", src, parser.ParseComments)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("flags", fset, []*ast.File{f}, nil)
	require.NoError(t, err, src)
	return pkg
}

func constValue(t *testing.T, pkg *types.Package, name string) int64 {
	t.Helper()
	obj, ok := pkg.Scope().Lookup(name).(*types.Const)
	require.True(t, ok, "константа %s не найдена", name)
	v, exact := constant.Int64Val(obj.Val())
	require.True(t, exact)
	return v
}

func funcNames(t *testing.T, src string) map[string]bool {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err)
	out := map[string]bool{}
	for _, d := range f.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok {
			out[fd.Name.Name] = true
		}
	}
	return out
}

func TestFormatComment(t *testing.T) {
	assert.Equal(t, "", formatComment(""))
	assert.Equal(t, "// one", formatComment("one"))
	assert.Equal(t, "// one\n//\n// two", formatComment("one\n\ntwo  "))
}

func TestToSnakeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Perm", "perm"},
		{"FileMode", "file_mode"},
		{"HTTPFlags", "http_flags"},
		{"Flags2Mask", "flags2_mask"},
		{"perm", "perm"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := toSnakeName(tt.input)
			if result != tt.expected {
				t.Errorf("toSnakeName(%q) = %q, ожидалось %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBuildScenario(t *testing.T) {
	gt := mustBuild(t, model.RawSpec{Name: "Bitmask", Width: "u8", Variants: variants("Flag1", "Flag2", "Flag3")})

	assert.Equal(t, model.WidthU8, gt.Width)
	assert.Equal(t, []string{"Flag1", "Flag2", "Flag3"}, gt.AllFlags)
	for i, want := range []int64{0b001, 0b010, 0b100} {
		assert.Equal(t, want, gt.Constants[i].Value.Int64())
	}

	c, ok := gt.Lookup("Flag3")
	require.True(t, ok)
	assert.Equal(t, "1 << 2", c.Expr)
	_, ok = gt.Lookup("Flag4")
	assert.False(t, ok)
}

func TestBuildDeterministic(t *testing.T) {
	raw := model.RawSpec{
		Name:     "Perm",
		Width:    "u16",
		Config:   "inverted_flags, vec_debug, flags_iter",
		Variants: append(variants("A", "B", "C"), model.RawVariant{Name: "AC", Value: "A | C"}),
	}
	first := mustRender(t, raw)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, mustRender(t, raw))
	}
}

func TestRenderNative(t *testing.T) {
	src := mustRender(t, model.RawSpec{Name: "Bitmask", Width: "u8", Variants: variants("Flag1", "Flag2", "Flag3")})

	assert.True(t, strings.HasPrefix(src, "// Code generated by bitmaskgen from spec.toml. DO NOT EDIT.\n"))
	assert.Contains(t, src, "package flags")
	assert.Contains(t, src, "type Bitmask uint8")
	assert.Regexp(t, regexp.MustCompile(`Flag1\s+Bitmask = 1 << 0`), src)
	assert.Regexp(t, regexp.MustCompile(`Flag3\s+Bitmask = 1 << 2`), src)
	assert.Contains(t, src, "const _Bitmask_allFlags Bitmask = Flag1 | Flag2 | Flag3")
	assert.Contains(t, src, `fmt.Sprintf("Bitmask(%d)", uint8(b))`)
	assert.NotContains(t, src, `"iter"`)
	assert.NotContains(t, src, `"strings"`)
	assert.NotContains(t, src, "_Bitmask_table")

	funcs := funcNames(t, src)
	for _, name := range []string{
		"BitmaskFromBits", "BitmaskAllBits", "BitmaskAllFlags", "BitmaskNone",
		"Bits", "IsAllBits", "IsAllFlags", "IsNone", "Truncate", "Intersects", "Contains",
		"Not", "And", "Or", "Xor", "AndAssign", "OrAssign", "XorAssign", "Equal", "String", "Format",
	} {
		assert.True(t, funcs[name], "нет функции %s", name)
	}
	assert.False(t, funcs["BitmaskFlags"])

	pkg := typeCheck(t, src)
	assert.Equal(t, int64(0b001), constValue(t, pkg, "Flag1"))
	assert.Equal(t, int64(0b010), constValue(t, pkg, "Flag2"))
	assert.Equal(t, int64(0b100), constValue(t, pkg, "Flag3"))
	assert.Equal(t, int64(0b111), constValue(t, pkg, "_Bitmask_allFlags"))
}

func TestRenderAllOptions(t *testing.T) {
	src := mustRender(t, model.RawSpec{
		Name:   "Bitmask",
		Width:  "u8",
		Config: "inverted_flags, vec_debug, flags_iter",
		Doc:    "Bitmask is a test type.",
		Variants: []model.RawVariant{
			{Name: "Flag1", Doc: "Flag1 is first."},
			{Name: "Flag2"},
			{Name: "Both", Value: "Flag1 | Flag2"},
		},
	})

	assert.Contains(t, src, "// Bitmask is a test type.\ntype Bitmask uint8")
	assert.Contains(t, src, "// Flag1 is first.")
	assert.Regexp(t, regexp.MustCompile(`InvertedFlag1\s+Bitmask = \^Flag1`), src)
	assert.Contains(t, src, "func BitmaskFlags() iter.Seq2[string, Bitmask]")
	assert.Contains(t, src, `{"Flag1", Flag1},`)
	assert.Contains(t, src, `{"InvertedBoth", InvertedBoth},`)
	assert.Contains(t, src, `sb.WriteString("Bitmask[")`)
	assert.Contains(t, src, "const _Bitmask_allFlags Bitmask = Flag1 | Flag2 | Both")

	// порядок таблицы совпадает с порядком констант
	order := []string{`{"Flag1"`, `{"InvertedFlag1"`, `{"Flag2"`, `{"InvertedFlag2"`, `{"Both"`, `{"InvertedBoth"`}
	last := -1
	for _, o := range order {
		idx := strings.Index(src, o)
		require.True(t, idx > last, "порядок %s", o)
		last = idx
	}

	pkg := typeCheck(t, src)
	assert.Equal(t, int64(0b11111110), constValue(t, pkg, "InvertedFlag1"))
	assert.Equal(t, int64(0b11111101), constValue(t, pkg, "InvertedFlag2"))
	assert.Equal(t, int64(0b11), constValue(t, pkg, "Both"))
	assert.Equal(t, int64(0b11111100), constValue(t, pkg, "InvertedBoth"))
}

func TestRenderSignedFullWidth(t *testing.T) {
	var names []string
	for i := 0; i < 8; i++ {
		names = append(names, fmt.Sprintf("F%d", i))
	}
	src := mustRender(t, model.RawSpec{Name: "Signed", Width: "i8", Config: "inverted_flags", Variants: variants(names...)})

	pkg := typeCheck(t, src)
	assert.Equal(t, int64(-128), constValue(t, pkg, "F7"))
	assert.Equal(t, int64(127), constValue(t, pkg, "InvertedF7"))
	assert.Equal(t, int64(-1), constValue(t, pkg, "_Signed_allFlags"))
}

func TestRenderDefaultWidthAndEmpty(t *testing.T) {
	src := mustRender(t, model.RawSpec{Name: "Empty", Config: "vec_debug, flags_iter"})
	assert.Contains(t, src, "type Empty uint")
	assert.Contains(t, src, "const _Empty_allFlags Empty = 0")
	typeCheck(t, src)
}

func TestRenderPrefix(t *testing.T) {
	src := mustRender(t, model.RawSpec{
		Name:     "Perm",
		Width:    "u32",
		Prefix:   "Perm",
		Config:   "inverted_flags, flags_iter",
		Variants: append(variants("Read", "Write"), model.RawVariant{Name: "RW", Value: "Read | Write"}),
	})
	assert.Regexp(t, regexp.MustCompile(`PermRW\s+Perm = PermRead \| PermWrite`), src)
	assert.Contains(t, src, `{"Read", PermRead},`)
	assert.Contains(t, src, `{"InvertedRW", PermInvertedRW},`)

	pkg := typeCheck(t, src)
	assert.Equal(t, int64(0b11), constValue(t, pkg, "PermRW"))
	assert.Equal(t, int64(0xFFFFFFFC), constValue(t, pkg, "PermInvertedRW"))
}

func TestRenderWide(t *testing.T) {
	var names []string
	for i := 0; i < 65; i++ {
		names = append(names, fmt.Sprintf("F%d", i))
	}
	raw := model.RawSpec{
		Name:     "Wide",
		Width:    "i128",
		Config:   "inverted_flags, vec_debug, flags_iter",
		Variants: append(variants(names...), model.RawVariant{Name: "Edge", Value: "F0 | F64"}),
	}
	src := mustRender(t, raw)

	assert.Contains(t, src, "type Wide struct")
	assert.Contains(t, src, `"math/big"`)
	assert.Regexp(t, regexp.MustCompile(`F64\s+= Wide\{hi: 0x1, lo: 0x0\}`), src)
	assert.Regexp(t, regexp.MustCompile(`Edge\s+= Wide\{hi: 0x1, lo: 0x1\}`), src)
	assert.Regexp(t, regexp.MustCompile(`InvertedF0\s+= Wide\{hi: 0xffffffffffffffff, lo: 0xfffffffffffffffe\}`), src)
	assert.Contains(t, src, "func (b Wide) Bits() (hi, lo uint64)")
	assert.Contains(t, src, "v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 128))")

	typeCheck(t, src)
}

func TestRenderWideUnsigned(t *testing.T) {
	src := mustRender(t, model.RawSpec{Name: "U", Width: "u128", Variants: variants("A")})
	assert.NotContains(t, src, "v.Sub(")
	assert.Contains(t, src, `fmt.Sprintf("U(%s)", b.bigInt())`)
	typeCheck(t, src)
}

func TestGenerate(t *testing.T) {
	tmpDir := t.TempDir()

	gts := []*model.GeneratedType{
		mustBuild(t, model.RawSpec{Name: "FileMode", Width: "u16", Config: "flags_iter", Variants: variants("Dir", "Link")}),
		mustBuild(t, model.RawSpec{Name: "Perm", Width: "u8", Variants: variants("Read")}),
	}

	written, err := Generate(Options{
		OutputDir:   tmpDir,
		PackageName: "testflags",
		Source:      "flags.toml",
		Describe:    true,
	}, gts)
	if err != nil {
		t.Fatalf("Generate вернул ошибку: %v", err)
	}

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "file_mode_bitmask.go"),
		filepath.Join(tmpDir, "file_mode_bitmask.yaml"),
		filepath.Join(tmpDir, "perm_bitmask.go"),
		filepath.Join(tmpDir, "perm_bitmask.yaml"),
	}, written)

	content, err := os.ReadFile(filepath.Join(tmpDir, "file_mode_bitmask.go"))
	require.NoError(t, err)
	if !strings.Contains(string(content), "package testflags") {
		t.Error("сгенерированный файл должен содержать правильное имя пакета")
	}
	if !strings.Contains(string(content), "type FileMode uint16") {
		t.Error("сгенерированный файл должен содержать тип FileMode")
	}
}

func TestGenerateWithoutDescribe(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Generate(Options{OutputDir: tmpDir, PackageName: "p"}, []*model.GeneratedType{
		mustBuild(t, model.RawSpec{Name: "Perm", Variants: variants("Read")}),
	})
	require.NoError(t, err)

	if _, err := os.Stat(filepath.Join(tmpDir, "perm_bitmask.go")); os.IsNotExist(err) {
		t.Error("perm_bitmask.go должен быть создан")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "perm_bitmask.yaml")); !os.IsNotExist(err) {
		t.Error("perm_bitmask.yaml не должен быть создан без Describe")
	}
}

func TestDescribe(t *testing.T) {
	gt := mustBuild(t, model.RawSpec{
		Name:   "Bitmask",
		Width:  "u8",
		Config: "inverted_flags",
		Variants: []model.RawVariant{
			{Name: "Flag1"},
			{Name: "Ext", Value: "os.ModeDir"},
		},
	})

	out, err := Describe(gt)
	require.NoError(t, err)

	var m manifest
	require.NoError(t, yaml.Unmarshal(out, &m))
	assert.Equal(t, "Bitmask", m.Name)
	assert.Equal(t, "u8", m.Type)
	assert.Equal(t, []string{"inverted_flags"}, m.Config)
	assert.Equal(t, "raw", m.Debug)
	assert.Equal(t, "", m.AllFlags, "объединение неизвестно, пока есть невычисленные флаги")

	require.Len(t, m.Constants, 4)
	assert.Equal(t, manifestConstant{Name: "Flag1", Ident: "Flag1", Kind: "flag", Expr: "1 << 0", Value: "0x01"}, m.Constants[0])
	assert.Equal(t, "0xfe", m.Constants[1].Value)
	assert.Equal(t, "inverted", m.Constants[1].Kind)
	assert.Equal(t, "", m.Constants[2].Value)
	assert.True(t, m.Constants[2].Explicit)
}

func TestDescribeAllFlags(t *testing.T) {
	out, err := Describe(mustBuild(t, model.RawSpec{Name: "B", Width: "u16", Variants: variants("A", "B2", "C")}))
	require.NoError(t, err)

	var m manifest
	require.NoError(t, yaml.Unmarshal(out, &m))
	assert.Equal(t, "0x0007", m.AllFlags)
	assert.Empty(t, m.Config)
}
