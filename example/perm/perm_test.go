package perm

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPerms() []Perm {
	out := make([]Perm, 0, 256)
	for i := 0; i < 256; i++ {
		out = append(out, PermFromBits(uint8(i)))
	}
	return out
}

func TestPermConstants(t *testing.T) {
	assert.Equal(t, uint8(0b001), PermRead.Bits())
	assert.Equal(t, uint8(0b010), PermWrite.Bits())
	assert.Equal(t, uint8(0b100), PermExec.Bits())
	assert.Equal(t, uint8(0b111), PermAll.Bits())

	for _, pair := range [][2]Perm{
		{PermRead, PermInvertedRead},
		{PermWrite, PermInvertedWrite},
		{PermExec, PermInvertedExec},
		{PermAll, PermInvertedAll},
	} {
		assert.Equal(t, ^pair[0], pair[1])
		assert.Equal(t, pair[0].Not(), pair[1])
	}
}

func TestPermPredicates(t *testing.T) {
	assert.True(t, PermNone().IsNone())
	assert.True(t, PermAllBits().IsAllBits())
	assert.Equal(t, uint8(0xFF), PermAllBits().Bits())
	assert.True(t, PermAllFlags().IsAllFlags())
	assert.Equal(t, PermAll, PermAllFlags())
	assert.False(t, PermRead.IsAllFlags())
	assert.True(t, PermRead.Equal(1))
	assert.False(t, PermRead.Equal(2))
}

func TestPermSetAlgebra(t *testing.T) {
	for _, a := range allPerms() {
		for _, b := range []Perm{0, PermRead, PermWrite | PermExec, PermAll, PermInvertedRead, PermAllBits()} {
			assert.Equal(t, a&b == b, a.Contains(b))
			assert.Equal(t, a&b != 0 || b == 0, a.Intersects(b))
			assert.Equal(t, a&b, a.And(b))
			assert.Equal(t, a|b, a.Or(b))
			assert.Equal(t, a^b, a.Xor(b))
		}

		tr := a.Truncate()
		assert.Equal(t, a&PermAllFlags(), tr)
		assert.Equal(t, tr, tr.Truncate())
		assert.Equal(t, a, PermFromBits(a.Bits()))
	}
}

func TestPermEmptyIntersects(t *testing.T) {
	assert.True(t, PermNone().Intersects(PermNone()))
	assert.True(t, PermRead.Intersects(PermNone()))
	assert.False(t, PermNone().Intersects(PermRead))
}

func TestPermAssign(t *testing.T) {
	p := PermNone()
	p.OrAssign(PermRead | PermWrite)
	assert.Equal(t, PermRead|PermWrite, p)

	p.AndAssign(PermWrite | PermExec)
	assert.Equal(t, PermWrite, p)

	p.XorAssign(PermAll)
	assert.Equal(t, PermRead|PermExec, p)
}

func TestPermFlags(t *testing.T) {
	var names []string
	var values []Perm
	for name, v := range PermFlags() {
		names = append(names, name)
		values = append(values, v)
	}
	assert.Equal(t, []string{
		"Read", "InvertedRead", "Write", "InvertedWrite",
		"Exec", "InvertedExec", "All", "InvertedAll",
	}, names)
	assert.Equal(t, PermInvertedAll, values[7])

	n := 0
	for range PermFlags() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestPermString(t *testing.T) {
	tests := []struct {
		value    Perm
		expected string
	}{
		{PermNone(), "Perm[]"},
		{PermRead | PermWrite, "Perm[Read, Write]"},
		{PermAll, "Perm[Read, Write, Exec, All]"},
		{PermFromBits(0b1000), "Perm[]"},
		{PermAllBits(), "Perm[Read, InvertedRead, Write, InvertedWrite, Exec, InvertedExec, All, InvertedAll]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
			assert.Equal(t, tt.expected, fmt.Sprintf("%v", tt.value))
			assert.Equal(t, tt.expected, fmt.Sprint(tt.value))
		})
	}
}

func TestPermFormatNumeric(t *testing.T) {
	p := PermRead | PermExec
	assert.Equal(t, "101", fmt.Sprintf("%b", p))
	assert.Equal(t, "00000101", fmt.Sprintf("%08b", p))
	assert.Equal(t, "5", fmt.Sprintf("%d", p))
	assert.Equal(t, "fe", fmt.Sprintf("%x", PermInvertedRead))
	assert.Equal(t, "0xfe", fmt.Sprintf("%#x", PermInvertedRead))
	assert.Equal(t, "7", fmt.Sprintf("%o", PermAll))
}

func TestModeRaw(t *testing.T) {
	assert.Equal(t, "Mode(5)", (Dir | Hidden).String())
	assert.Equal(t, "Mode(5)", fmt.Sprintf("%v", Dir|Hidden))
	assert.Equal(t, "Mode(-1)", ModeAllBits().String())
	assert.Equal(t, "Mode(0)", ModeNone().String())
	assert.Equal(t, "-1", fmt.Sprintf("%d", ModeAllBits()))
	assert.Equal(t, "110", fmt.Sprintf("%b", Symlink|Hidden))

	assert.Equal(t, Dir|Symlink|Hidden, ModeAllFlags())
	assert.Equal(t, Hidden, ModeFromBits(0b1100).Truncate())
	assert.True(t, ModeAllBits().Contains(ModeAllFlags()))
	assert.Equal(t, int16(-1), ModeAllBits().Bits())
}

func TestCapsWide(t *testing.T) {
	hi, lo := Root.Bits()
	assert.Equal(t, uint64(1)<<36, hi)
	assert.Equal(t, uint64(0), lo)

	assert.Equal(t, Net.Or(Disk).Or(Root), Any)
	assert.Equal(t, Any, CapsAllFlags())
	assert.True(t, Any.IsAllFlags())
	assert.True(t, CapsAllBits().IsAllBits())
	assert.True(t, CapsNone().IsNone())

	assert.True(t, Any.Contains(Root))
	assert.False(t, Net.Contains(Root))
	assert.True(t, Any.Intersects(Root))
	assert.False(t, Net.Intersects(Root))
	assert.True(t, Net.Intersects(CapsNone()))

	stray := CapsFromBits(1<<40, 1<<10)
	assert.True(t, stray.Truncate().IsNone())
	assert.Equal(t, Root, Root.Or(stray).Truncate())

	c := CapsNone()
	c.OrAssign(Any)
	c.AndAssign(Root.Not())
	assert.Equal(t, Net.Or(Disk), c)
	c.XorAssign(Net)
	assert.Equal(t, Disk, c)
	assert.True(t, c.Equal(0, 2))
}

func TestCapsFormat(t *testing.T) {
	assert.Equal(t, "Caps[Net, Disk]", Net.Or(Disk).String())
	assert.Equal(t, "Caps[Net, Disk, Root, Any]", fmt.Sprintf("%v", Any))
	assert.Equal(t, "Caps[]", CapsNone().String())

	want := new(big.Int).Lsh(big.NewInt(1), 100)
	assert.Equal(t, want.Text(16), fmt.Sprintf("%x", Root))
	assert.Equal(t, want.String(), fmt.Sprintf("%d", Root))
	assert.Equal(t, "11", fmt.Sprintf("%b", Net.Or(Disk)))

	allBits := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	assert.Equal(t, allBits.String(), fmt.Sprintf("%d", CapsAllBits()))
	require.Len(t, fmt.Sprintf("%x", CapsAllBits()), 32)
}
