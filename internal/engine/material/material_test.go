package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FFFFFF", White},
		{"#000", Black},
		{"0x9cdba6", Hex(0x9cdba6)},
		{"orange", Color{1, 165.0 / 255, 0}},
		{"Orange", Color{1, 165.0 / 255, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, got.R, 1e-6)
			assert.InDelta(t, tt.want.G, got.G, 1e-6)
			assert.InDelta(t, tt.want.B, got.B, 1e-6)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"#12", "0xZZZZZZ", "0x123", "not-a-color", ""} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := MustParseColor("#468585")
	assert.Equal(t, "#468585", c.String())
	assert.Equal(t, c, Hex(0x468585))
}

func TestLinear(t *testing.T) {
	lin := MustParseColor("#808080").Linear()
	// sRGB 0.5 is roughly 0.216 linear
	assert.InDelta(t, 0.216, lin[0], 0.005)
	assert.Equal(t, [3]float32{1, 1, 1}, White.Linear())
}

func TestColorYAML(t *testing.T) {
	var doc struct {
		A Color `yaml:"a"`
		B Color `yaml:"b"`
		C Color `yaml:"c"`
	}
	src := "a: \"#468585\"\nb: 0x9cdba6\nc: orange\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	assert.Equal(t, Hex(0x468585), doc.A)
	assert.Equal(t, Hex(0x9cdba6), doc.B)
	assert.Equal(t, "#ffa500", doc.C.String())

	err := yaml.Unmarshal([]byte("a: nope\n"), &doc)
	assert.Error(t, err)
}

func TestShading(t *testing.T) {
	s, err := ParseShading("Standard")
	require.NoError(t, err)
	assert.Equal(t, Standard, s)
	assert.Equal(t, "lambert", Lambert.String())

	_, err = ParseShading("toon")
	assert.Error(t, err)

	m := NewStandard(White, Black)
	assert.Equal(t, float32(1), m.Roughness)
	assert.Equal(t, Lambert, NewLambert(White, Black).Shading)
}
