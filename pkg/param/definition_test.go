package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefinition = `
vendor: Skylark
model: SL-90
version: 3
parameters:
  - name: CAM_MODE
    type: uint32
    default: 0
    options:
      - {name: Photo, value: 0}
      - {name: Video, value: 1}
  - name: CAM_SHUTTERSPD
    type: float64
    options:
      - {name: "1/30", value: 0.033}
      - {name: "1/60", value: 0.016}
      - {name: "1/125", value: 0.008}
  - name: CAM_VIDRES
    type: uint32
  - name: CAM_VIDFMT
    type: uint32
rules:
  - param: CAM_MODE
    value: "1"
    excludes: [CAM_SHUTTERSPD]
`

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition([]byte(testDefinition))
	require.NoError(t, err)

	assert.Equal(t, "SL-90", def.Model)
	assert.Len(t, def.Parameters, 4)
	assert.Len(t, def.Rules, 1)

	reg, err := def.BuildRegistry()
	require.NoError(t, err)

	p, ok := reg.Get("CAM_SHUTTERSPD")
	require.True(t, ok)
	assert.Len(t, p.Options(), 3)
	assert.False(t, p.Loaded(), "no default, should start unloaded")

	mode, ok := reg.Get("CAM_MODE")
	require.True(t, ok)
	assert.False(t, mode.Loaded(), "defaults display but do not count as loaded")
	assert.Equal(t, "Photo", mode.OptionName())
}

func TestParseDefinitionDuplicateName(t *testing.T) {
	src := `
parameters:
  - {name: CAM_ISO, type: uint32}
  - {name: CAM_ISO, type: uint32}
`
	_, err := ParseDefinition([]byte(src))
	assert.ErrorContains(t, err, "duplicate parameter")
}

func TestParseDefinitionUnknownRuleParam(t *testing.T) {
	src := `
parameters:
  - {name: CAM_ISO, type: uint32}
rules:
  - {param: CAM_MODE, value: "1", excludes: [CAM_ISO]}
`
	_, err := ParseDefinition([]byte(src))
	assert.ErrorContains(t, err, "unknown parameter")
}

func TestParseDefinitionBadType(t *testing.T) {
	src := `
parameters:
  - {name: CAM_ISO, type: quaternion}
`
	_, err := ParseDefinition([]byte(src))
	assert.ErrorContains(t, err, "unknown data type")
}

func TestExclusionRuleMatches(t *testing.T) {
	def, err := ParseDefinition([]byte(testDefinition))
	require.NoError(t, err)
	reg, err := def.BuildRegistry()
	require.NoError(t, err)

	rule := def.Rules[0]
	assert.False(t, rule.Matches(reg), "default mode is 0")

	require.NoError(t, reg.SetRaw("CAM_MODE", uint32(1)))
	assert.True(t, rule.Matches(reg))
}
