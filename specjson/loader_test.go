package specjson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrt/hfsmc"
)

const ovenJSON = `
{
  "name": "oven",
  "initial": "A",
  "states": [
    {
      "name": "A",
      "initial": "B",
      "enter": ["foo"],
      "children": [
        {
          "name": "B",
          "initial": "D",
          "children": [
            {"name": "D", "enter": ["bar"]}
          ],
          "transitions": [
            {
              "event": "X",
              "condition": {"name": "ready", "polarity": "truthy"},
              "actions": ["grault"],
              "next": "C"
            }
          ]
        },
        {
          "name": "C",
          "transitions": [
            {"event": "Y", "next": "final"}
          ]
        }
      ]
    }
  ]
}
`

func TestLoadDecodesNestedSpec(t *testing.T) {
	spec, err := Load(strings.NewReader(ovenJSON))
	require.NoError(t, err)
	assert.Equal(t, "oven", spec.Name())
	assert.Equal(t, "A", spec.Initial())

	plan, err := hfsmc.NewBuilder().Build(spec)
	require.NoError(t, err)
	assert.Contains(t, plan.States, "/A/B/D")
	assert.Contains(t, plan.Events, "X")
	assert.Contains(t, plan.Events, "Y")
	assert.Contains(t, plan.Conditions, "ready")
	assert.Contains(t, plan.Actions, "grault")
}

func TestLoadRequiresInitial(t *testing.T) {
	_, err := Load(strings.NewReader(`{"name": "x", "states": []}`))
	require.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"name": `))
	require.Error(t, err)
}

func TestLoadRejectsStateWithoutName(t *testing.T) {
	_, err := Load(strings.NewReader(`{"initial": "A", "states": [{"initial": "B"}]}`))
	require.Error(t, err)
}
