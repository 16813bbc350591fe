package hfsmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanQueryHierarchy(t *testing.T) {
	b := NewBuilder()
	plan, err := b.Build(s2Spec())
	require.NoError(t, err)

	parent, ok := plan.ParentOf("/A/B")
	require.True(t, ok)
	assert.Equal(t, "/A", parent)

	parent, ok = plan.ParentOf("/A")
	require.True(t, ok)
	assert.Equal(t, "", parent)

	_, ok = plan.ParentOf("/nowhere")
	assert.False(t, ok)

	assert.Equal(t, []string{"/A/B"}, plan.Children("/A"))
	assert.Equal(t, []string{"/A/B/D"}, plan.Children("/A/B"))
	assert.Empty(t, plan.Children("/A/B/D"))

	assert.False(t, plan.IsLeaf("/A"))
	assert.True(t, plan.IsLeaf("/A/B/D"))

	child, ok := plan.InitialChild("/A")
	require.True(t, ok)
	assert.Equal(t, "/A/B", child)

	child, ok = plan.InitialChild("/A/B")
	require.True(t, ok)
	assert.Equal(t, "/A/B/D", child)

	_, ok = plan.InitialChild("/A/B/D")
	assert.False(t, ok)
}

func TestPlanQueryActions(t *testing.T) {
	b := NewBuilder()
	plan, err := b.Build(s2Spec())
	require.NoError(t, err)

	assert.Equal(t, []string{"foo"}, plan.EnterActions("/A"))
	assert.Nil(t, plan.EnterActions("/A/B"))
	assert.Equal(t, []string{"bar"}, plan.EnterActions("/A/B/D"))
	assert.Nil(t, plan.ExitActions("/A"))
	assert.Nil(t, plan.EnterActions("/nowhere"))
}
