package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oi/internal/adapters/builtin"
	"go.trai.ch/oi/internal/core/domain"
)

func TestProvider_Table(t *testing.T) {
	p, err := builtin.NewProvider(builtin.Table)
	require.NoError(t, err)

	cmds := p.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "definitions", cmds[0].Name)
	assert.Equal(t, "version", cmds[1].Name)

	var names []string
	for _, c := range cmds[0].Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"list", "show", "complete", "rebuild", "watch", "query"}, names)

	force := cmds[0].Find("rebuild", "--force")
	require.NotNil(t, force)
	assert.False(t, force.Required)
	assert.Equal(t, "Rebuild every layer", force.Description)
}

func TestProvider_CommandsAreCopies(t *testing.T) {
	p, err := builtin.NewProvider(builtin.Table)
	require.NoError(t, err)

	first := p.Commands()
	first[0].Name = "changed"
	first[0].Children[0].Name = "changed"

	second := p.Commands()
	assert.Equal(t, "definitions", second[0].Name)
	assert.Equal(t, "list", second[0].Children[0].Name)
}

func TestProvider_Fingerprint(t *testing.T) {
	a, err := builtin.NewProvider(builtin.Table)
	require.NoError(t, err)
	b, err := builtin.NewProvider(builtin.Table)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)

	changed, err := builtin.NewProvider([]builtin.Command{{Name: "version", Description: "Print the version"}})
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), changed.Fingerprint())
}

func TestProvider_InvalidUsage(t *testing.T) {
	_, err := builtin.NewProvider([]builtin.Command{{Name: "bad", Usage: `x "open`}})
	require.ErrorIs(t, err, domain.ErrUnterminatedQuote)
}
