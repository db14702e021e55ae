package knowledge

import (
	"testing"

	"hrcentral/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntries(t *testing.T) {
	all := Entries()
	require.NotEmpty(t, all)

	t.Run("Every entry has text, source and at least one role", func(t *testing.T) {
		for _, entry := range all {
			assert.NotEmpty(t, entry.Text)
			assert.NotEmpty(t, entry.Source)
			assert.NotEmpty(t, entry.Roles)
		}
	})

	t.Run("Every role has content", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleCEO, models.RoleCFO, models.RoleCOO, models.RoleHR} {
			assert.NotEmpty(t, ForRole(role), "role %s", role)
		}
	})
}

func TestForRole(t *testing.T) {
	t.Run("Only returns entries tagged for the role", func(t *testing.T) {
		for _, entry := range ForRole(models.RoleCFO) {
			assert.True(t, entry.HasRole(models.RoleCFO))
		}
	})

	t.Run("Unknown role sees nothing", func(t *testing.T) {
		assert.Empty(t, ForRole(models.Role("INTERN")))
	})

	t.Run("Role scoping actually partitions content", func(t *testing.T) {
		cfo := len(ForRole(models.RoleCFO))
		all := len(Entries())
		assert.Less(t, cfo, all)
	})
}
