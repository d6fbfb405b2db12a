package main

import (
	"testing"

	"vfx-dashboard/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudioSeedData(t *testing.T) {
	data, err := readStudio("data/studio.json")
	require.NoError(t, err)

	require.NotEmpty(t, data.Organization)
	assert.GreaterOrEqual(t, len(data.Password), 8)

	emails := map[string]bool{}
	admins := 0
	for _, u := range data.Users {
		assert.False(t, emails[u.Email], "duplicate user %s", u.Email)
		emails[u.Email] = true
		if u.IsAdmin {
			admins++
		}
		if u.Role != "" {
			assert.Contains(t, models.Roles, u.Role)
		}
		if u.ExperienceLevel != "" {
			assert.Contains(t, models.ExperienceLevels, u.ExperienceLevel)
		}
		for _, p := range u.WorkPreferences {
			assert.Contains(t, []models.PreferenceValue{models.PreferenceTrue, models.PreferenceFalse}, p.Value)
		}
	}
	assert.Equal(t, 1, admins)

	for _, p := range data.Projects {
		for _, m := range p.Members {
			assert.True(t, emails[m], "unknown member %s", m)
		}
		for _, task := range p.Tasks {
			if task.Assignee != "" {
				assert.True(t, emails[task.Assignee], "unknown assignee %s", task.Assignee)
			}
		}
	}
	for _, r := range data.Resources {
		assert.Contains(t, []string{"software", "hardware", "license", "render-node", "asset-library", "other"}, r.Type)
		if r.AssignedTo != "" {
			assert.True(t, emails[r.AssignedTo], "unknown assignee %s", r.AssignedTo)
		}
	}
}
