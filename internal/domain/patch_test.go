package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbe-dev-920/tce-serv/internal/domain"
)

// TestPatch_triState verifies the three decode outcomes: an absent key
// leaves the field Unchanged, an explicit null means Clear, and a value
// means SetTo.
func TestPatch_triState(t *testing.T) {
	type body struct {
		ConductorID domain.Patch[uuid.UUID]         `json:"conductorId"`
		Status      domain.Patch[domain.TripStatus] `json:"status"`
	}

	t.Run("absent", func(t *testing.T) {
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{}`), &b))
		assert.True(t, b.ConductorID.Unchanged())
		assert.False(t, b.ConductorID.Clear())
		_, ok := b.ConductorID.Get()
		assert.False(t, ok)
	})

	t.Run("null", func(t *testing.T) {
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{"conductorId":null}`), &b))
		assert.False(t, b.ConductorID.Unchanged())
		assert.True(t, b.ConductorID.Clear())
		_, ok := b.ConductorID.Get()
		assert.False(t, ok)
	})

	t.Run("value", func(t *testing.T) {
		id := uuid.New()
		var b body
		require.NoError(t, json.Unmarshal([]byte(`{"conductorId":"`+id.String()+`","status":"completed"}`), &b))
		assert.False(t, b.ConductorID.Unchanged())
		assert.False(t, b.ConductorID.Clear())
		got, ok := b.ConductorID.Get()
		require.True(t, ok)
		assert.Equal(t, id, got)

		st, ok := b.Status.Get()
		require.True(t, ok)
		assert.Equal(t, domain.TripStatusCompleted, st)
	})

	t.Run("bad value", func(t *testing.T) {
		var b body
		assert.Error(t, json.Unmarshal([]byte(`{"conductorId":"not-a-uuid"}`), &b))
	})
}

func TestPatch_constructors(t *testing.T) {
	p := domain.SetTo(domain.TimeOfDay(510))
	v, ok := p.Get()
	require.True(t, ok)
	assert.Equal(t, domain.TimeOfDay(510), v)

	c := domain.Cleared[domain.TimeOfDay]()
	assert.True(t, c.Clear())
	assert.False(t, c.Unchanged())
}
