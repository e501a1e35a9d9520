package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublicID(t *testing.T) {
	re := regexp.MustCompile(`^collab-\d{5}-\d{4}$`)
	for i := 0; i < 20; i++ {
		id, err := NewPublicID(PublicIDPrefix)
		require.NoError(t, err)
		assert.Regexp(t, re, id)
	}
}

func TestCreateInput_Normalize(t *testing.T) {
	in, err := CreateInput{Name: "  AI Chatbot ", Country: " USA"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "AI Chatbot", in.Name)
	assert.Equal(t, "USA", in.Country)

	_, err = CreateInput{Name: "   "}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProject_Match(t *testing.T) {
	p := Project{PublicID: "collab-12345-6789", Name: "AI Chatbot", UserID: "u-1", CreatorUsername: "alice", CreatorUID: "fb-1"}
	m := p.Match()
	assert.Equal(t, "collab-12345-6789", m.ID)
	assert.Equal(t, "u-1", m.Creator.UserID)
	assert.Equal(t, "alice", m.Creator.Username)
	assert.Equal(t, "fb-1", m.Creator.CreatorID)
}
