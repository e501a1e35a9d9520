package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameAuthor(t *testing.T) {
	cases := []struct {
		name string
		a, b Creator
		want bool
	}{
		{"same user id", Creator{UserID: "u1"}, Creator{UserID: "u1"}, true},
		{"different user id wins over same username", Creator{UserID: "u1", Username: "alice"}, Creator{UserID: "u2", Username: "alice"}, false},
		{"same username", Creator{Username: "alice"}, Creator{Username: "alice"}, true},
		{"username used when one side lacks user id", Creator{UserID: "u1", Username: "alice"}, Creator{Username: "alice"}, true},
		{"same creator entity", Creator{CreatorID: "c9"}, Creator{CreatorID: "c9"}, true},
		{"different creator entity", Creator{CreatorID: "c9"}, Creator{CreatorID: "c8"}, false},
		{"no shared channel", Creator{UserID: "u1"}, Creator{Username: "alice"}, false},
		{"no identity at all", Creator{}, Creator{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Project{ID: "a", Creator: tc.a}
			b := Project{ID: "b", Creator: tc.b}
			assert.Equal(t, tc.want, SameAuthor(a, b))
			assert.Equal(t, tc.want, SameAuthor(b, a))
		})
	}
}

func TestScore_Exceeds(t *testing.T) {
	ok, err := Fraction(0.61).Exceeds(Fraction(0.6))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Fraction(0.6).Exceeds(Fraction(0.6))
	require.NoError(t, err)
	assert.False(t, ok, "threshold is strict")

	_, err = Percent(70).Exceeds(Fraction(0.5))
	assert.True(t, errors.Is(err, ErrUnitMismatch))
}

func TestScore_Clamp(t *testing.T) {
	assert.Equal(t, 1.0, Fraction(1.4).Value)
	assert.Equal(t, 0.0, Fraction(-1).Value)
	assert.Equal(t, 100.0, Percent(130).Value)
	assert.Equal(t, 0.0, Percent(-5).Value)
}

func TestScore_Percentage(t *testing.T) {
	assert.Equal(t, 67, Fraction(0.679).Percentage())
	assert.Equal(t, 42, Percent(42).Percentage())
}

func TestCreator_DisplayName(t *testing.T) {
	assert.Equal(t, "alice", Creator{Username: "alice"}.DisplayName())
	assert.Equal(t, "another user", Creator{UserID: "u1"}.DisplayName())
	assert.True(t, Creator{CreatorID: "x"}.Resolvable())
	assert.False(t, Creator{Username: "  "}.Resolvable())
}
