package finder

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/matching/scoring"
)

// tableScorer returns a fixed percent per candidate id.
type tableScorer map[string]int

func (t tableScorer) Score(_, candidate domain.Project) domain.Score {
	return domain.Percent(t[candidate.ID])
}

func (tableScorer) Unit() domain.Unit { return domain.UnitPercent }

func project(id, user string) domain.Project {
	return domain.Project{ID: id, Creator: domain.Creator{Username: user}}
}

func TestFind_EmptyCorpus(t *testing.T) {
	got, err := Find(context.Background(), project("p1", "alice"), nil, scoring.NewStructuredScorer(), Options{
		Threshold: domain.Fraction(0.3),
	})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Find(context.Background(), domain.Project{}, []domain.Project{}, scoring.NewFreeTextScorer(scoring.DescriptionRich), Options{
		Threshold: domain.Percent(49),
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFind_SameAuthorSuppressed(t *testing.T) {
	desc := "An intelligent chatbot for customer support using natural language processing"
	subject := domain.Project{ID: "p1", Name: "AI Chatbot", Description: desc, Country: "USA", Language: "Python", Creator: domain.Creator{Username: "alice"}}
	twin := subject
	twin.ID = "p2"

	s := scoring.NewStructuredScorer()
	require.Equal(t, 1.0, s.Score(subject, twin).Value)

	got, err := Find(context.Background(), subject, []domain.Project{twin}, s, Options{Threshold: domain.Fraction(0.3)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFind_SameAuthorEachChannel(t *testing.T) {
	scorer := tableScorer{"p2": 90}
	cases := []struct {
		name    string
		a, b    domain.Creator
		matched bool
	}{
		{"user id", domain.Creator{UserID: "u1", Username: "x"}, domain.Creator{UserID: "u1", Username: "y"}, false},
		{"username", domain.Creator{Username: "alice"}, domain.Creator{Username: "alice"}, false},
		{"creator id", domain.Creator{CreatorID: "c1"}, domain.Creator{CreatorID: "c1"}, false},
		{"no shared channel", domain.Creator{UserID: "u1"}, domain.Creator{Username: "alice"}, true},
		{"no identity", domain.Creator{}, domain.Creator{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subject := domain.Project{ID: "p1", Creator: tc.a}
			other := domain.Project{ID: "p2", Creator: tc.b}
			got, err := Find(context.Background(), subject, []domain.Project{other}, scorer, Options{Threshold: domain.Percent(0)})
			require.NoError(t, err)
			assert.Equal(t, tc.matched, len(got) == 1)
		})
	}
}

func TestFind_SkipsSubject(t *testing.T) {
	subject := domain.Project{ID: "p1", Creator: domain.Creator{UserID: "u1"}}
	self := domain.Project{ID: "p1", Creator: domain.Creator{UserID: "u2"}}
	got, err := Find(context.Background(), subject, []domain.Project{self}, tableScorer{"p1": 100}, Options{Threshold: domain.Percent(0)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFind_CapAndOrder(t *testing.T) {
	scorer := tableScorer{}
	corpus := make([]domain.Project, 0, 15)
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("p%02d", i)
		scorer[id] = 51 + (i*7)%45
		corpus = append(corpus, project(id, fmt.Sprintf("user%d", i)))
	}

	got, err := Find(context.Background(), project("draft", "me"), corpus, scorer, Options{
		Threshold: domain.Percent(49),
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score.Value, got[i].Score.Value)
	}
	for _, m := range got {
		assert.Greater(t, m.Score.Value, 49.0)
	}
}

func TestFind_StableTies(t *testing.T) {
	scorer := tableScorer{"a": 70, "b": 80, "c": 70, "d": 70}
	corpus := []domain.Project{project("a", "1"), project("b", "2"), project("c", "3"), project("d", "4")}

	got, err := Find(context.Background(), project("x", "0"), corpus, scorer, Options{Threshold: domain.Percent(50), Limit: 3})
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.Project.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestFind_ThresholdIsStrict(t *testing.T) {
	scorer := tableScorer{"a": 50, "b": 51}
	corpus := []domain.Project{project("a", "1"), project("b", "2")}

	got, err := Find(context.Background(), project("x", "0"), corpus, scorer, Options{Threshold: domain.Percent(50)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Project.ID)
}

func TestFind_UnitMismatch(t *testing.T) {
	_, err := Find(context.Background(), project("x", "0"), []domain.Project{project("a", "1")}, scoring.NewStructuredScorer(), Options{
		Threshold: domain.Percent(50),
	})
	assert.ErrorIs(t, err, domain.ErrUnitMismatch)
}

func TestFind_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Find(ctx, project("x", "0"), []domain.Project{project("a", "1")}, tableScorer{"a": 90}, Options{Threshold: domain.Percent(0)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFind_FreeTextCap(t *testing.T) {
	draft := domain.Project{
		Domain:           "Healthcare",
		TechnologiesUsed: "react, node",
		Description:      "Telemedicine platform for rural clinics",
	}
	corpus := make([]domain.Project, 0, 15)
	for i := 0; i < 15; i++ {
		p := draft
		p.ID = fmt.Sprintf("p%d", i)
		p.Creator = domain.Creator{Username: fmt.Sprintf("user%d", i)}
		corpus = append(corpus, p)
	}

	got, err := Find(context.Background(), draft, corpus, scoring.NewFreeTextScorer(scoring.DescriptionRich), Options{
		Threshold: domain.Percent(49),
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "p0", got[0].Project.ID)
	assert.Equal(t, 100.0, got[0].Score.Value)
}
