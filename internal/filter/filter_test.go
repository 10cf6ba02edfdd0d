package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thomiceli/gists-gone/internal/gist"
)

func day(value string) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func testGists() []gist.Gist {
	return []gist.Gist{
		{ID: "7fea2e3837f324e5e3699917f687c862", Visibility: gist.PrivateVisibility, Language: "Clojure", CreatedAt: day("2024-07-12")},
		{ID: "5f6258f9caae6f2c6511e926f7f623af", Visibility: gist.PrivateVisibility, Language: "Rust", CreatedAt: day("2024-07-12")},
		{ID: "3a9f7f73665cf174f9466e3f28fcaf89", Visibility: gist.PublicVisibility, Language: gist.UnknownLanguage, CreatedAt: day("2024-07-10")},
		{ID: "8eaee095f4b3a822127cc4fa368b4165", Visibility: gist.PublicVisibility, Language: "Ruby", CreatedAt: day("2024-06-16")},
		{ID: "bc22d164463296d99cbeb1a7038b6d6e", Visibility: gist.PublicVisibility, Language: "SQL", CreatedAt: day("2024-06-16")},
		{ID: "68ae668e6b5e7364f44b62dd7062231f", Visibility: gist.PublicVisibility, Language: "Python", CreatedAt: day("2024-06-16")},
	}
}

func ids(gists []gist.Gist) []string {
	out := make([]string, 0, len(gists))
	for _, g := range gists {
		out = append(out, g.ID)
	}
	return out
}

func visibility(v gist.Visibility) *gist.Visibility {
	return &v
}

func TestEmptyCriteriaMatchesEverything(t *testing.T) {
	gists := testGists()
	criteria := Criteria{}

	require.True(t, criteria.Empty())
	require.Equal(t, gists, Apply(gists, criteria))
}

func TestFilterByVisibility(t *testing.T) {
	gists := testGists()

	matched := Apply(gists, Criteria{Visibility: visibility(gist.PrivateVisibility)})
	require.Len(t, matched, 2)
	require.Contains(t, ids(matched), "7fea2e3837f324e5e3699917f687c862")
	require.Contains(t, ids(matched), "5f6258f9caae6f2c6511e926f7f623af")

	matched = Apply(gists, Criteria{Visibility: visibility(gist.PublicVisibility)})
	require.Len(t, matched, 4)
	require.NotContains(t, ids(matched), "7fea2e3837f324e5e3699917f687c862")
}

func TestFilterByLanguages(t *testing.T) {
	gists := testGists()

	matched := Apply(gists, Criteria{Languages: []string{"Python"}})
	require.Equal(t, []string{"68ae668e6b5e7364f44b62dd7062231f"}, ids(matched))

	matched = Apply(gists, Criteria{Languages: []string{"Python", "SQL"}})
	require.Len(t, matched, 2)

	// A language nobody uses does not disturb the others.
	matched = Apply(gists, Criteria{Languages: []string{"Python", "Spam"}})
	require.Equal(t, []string{"68ae668e6b5e7364f44b62dd7062231f"}, ids(matched))

	// Language match is case-sensitive.
	matched = Apply(gists, Criteria{Languages: []string{"python"}})
	require.Empty(t, matched)
}

func TestUnknownSentinelMatchesOnlyUnresolvedLanguages(t *testing.T) {
	gists := testGists()

	matched := Apply(gists, Criteria{Languages: []string{gist.UnknownLanguage}})
	require.Equal(t, []string{"3a9f7f73665cf174f9466e3f28fcaf89"}, ids(matched))
}

func TestFilterBySingleDate(t *testing.T) {
	gists := testGists()

	dates, err := ParseDateRange([]string{"2024-06-16"})
	require.NoError(t, err)

	matched := Apply(gists, Criteria{Dates: dates})
	require.Len(t, matched, 3)
	require.ElementsMatch(t, []string{
		"8eaee095f4b3a822127cc4fa368b4165",
		"bc22d164463296d99cbeb1a7038b6d6e",
		"68ae668e6b5e7364f44b62dd7062231f",
	}, ids(matched))

	// Same calendar day matches regardless of the time of day.
	late := gist.Gist{ID: "late", CreatedAt: day("2024-06-16").Add(23*time.Hour + 59*time.Minute)}
	require.True(t, Criteria{Dates: dates}.Match(late))
}

func TestFilterByDateRange(t *testing.T) {
	gists := testGists()

	dates, err := ParseDateRange([]string{"2024-07-11", "2024-08-01"})
	require.NoError(t, err)
	require.Len(t, Apply(gists, Criteria{Dates: dates}), 2)

	dates, err = ParseDateRange([]string{"2021-01-01", "2023-01-01"})
	require.NoError(t, err)
	require.Empty(t, Apply(gists, Criteria{Dates: dates}))

	dates, err = ParseDateRange([]string{"2025-01-01", "2030-01-01"})
	require.NoError(t, err)
	require.Empty(t, Apply(gists, Criteria{Dates: dates}))

	// Range bounds are inclusive on both ends.
	dates, err = ParseDateRange([]string{"2024-06-16", "2024-07-12"})
	require.NoError(t, err)
	require.Len(t, Apply(gists, Criteria{Dates: dates}), 6)
}

func TestFilterCombinations(t *testing.T) {
	gists := testGists()

	matched := Apply(gists, Criteria{Visibility: visibility(gist.PrivateVisibility), Languages: []string{"Python"}})
	require.Empty(t, matched)

	matched = Apply(gists, Criteria{Visibility: visibility(gist.PublicVisibility), Languages: []string{"Python", "Ruby"}})
	require.Len(t, matched, 2)

	dates, err := ParseDateRange([]string{"2024-07-12"})
	require.NoError(t, err)
	matched = Apply(gists, Criteria{Visibility: visibility(gist.PrivateVisibility), Dates: dates})
	require.Len(t, matched, 2)

	matched = Apply(gists, Criteria{Visibility: visibility(gist.PublicVisibility), Languages: []string{"Rust", "Clojure"}, Dates: dates})
	require.Empty(t, matched)

	dates, err = ParseDateRange([]string{"2024-04-01", "2024-06-28"})
	require.NoError(t, err)
	matched = Apply(gists, Criteria{Visibility: visibility(gist.PublicVisibility), Dates: dates})
	require.Len(t, matched, 3)

	matched = Apply(gists, Criteria{Visibility: visibility(gist.PublicVisibility), Languages: []string{"Ruby"}, Dates: dates})
	require.Equal(t, []string{"8eaee095f4b3a822127cc4fa368b4165"}, ids(matched))

	dates, err = ParseDateRange([]string{"2024-01-01", "2024-06-15"})
	require.NoError(t, err)
	matched = Apply(gists, Criteria{Visibility: visibility(gist.PublicVisibility), Languages: []string{"SQL"}, Dates: dates})
	require.Empty(t, matched)
}

func TestPythonPublicScenario(t *testing.T) {
	gists := []gist.Gist{
		{ID: "g1", Visibility: gist.PublicVisibility, Language: "Python", CreatedAt: day("2024-01-01")},
		{ID: "g2", Visibility: gist.PublicVisibility, Language: "Python", CreatedAt: day("2024-02-01")},
		{ID: "g3", Visibility: gist.PublicVisibility, Language: "Python", CreatedAt: day("2024-03-01")},
		{ID: "g4", Visibility: gist.PrivateVisibility, Language: "Python", CreatedAt: day("2024-04-01")},
		{ID: "g5", Visibility: gist.PublicVisibility, Language: "Go", CreatedAt: day("2024-05-01")},
		{ID: "g6", Visibility: gist.PublicVisibility, Language: "Ruby", CreatedAt: day("2024-06-01")},
		{ID: "g7", Visibility: gist.PrivateVisibility, Language: "Go", CreatedAt: day("2024-07-01")},
		{ID: "g8", Visibility: gist.PrivateVisibility, Language: gist.UnknownLanguage, CreatedAt: day("2024-08-01")},
		{ID: "g9", Visibility: gist.PublicVisibility, Language: "SQL", CreatedAt: day("2024-09-01")},
		{ID: "g10", Visibility: gist.PublicVisibility, Language: gist.UnknownLanguage, CreatedAt: day("2024-10-01")},
	}

	matched := Apply(gists, Criteria{Languages: []string{"Python"}, Visibility: visibility(gist.PublicVisibility)})
	require.Equal(t, []string{"g1", "g2", "g3"}, ids(matched))
}

func TestParseDateRange(t *testing.T) {
	dates, err := ParseDateRange(nil)
	require.NoError(t, err)
	require.Nil(t, dates)

	dates, err = ParseDateRange([]string{"2024-01-01"})
	require.NoError(t, err)
	require.Equal(t, dates.Start, dates.End)

	dates, err = ParseDateRange([]string{"2024-01-01", "2024-02-01"})
	require.NoError(t, err)
	require.Equal(t, day("2024-01-01"), dates.Start)
	require.Equal(t, day("2024-02-01"), dates.End)

	_, err = ParseDateRange([]string{"2024-01-01", "2024-02-01", "2024-03-01"})
	require.Error(t, err)

	_, err = ParseDateRange([]string{"2024-01"})
	require.Error(t, err)

	_, err = ParseDateRange([]string{"2024-01-01", "2024"})
	require.Error(t, err)

	_, err = ParseDateRange([]string{"2024-05-01", "2024-01-01"})
	require.Error(t, err, "inverted ranges should be rejected")
}
