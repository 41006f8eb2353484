package almanac_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunar/internal/almanac"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/lunar"
)

func summaryDoc(t *testing.T) *almanac.Almanac {
	t.Helper()
	tables := func() (map[string][]int, map[string][]int) {
		return map[string][]int{
				config.CategoryGeneral: {2, 3},
				config.CategoryHaircut: {5, 6},
			}, map[string][]int{
				config.CategoryGeneral: {13},
			}
	}
	day := func(phase, sign, desc string, voc almanac.VoidWindow) almanac.Entry {
		fav, unfav := tables()
		return almanac.Entry{
			PhaseName:       phase,
			Sign:            sign,
			LongDesc:        desc,
			VoidOfCourse:    voc,
			FavorableDays:   fav,
			UnfavorableDays: unfav,
		}
	}

	long := almanac.VoidWindow{Start: "01.02 10:00", End: "02.02 08:00"}
	a := almanac.New()
	require.NoError(t, a.Add("2024-02-01", day("Полнолуние", "Дева", "Полная луна.", long)))
	require.NoError(t, a.Add("2024-02-02", day("Полнолуние", "Лев", "Полная луна.", long)))
	require.NoError(t, a.Add("2024-02-03", day("Полнолуние", "Дева", "Полная луна.",
		almanac.VoidWindow{Start: "03.02 10:00", End: "03.02 10:05"})))
	require.NoError(t, a.Add("2024-02-04", day("Убывающая Луна", "Весы", "",
		almanac.VoidWindow{Start: "31.01 22:00", End: "04.02 01:00"})))
	return a
}

func TestSummary_Blocks(t *testing.T) {
	tr := newTranslator(t)
	lines, err := almanac.Summary(summaryDoc(t), tr, testLocation)
	require.NoError(t, err)

	want := []string{
		"🌙 Лунный календарь ФЕВРАЛЬ 2024",
		"",
		"🌕 1–3 февр. (Лев, Дева)",
		"Полная луна.",
		"",
		lunar.WaningGibbous.Emoji() + " 4 февр. (Весы)",
		"",
		"✅ Благоприятные: 2, 3",
		"❌ Неблагоприятные: 13",
		"✂️ Стрижка: 5, 6",
		"✈️ Путешествия: —",
		"🛍️ Покупки: —",
		"❤️ Здоровье: —",
		"",
		"⚫️ Void-of-Course:",
		"01.02 10:00  →  02.02 08:00",
		"",
		tr.Msg(config.TKeySummaryFooter, nil),
	}
	assert.Equal(t, want, lines)
}

func TestSummary_NoVoidBlockWithoutLongWindows(t *testing.T) {
	a := almanac.New()
	require.NoError(t, a.Add("2024-02-01", almanac.Entry{
		PhaseName:    "Новолуние",
		VoidOfCourse: almanac.VoidWindow{Start: "01.02 10:00", End: "01.02 10:14"},
	}))

	lines, err := almanac.Summary(a, newTranslator(t), testLocation)
	require.NoError(t, err)
	assert.NotContains(t, lines, "⚫️ Void-of-Course:")
	assert.Contains(t, lines, "🌑 1 февр.")
	assert.Contains(t, lines, "✅ Благоприятные: —")
}

func TestSummary_EmptyDocument(t *testing.T) {
	lines, err := almanac.Summary(almanac.New(), newTranslator(t), testLocation)
	require.NoError(t, err)
	assert.Nil(t, lines)
}

func TestSummary_GeneratedMonth(t *testing.T) {
	_, m := buildFebruary(t)

	lines, err := almanac.Summary(m.Almanac(), newTranslator(t), testLocation)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.Equal(t, "🌙 Лунный календарь ФЕВРАЛЬ 2024", lines[0])
	for _, g := range m.PhaseGroups() {
		assert.Contains(t, lines, m.Days[g.First].Entry.LongDesc)
	}
}

func TestSummary_RoundTripsThroughFile(t *testing.T) {
	_, m := buildFebruary(t)
	path := filepath.Join(t.TempDir(), "almanac.json")
	require.NoError(t, almanac.WriteFile(path, m.Almanac()))
	doc, err := almanac.ReadFile(path)
	require.NoError(t, err)

	tr := newTranslator(t)
	fromFile, err := almanac.Summary(doc, tr, testLocation)
	require.NoError(t, err)
	direct, err := almanac.Summary(m.Almanac(), tr, testLocation)
	require.NoError(t, err)
	assert.Equal(t, direct, fromFile)
}
