package almanac_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunar/internal/almanac"
	"github.com/tartampluch/go-lunar/internal/config"
)

func sampleEntry(advice string) almanac.Entry {
	return almanac.Entry{
		Phase:        "Полнолуние в Лев (99% освещ.)",
		PhaseName:    "Полнолуние",
		PhaseTime:    "2024-02-24T12:30:00Z",
		Percent:      99,
		Sign:         "Лев",
		Aspects:      []string{"☍ Солнце (-1.2°)"},
		VoidOfCourse: almanac.VoidWindow{Start: "24.02 10:00", End: "24.02 18:15"},
		NextEvent:    "→ через 8 дней: Последняя четверть в Стрелец",
		Advice:       []string{advice, "• второй", "• третий"},
		LongDesc:     "Полнолуние в феврале подсвечивает итоги.",
		FavorableDays: map[string][]int{
			config.CategoryGeneral: {2, 3},
			config.CategoryHaircut: {},
		},
		UnfavorableDays: map[string][]int{
			config.CategoryGeneral: {13},
		},
	}
}

func TestEncode_KeepsOrderAndText(t *testing.T) {
	a := almanac.New()
	require.NoError(t, a.Add("2024-02-01", sampleEntry("<первый> & ко")))
	require.NoError(t, a.Add("2024-02-02", sampleEntry("первый")))

	data, err := a.Encode()
	require.NoError(t, err)
	s := string(data)

	assert.True(t, strings.HasPrefix(s, "{\n  \"2024-02-01\": {\n    \"phase\": "), s)
	assert.True(t, strings.HasSuffix(s, "\n  }\n}\n"), s)
	assert.Less(t, strings.Index(s, "2024-02-01"), strings.Index(s, "2024-02-02"))
	assert.Contains(t, s, "Полнолуние")
	assert.Contains(t, s, "<первый> & ко")
	assert.Contains(t, s, `"long_desc": "Полнолуние в феврале подсвечивает итоги."`)
	assert.NotContains(t, s, `\u`)
}

func TestEncode_Empty(t *testing.T) {
	data, err := almanac.New().Encode()
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestAdd_DuplicateDate(t *testing.T) {
	a := almanac.New()
	require.NoError(t, a.Add("2024-02-01", sampleEntry("x")))
	assert.ErrorIs(t, a.Add("2024-02-01", sampleEntry("y")), almanac.ErrDuplicateDate)
	assert.Equal(t, 1, a.Len())
}

func TestUnmarshal_KeepsDocumentOrder(t *testing.T) {
	doc := `{"2024-02-03": {"percent": 3}, "2024-02-01": {"percent": 1}}`

	a := almanac.New()
	require.NoError(t, a.UnmarshalJSON([]byte(doc)))
	assert.Equal(t, []string{"2024-02-03", "2024-02-01"}, a.Dates())

	e, ok := a.Lookup("2024-02-01")
	require.True(t, ok)
	assert.Equal(t, 1, e.Percent)
}

func TestUnmarshal_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"NotObject", `[1, 2]`},
		{"BadEntry", `{"2024-02-01": 5}`},
		{"Truncated", `{"2024-02-01": {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, almanac.New().UnmarshalJSON([]byte(tt.doc)))
		})
	}

	dup := `{"2024-02-01": {}, "2024-02-01": {}}`
	assert.ErrorIs(t, almanac.New().UnmarshalJSON([]byte(dup)), almanac.ErrDuplicateDate)
}

func TestWriteReadFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lunar_calendar.json")

	a := almanac.New()
	require.NoError(t, a.Add("2024-02-01", sampleEntry("первый")))
	require.NoError(t, a.Add("2024-02-02", sampleEntry("другой")))
	require.NoError(t, almanac.WriteFile(path, a))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, config.FilePermPublic, info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(dir, config.TempFilePattern))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	got, err := almanac.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.Dates(), got.Dates())
	for _, date := range a.Dates() {
		want, _ := a.Lookup(date)
		have, _ := got.Lookup(date)
		if diff := cmp.Diff(want, have, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", date, diff)
		}
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), config.FilePermUserRW))

	require.NoError(t, almanac.WriteFile(path, almanac.New()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	err := almanac.WriteFile(path, almanac.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrAlmanacWrite)
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := almanac.ReadFile(filepath.Join(dir, "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrAlmanacRead)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), config.FilePermUserRW))
	_, err = almanac.ReadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrAlmanacDecode)
}
