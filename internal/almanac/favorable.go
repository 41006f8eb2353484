package almanac

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/tartampluch/go-lunar/internal/config"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTable is returned when a favorable-days table names a day
// outside its month.
var ErrInvalidTable = errors.New("favorable days table out of range")

// CategoryDays lists the favorable and unfavorable days of one category.
type CategoryDays struct {
	Favorable   []int `yaml:"favorable"`
	Unfavorable []int `yaml:"unfavorable"`
}

// MonthTable maps category keys to their days.
type MonthTable map[string]CategoryDays

// Tables maps "YYYY-MM" keys to month tables, as found in monthly_calendar.yml.
type Tables map[string]MonthTable

// DefaultTable is used for months missing from the file. Every day fits in
// the shortest month.
var DefaultTable = MonthTable{
	config.CategoryGeneral:  {Favorable: []int{2, 3, 9, 27}, Unfavorable: []int{13, 14, 24}},
	config.CategoryHaircut:  {Favorable: []int{2, 3, 9}, Unfavorable: []int{}},
	config.CategoryTravel:   {Favorable: []int{4, 5}, Unfavorable: []int{}},
	config.CategoryShopping: {Favorable: []int{1, 2, 7}, Unfavorable: []int{}},
	config.CategoryHealth:   {Favorable: []int{20, 21, 27}, Unfavorable: []int{}},
}

// LoadTables reads the YAML file at path. A missing file yields empty tables.
func LoadTables(path string) (Tables, error) {
	if path == "" {
		return Tables{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug(config.MsgTableDefault,
			config.LogKeyComponent, config.CompAlmanac,
			config.LogKeyFile, path,
		)
		return Tables{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTableRead, err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTableDecode, err)
	}
	if t == nil {
		t = Tables{}
	}
	return t, nil
}

// For returns the favorable and unfavorable day maps for a month. Every known
// category is present, possibly empty.
func (t Tables) For(year int, month time.Month) (favorable, unfavorable map[string][]int, err error) {
	key := fmt.Sprintf(config.FormatFavKey, year, int(month))
	table, ok := t[key]
	if !ok {
		slog.Info(config.MsgTableDefault,
			config.LogKeyComponent, config.CompAlmanac,
			config.LogKeyMonth, key,
		)
		table = DefaultTable
	}

	last := daysIn(year, month)
	favorable = make(map[string][]int, len(config.Categories))
	unfavorable = make(map[string][]int, len(config.Categories))
	for _, c := range config.Categories {
		favorable[c] = []int{}
		unfavorable[c] = []int{}
	}

	for cat, days := range table {
		for _, d := range slices.Concat(days.Favorable, days.Unfavorable) {
			if d < 1 || d > last {
				return nil, nil, fmt.Errorf("%w: %s %s day %d", ErrInvalidTable, key, cat, d)
			}
		}
		favorable[cat] = sortedCopy(days.Favorable)
		unfavorable[cat] = sortedCopy(days.Unfavorable)
	}
	return favorable, unfavorable, nil
}

func sortedCopy(days []int) []int {
	out := append([]int{}, days...)
	slices.Sort(out)
	return slices.Compact(out)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
