// Package scoring turns the 20 rubric item scores of an evaluation into a
// total and a performance level.
package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ItemCount is the number of rubric items every evaluation scores.
const ItemCount = 20

const (
	MinTotal = ItemCount * 1
	MaxTotal = ItemCount * 5
)

// Level is a performance tier derived from the total score.
type Level string

const (
	LevelNeedsImprovement Level = "needs_improvement"
	LevelBasic            Level = "basic"
	LevelDeveloping       Level = "developing"
	LevelCompetent        Level = "competent"
	LevelExcellent        Level = "excellent"
)

// Levels lists the tiers from lowest to highest.
var Levels = []Level{LevelNeedsImprovement, LevelBasic, LevelDeveloping, LevelCompetent, LevelExcellent}

func (l Level) IsValid() bool {
	for _, v := range Levels {
		if l == v {
			return true
		}
	}
	return false
}

// inclusive upper bound of each tier except the last
var ladder = []struct {
	upTo  int
	level Level
}{
	{35, LevelNeedsImprovement},
	{50, LevelBasic},
	{65, LevelDeveloping},
	{80, LevelCompetent},
}

// LevelFor maps a total score to its tier.
func LevelFor(total int) Level {
	for _, step := range ladder {
		if total <= step.upTo {
			return step.level
		}
	}
	return LevelExcellent
}

// Sheet holds the item scores in rubric order; Sheet[0] is score1.
type Sheet [ItemCount]int

// Total returns the sum of all items.
func (s Sheet) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Validate reports every item that is not one of 1, 3, 5.
func (s Sheet) Validate() error {
	var bad []string
	for i, v := range s {
		if !ValidScore(v) {
			bad = append(bad, fmt.Sprintf("%s=%d", Key(i+1), v))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidScore, strings.Join(bad, ", "))
	}
	return nil
}

// Map returns the sheet keyed score1..score20.
func (s Sheet) Map() map[string]int {
	m := make(map[string]int, ItemCount)
	for i, v := range s {
		m[Key(i+1)] = v
	}
	return m
}

// Uniform returns a sheet with every item set to v.
func Uniform(v int) Sheet {
	var s Sheet
	for i := range s {
		s[i] = v
	}
	return s
}

var (
	ErrMissingScore = errors.New("missing item score")
	ErrInvalidScore = errors.New("item score must be 1, 3 or 5")
	ErrUnknownItem  = errors.New("unknown rubric item")
)

// ValidScore reports whether v is an allowed item score.
func ValidScore(v int) bool {
	return v == 1 || v == 3 || v == 5
}

// Key returns the field name of item n (1-based).
func Key(n int) string {
	return "score" + strconv.Itoa(n)
}

// Result is the outcome of scoring one evaluation.
type Result struct {
	Scores Sheet
	Total  int
	Level  Level
}

// Compute validates a score1..score20 mapping and classifies it.
func Compute(scores map[string]int) (Result, error) {
	sheet, err := SheetFromMap(scores)
	if err != nil {
		return Result{}, err
	}
	return ComputeSheet(sheet)
}

// ComputeSheet validates an ordered sheet and classifies it.
func ComputeSheet(sheet Sheet) (Result, error) {
	if err := sheet.Validate(); err != nil {
		return Result{}, err
	}
	total := sheet.Total()
	return Result{Scores: sheet, Total: total, Level: LevelFor(total)}, nil
}

// SheetFromMap converts a keyed mapping into a Sheet. All 20 keys are
// required and unknown keys are rejected.
func SheetFromMap(scores map[string]int) (Sheet, error) {
	var sheet Sheet

	var unknown []string
	for k := range scores {
		if n, ok := itemNumber(k); !ok || n < 1 || n > ItemCount {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return sheet, fmt.Errorf("%w: %s", ErrUnknownItem, strings.Join(unknown, ", "))
	}

	var missing []string
	for i := range sheet {
		v, ok := scores[Key(i+1)]
		if !ok {
			missing = append(missing, Key(i+1))
			continue
		}
		sheet[i] = v
	}
	if len(missing) > 0 {
		return sheet, fmt.Errorf("%w: %s", ErrMissingScore, strings.Join(missing, ", "))
	}
	return sheet, nil
}

func itemNumber(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "score")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || Key(n) != key {
		return 0, false
	}
	return n, true
}
