// Package types contains the identifiers and results shared across the checker
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// FirstYear is the first year puzzles were published
const FirstYear = 2015

const (
	MinDay = 1
	MaxDay = 25
)

// Year is a puzzle year, always rendered as four digits
type Year int

func (y Year) String() string {
	return fmt.Sprintf("%04d", int(y))
}

// Validate checks the year is not before the first published year
func (y Year) Validate() error {
	if y < FirstYear {
		return fmt.Errorf("must be >= %d (first puzzles were published in %d)", FirstYear, FirstYear)
	}
	return nil
}

// Day is a puzzle day, always rendered as two digits
type Day int

func (d Day) String() string {
	return fmt.Sprintf("%02d", int(d))
}

// Validate checks the day is within the calendar
func (d Day) Validate() error {
	if d < MinDay || d > MaxDay {
		return fmt.Errorf("must be between %d and %d", MinDay, MaxDay)
	}
	return nil
}

// Part selects one of the two halves of a puzzle
type Part string

const (
	Part1 Part = "1"
	Part2 Part = "2"
)

// Parts lists the parts in reporting order
var Parts = []Part{Part1, Part2}

func (p Part) String() string {
	return string(p)
}

// Validate checks the part is "1" or "2"
func (p Part) Validate() error {
	switch p {
	case Part1, Part2:
		return nil
	default:
		return fmt.Errorf("invalid part %q, expected one of: 1, 2", string(p))
	}
}

// InputVariant selects which input/expected-output file pair a run uses
type InputVariant string

const (
	InputExample InputVariant = "example"
	InputActual  InputVariant = "actual"
)

// InputVariants lists the variants in the order they are attempted
var InputVariants = []InputVariant{InputExample, InputActual}

func (v InputVariant) String() string {
	return string(v)
}

// Validate checks the variant is a known one
func (v InputVariant) Validate() error {
	switch v {
	case InputExample, InputActual:
		return nil
	default:
		return fmt.Errorf("invalid input %q, expected one of: %s, %s", string(v), InputActual, InputExample)
	}
}

// Runtime is a tag identifying one supported script interpreter
type Runtime string

const (
	RuntimeDeno   Runtime = "ts-deno"
	RuntimeNode   Runtime = "ts-node"
	RuntimeBun    Runtime = "ts-bun"
	RuntimePython Runtime = "py"
)

// KnownRuntimes lists every runtime tag the checker understands
var KnownRuntimes = []Runtime{RuntimeDeno, RuntimeNode, RuntimeBun, RuntimePython}

func (r Runtime) String() string {
	return string(r)
}

// Validate checks the runtime is a known tag
func (r Runtime) Validate() error {
	for _, known := range KnownRuntimes {
		if r == known {
			return nil
		}
	}
	return fmt.Errorf("invalid runtime %q, expected one of: %s", string(r), joinTags(KnownRuntimes))
}

// Language is the folder under the solutions root holding one family of
// solution files. A language maps to one file extension and one or more
// runtimes able to execute those files.
type Language string

const (
	LanguageDeno       Language = "ts-deno"
	LanguageTypeScript Language = "ts"
	LanguagePython     Language = "py"
)

// KnownLanguages lists every solution folder the checker understands
var KnownLanguages = []Language{LanguageDeno, LanguageTypeScript, LanguagePython}

var extensionByLanguage = map[Language]string{
	LanguageDeno:       "ts",
	LanguageTypeScript: "ts",
	LanguagePython:     "py",
}

func (l Language) String() string {
	return string(l)
}

// Extension is the file extension of solutions written in the language
func (l Language) Extension() string {
	return extensionByLanguage[l]
}

// Validate checks the language is a known folder
func (l Language) Validate() error {
	if _, ok := extensionByLanguage[l]; !ok {
		return fmt.Errorf("invalid language %q, expected one of: %s", string(l), joinTags(KnownLanguages))
	}
	return nil
}

// ParseLanguage parses a language folder name
func ParseLanguage(raw string) (Language, error) {
	l := Language(raw)
	if err := l.Validate(); err != nil {
		return "", err
	}
	return l, nil
}

// PuzzleID identifies one part of one puzzle
type PuzzleID struct {
	Year Year
	Day  Day
	Part Part
}

// Validate checks every component and reports one issue per invalid field
func (id PuzzleID) Validate() error {
	verr := &ValidationError{}
	verr.Check("year", id.Year.Validate())
	verr.Check("day", id.Day.Validate())
	verr.Check("part", id.Part.Validate())
	return verr.OrNil()
}

func (id PuzzleID) String() string {
	return fmt.Sprintf("%s %s part%s", id.Year, id.Day, id.Part)
}

// Less orders puzzle IDs by year, then day, then part
func (id PuzzleID) Less(other PuzzleID) bool {
	if id.Year != other.Year {
		return id.Year < other.Year
	}
	if id.Day != other.Day {
		return id.Day < other.Day
	}
	return id.Part < other.Part
}

// Solution is one solution file on disk: a puzzle part written in a language
type Solution struct {
	PuzzleID
	Language Language
}

func (s Solution) String() string {
	return fmt.Sprintf("%s/%s", s.Language, s.PuzzleID)
}

// ParseYear parses a year argument. Leading zeros are accepted.
func ParseYear(raw string) (Year, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("expected a number, received %q", raw)
	}
	y := Year(n)
	if err := y.Validate(); err != nil {
		return 0, err
	}
	return y, nil
}

// ParseDay parses a day argument, with or without zero padding
func ParseDay(raw string) (Day, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("expected a number, received %q", raw)
	}
	d := Day(n)
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return d, nil
}

// ParsePart parses a part argument
func ParsePart(raw string) (Part, error) {
	p := Part(raw)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// ParseRuntime parses a runtime tag
func ParseRuntime(raw string) (Runtime, error) {
	r := Runtime(raw)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// ParseInputVariant parses an input variant
func ParseInputVariant(raw string) (InputVariant, error) {
	v := InputVariant(raw)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

func joinTags[T ~string](tags []T) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
