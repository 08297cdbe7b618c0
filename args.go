package checker

import (
	"time"

	"github.com/adventkit/aoc-checker/types"
)

// CheckArgs selects a single run: <day> <year> <runtime> <part> <input>
type CheckArgs struct {
	Day     types.Day
	Year    types.Year
	Runtime types.Runtime
	Part    types.Part
	Input   types.InputVariant
}

// InitArgs selects the day to scaffold: <day> <year>
type InitArgs struct {
	Day  types.Day
	Year types.Year
}

// ParseCheckArgs parses the positional arguments of the check command. A
// missing day or year defaults to today's. Every invalid argument is
// reported in the returned *types.ValidationError.
func ParseCheckArgs(args []string, now time.Time) (CheckArgs, error) {
	verr := &types.ValidationError{}
	day, year := parseDate(verr, args, now)

	rt, err := types.ParseRuntime(arg(args, 2))
	verr.Check("runtime", err)
	part, err := types.ParsePart(arg(args, 3))
	verr.Check("part", err)
	input, err := types.ParseInputVariant(arg(args, 4))
	verr.Check("input", err)
	if len(args) > 5 {
		verr.Add("args", "expected at most 5 arguments: <day> <year> <runtime> <part> <input>")
	}

	if err := verr.OrNil(); err != nil {
		return CheckArgs{}, err
	}
	return CheckArgs{Day: day, Year: year, Runtime: rt, Part: part, Input: input}, nil
}

// ParseInitArgs parses the positional arguments of the init command
func ParseInitArgs(args []string, now time.Time) (InitArgs, error) {
	verr := &types.ValidationError{}
	day, year := parseDate(verr, args, now)
	if len(args) > 2 {
		verr.Add("args", "expected at most 2 arguments: <day> <year>")
	}
	if err := verr.OrNil(); err != nil {
		return InitArgs{}, err
	}
	return InitArgs{Day: day, Year: year}, nil
}

func parseDate(verr *types.ValidationError, args []string, now time.Time) (types.Day, types.Year) {
	day := types.Day(now.Day())
	if raw := arg(args, 0); raw != "" {
		d, err := types.ParseDay(raw)
		verr.Check("day", err)
		day = d
	} else {
		verr.Check("day", day.Validate())
	}

	year := types.Year(now.Year())
	if raw := arg(args, 1); raw != "" {
		y, err := types.ParseYear(raw)
		verr.Check("year", err)
		year = y
	}
	return day, year
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
