package scaffold

import (
	"github.com/adventkit/aoc-checker/types"
)

const typeScriptTemplate = `export default async function (input: AsyncIterable<string>) {
  for await (const line of input) {
    // parse input here
  }

  return 0;
}
`

const pythonTemplate = `def main(lines):
    for line in lines:
        pass  # parse input here

    return 0
`

var solutionTemplates = map[types.Language]string{
	types.LanguageDeno:       typeScriptTemplate,
	types.LanguageTypeScript: typeScriptTemplate,
	types.LanguagePython:     pythonTemplate,
}

// SolutionTemplate returns the starter file for a language
func SolutionTemplate(lang types.Language) (string, bool) {
	tmpl, ok := solutionTemplates[lang]
	return tmpl, ok
}
