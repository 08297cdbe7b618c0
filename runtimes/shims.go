package runtimes

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/adventkit/aoc-checker/types"
)

// Solutions export a single function that receives the input as an iterator
// of lines and returns the answer. Each runtime gets a tiny inline program that
// adapts the interpreter's native stdin/stdout to that contract.

const denoShim = `
import program from %s;
import { toLines } from "jsr:@std/streams/unstable-to-lines";
const { stdin, stdout } = Deno;
const input = toLines(stdin.readable);
const result = await program(input);
await stdout.write(new TextEncoder().encode(result.toString()));
`

const nodeShim = `
import program from %s;
import { toLines } from "@std/streams/unstable-to-lines";
import { ReadableStream } from "node:stream/web";
import { stdin, stdout } from "node:process";
const input = toLines(ReadableStream.from(stdin));
const result = await (program.default ?? program)(input);
await stdout.write(result.toString());
`

const bunShim = `
import program from %s;
import { toLines } from "@std/streams/unstable-to-lines";
const input = toLines(Bun.stdin.stream());
const result = await program(input);
await Bun.write(Bun.stdout, result.toString());
`

const pythonShim = `
import importlib.util, sys
spec = importlib.util.spec_from_file_location("solution", sys.argv[1])
module = importlib.util.module_from_spec(spec)
spec.loader.exec_module(module)
result = module.main(line.rstrip("\r\n") for line in sys.stdin)
sys.stdout.write(str(result))
`

// moduleSpecifier turns a solution path into a quoted file:// URL usable in an
// ES module import statement.
func moduleSpecifier(solutionPath string) string {
	abs, err := filepath.Abs(solutionPath)
	if err != nil {
		abs = solutionPath
	}
	quoted, _ := json.Marshal(fileURL(filepath.ToSlash(abs)))
	return string(quoted)
}

// fileURL builds a file URL from an absolute slash separated path. Windows
// volume paths ("C:/...") get the leading slash a file URL requires.
func fileURL(slashPath string) string {
	if !strings.HasPrefix(slashPath, "/") {
		slashPath = "/" + slashPath
	}
	u := url.URL{Scheme: "file", Path: slashPath}
	return u.String()
}

func sprintfShim(shim, solutionPath string) string {
	return fmt.Sprintf(shim, moduleSpecifier(solutionPath))
}

func denoHandler(binary, solutionPath string) ExecutionSpec {
	return ExecutionSpec{
		Command: binary,
		Args:    []string{"eval", "--ext=ts", sprintfShim(denoShim, solutionPath)},
	}
}

func nodeHandler(binary, solutionPath string) ExecutionSpec {
	return ExecutionSpec{
		Command: binary,
		Args:    []string{"--input-type=module", "-e", sprintfShim(nodeShim, solutionPath)},
	}
}

func bunHandler(binary, solutionPath string) ExecutionSpec {
	return ExecutionSpec{
		Command: binary,
		Args:    []string{"-e", sprintfShim(bunShim, solutionPath)},
	}
}

func pythonHandler(binary, solutionPath string) ExecutionSpec {
	return ExecutionSpec{
		Command: binary,
		Args:    []string{"-c", pythonShim, solutionPath},
	}
}

// DefaultDefinitions returns the built-in runtimes
func DefaultDefinitions() []Definition {
	return []Definition{
		{Runtime: types.RuntimeDeno, Binary: "deno", Home: types.LanguageDeno, Build: denoHandler},
		{Runtime: types.RuntimeNode, Binary: "tsx", Home: types.LanguageTypeScript, Build: nodeHandler},
		{Runtime: types.RuntimeBun, Binary: "bun", Home: types.LanguageTypeScript, Build: bunHandler},
		{Runtime: types.RuntimePython, Binary: "python3", Home: types.LanguagePython, Build: pythonHandler},
	}
}

// DefaultLanguages returns which runtimes execute each solution folder, in
// reporting order. The ts-deno folder may use Deno-only APIs; the shared ts
// folder must run on every TypeScript runtime.
func DefaultLanguages() map[types.Language][]types.Runtime {
	return map[types.Language][]types.Runtime{
		types.LanguageDeno:       {types.RuntimeDeno},
		types.LanguageTypeScript: {types.RuntimeDeno, types.RuntimeNode, types.RuntimeBun},
		types.LanguagePython:     {types.RuntimePython},
	}
}
