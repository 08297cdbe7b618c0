// Package scaffold prepares the io directory and solution files of a new
// puzzle day, downloading the personal input and the puzzle descriptions.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/joho/godotenv"

	"github.com/adventkit/aoc-checker/layout"
	"github.com/adventkit/aoc-checker/types"
)

const (
	DefaultBaseURL   = "https://adventofcode.com"
	DefaultUserAgent = "github.com/adventkit/aoc-checker"
	DefaultTimeout   = 30 * time.Second

	// SessionKeyEnv holds the adventofcode.com session cookie
	SessionKeyEnv = "AOC_SESSION_KEY"
)

// ErrNoSessionKey is returned when a download is needed but no session key is
// configured
var ErrNoSessionKey = errors.New(SessionKeyEnv + " environment variable is not set")

// LoadSessionKey reads the session key from the environment after loading
// envFile, if it exists. Variables already set in the environment win over
// the file.
func LoadSessionKey(envFile string) (string, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return strings.TrimSpace(os.Getenv(SessionKeyEnv)), nil
}

// Config contains the scaffolder configuration
type Config struct {
	Layout     layout.Layout
	BaseURL    string
	UserAgent  string
	SessionKey string
	HTTPClient *http.Client
	// Out receives the "C <path>" and "E <path>" lines
	Out io.Writer
	Log log.Logger
}

// Scaffolder creates the files of a puzzle day. Existing files are never
// overwritten.
type Scaffolder struct {
	layout     layout.Layout
	baseURL    string
	userAgent  string
	sessionKey string
	client     *http.Client
	out        io.Writer
	log        log.Logger
}

// New creates a new scaffolder
func New(cfg Config) (*Scaffolder, error) {
	if cfg.Layout.IODir == "" || cfg.Layout.SolutionsDir == "" {
		return nil, fmt.Errorf("layout directories cannot be empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	return &Scaffolder{
		layout:     cfg.Layout,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		sessionKey: cfg.SessionKey,
		client:     cfg.HTTPClient,
		out:        cfg.Out,
		log:        cfg.Log,
	}, nil
}

// Init scaffolds one puzzle day: the io directory, the actual input, empty
// example files, the descriptions and a solution file per part for lang.
// It stops at the first error.
func (s *Scaffolder) Init(ctx context.Context, year types.Year, day types.Day, lang types.Language) error {
	dayDir := s.layout.DayDir(year, day)

	if err := s.createDayDir(dayDir); err != nil {
		return err
	}
	if err := s.fetchActualInput(ctx, year, day); err != nil {
		return err
	}
	if err := s.createExampleFiles(year, day); err != nil {
		return err
	}
	if err := s.fetchDescriptions(ctx, year, day); err != nil {
		return err
	}
	return s.createSolutions(year, day, lang)
}

func (s *Scaffolder) createDayDir(dayDir string) error {
	if exists(dayDir) {
		s.logExistence(dayDir)
		return nil
	}
	if err := os.MkdirAll(dayDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dayDir, err)
	}
	s.logCreation(dayDir)
	return nil
}

func (s *Scaffolder) fetchActualInput(ctx context.Context, year types.Year, day types.Day) error {
	// The part is irrelevant: both parts share the actual input.
	inputPath := s.layout.InputPath(types.PuzzleID{Year: year, Day: day, Part: types.Part1}, types.InputActual)
	if exists(inputPath) {
		s.logExistence(inputPath)
		return nil
	}

	body, err := s.fetch(ctx, fmt.Sprintf("%d/day/%d/input", int(year), int(day)))
	if err != nil {
		return fmt.Errorf("input fetch failed: %w", err)
	}
	defer body.Close()

	f, err := os.Create(inputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", inputPath, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(inputPath)
		return fmt.Errorf("failed to download input: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", inputPath, err)
	}
	s.logCreation(inputPath)
	return nil
}

func (s *Scaffolder) createExampleFiles(year types.Year, day types.Day) error {
	for _, part := range types.Parts {
		id := types.PuzzleID{Year: year, Day: day, Part: part}
		for _, path := range []string{
			s.layout.InputPath(id, types.InputExample),
			s.layout.ExpectedPath(id, types.InputExample),
		} {
			if err := s.createIfMissing(path, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Scaffolder) fetchDescriptions(ctx context.Context, year types.Year, day types.Day) error {
	paths := make([]string, len(types.Parts))
	missing := 0
	for i, part := range types.Parts {
		paths[i] = s.layout.DescriptionPath(year, day, part)
		if exists(paths[i]) {
			s.logExistence(paths[i])
		} else {
			missing++
		}
	}
	if missing == 0 {
		return nil
	}

	body, err := s.fetch(ctx, fmt.Sprintf("%d/day/%d", int(year), int(day)))
	if err != nil {
		return fmt.Errorf("description fetch failed: %w", err)
	}
	defer body.Close()

	descriptions, err := ExtractDescriptions(body)
	if err != nil {
		return err
	}
	switch {
	case len(descriptions) == 0:
		s.log.Error("No descriptions found", "year", year, "day", day)
		return nil
	case len(descriptions) > len(paths):
		s.log.Error("Found more descriptions than parts", "year", year, "day", day, "count", len(descriptions))
		return nil
	}

	for i, description := range descriptions {
		if exists(paths[i]) {
			continue
		}
		if strings.TrimSpace(description) == "" {
			s.log.Error("Empty description", "path", paths[i])
			continue
		}
		if err := os.WriteFile(paths[i], []byte(description), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", paths[i], err)
		}
		s.logCreation(paths[i])
	}
	return nil
}

func (s *Scaffolder) createSolutions(year types.Year, day types.Day, lang types.Language) error {
	tmpl, ok := SolutionTemplate(lang)
	if !ok {
		return fmt.Errorf("no solution template for language %q", lang)
	}
	for _, part := range types.Parts {
		path := s.layout.SolutionPath(types.Solution{
			PuzzleID: types.PuzzleID{Year: year, Day: day, Part: part},
			Language: lang,
		})
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := s.createIfMissing(path, tmpl); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scaffolder) createIfMissing(path, content string) error {
	if exists(path) {
		s.logExistence(path)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	s.logCreation(path)
	return nil
}

// fetch performs an authenticated GET below the base URL. Any status other
// than 200 is an error.
func (s *Scaffolder) fetch(ctx context.Context, path string) (io.ReadCloser, error) {
	if s.sessionKey == "" {
		return nil, ErrNoSessionKey
	}

	url := s.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cookie", "session="+s.sessionKey)
	req.Header.Set("User-Agent", s.userAgent)

	s.log.Debug("Fetching", "url", url)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

func (s *Scaffolder) logCreation(path string) {
	fmt.Fprintf(s.out, "C %s\n", path)
}

func (s *Scaffolder) logExistence(path string) {
	fmt.Fprintf(s.out, "E %s\n", path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
