package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abiiranathan/filesearch/search"
	"github.com/charmbracelet/lipgloss"
)

// Shell asks for one query, prints the ranked matches and opens the one the
// user picks.
type Shell struct {
	in  *bufio.Reader
	out io.Writer

	// Open is called with the absolute path of the chosen file.
	Open func(path string) error

	MaxResults  int
	Suggestions int

	// Color enables lipgloss styling of the output.
	Color bool

	number lipgloss.Style
	path   lipgloss.Style
	dim    lipgloss.Style
}

// NewShell returns a shell reading from in and writing to out, configured by
// config. Files are opened with OpenFile.
func NewShell(in io.Reader, out io.Writer, config *Config) *Shell {
	return &Shell{
		in:          bufio.NewReader(in),
		out:         out,
		Open:        OpenFile,
		MaxResults:  config.MaxResults,
		Suggestions: config.Suggestions,
		number:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("154")),
		path:        lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (s *Shell) paint(style lipgloss.Style, text string) string {
	if !s.Color {
		return text
	}
	return style.Render(text)
}

// readLine prompts and returns one line without its line ending.
// ok is false if the input ended before anything was typed.
func (s *Shell) readLine(prompt string) (line string, ok bool, err error) {
	fmt.Fprint(s.out, prompt)

	line, err = s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return strings.TrimRight(line, "\r\n"), line != "", nil
		}
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// Choose returns the match numbered choice (1-based) in results.
// Anything outside [1, len(results.Matches)] is no choice.
func Choose(results *search.Results, choice int) (search.Match, bool) {
	if choice < 1 || choice > len(results.Matches) {
		return search.Match{}, false
	}
	return results.Matches[choice-1], true
}

// Run performs one query against store.
func (s *Shell) Run(store *search.Store, reindex bool) error {
	query, ok, err := s.readLine("Query: ")
	if err != nil || !ok {
		return err
	}

	start := time.Now()
	results, err := search.Find(query, store, search.Options{
		Reindex:     reindex,
		MaxResults:  s.MaxResults,
		Suggestions: s.Suggestions,
	})
	if err != nil {
		if errors.Is(err, search.ErrCorruptIndex) {
			return fmt.Errorf("%w; run again with --reindex", err)
		}
		return err
	}

	if results.Broadened {
		fmt.Fprintln(s.out, "Found no matching names, expanding search...")
	}
	fmt.Fprintf(s.out, "Found %d results in %.2f seconds.\n", results.Total, time.Since(start).Seconds())

	if results.Total == 0 {
		if len(results.Suggestions) > 0 {
			fmt.Fprintf(s.out, "Did you mean: %s?\n", s.paint(s.dim, strings.Join(results.Suggestions, ", ")))
		}
		return nil
	}

	for i, match := range results.Matches {
		fmt.Fprintf(s.out, "%s: %s\n", s.paint(s.number, strconv.Itoa(i+1)), s.paint(s.path, match.DisplayPath()))
	}

	answer, ok, err := s.readLine(fmt.Sprintf("Open a file (1-%d)? ", len(results.Matches)))
	if err != nil || !ok {
		return err
	}

	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return nil
	}

	match, ok := Choose(results, choice)
	if !ok {
		return nil
	}

	fmt.Fprintf(s.out, "Opening %s...\n", match.Name)
	return s.Open(filepath.Join(store.Root, filepath.FromSlash(match.DisplayPath())))
}
