package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gl2gh/gl2gh/pkg/repo"
	"github.com/gl2gh/gl2gh/pkg/utils"
)

// ErrQuit is returned when the operator backs out of the picker.
var ErrQuit = errors.New("selection aborted")

// Row pairs a repository with its destination-side annotation, probed once
// while rendering and reused when the selection is applied.
type Row struct {
	Repo   repo.Repository
	Exists bool
}

// Prompter drives the interactive parts of a run over a single buffered
// input, so the picker and the confirmation share one reader.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// SelectRepositories renders the inventory and loops until the operator makes
// a usable selection or quits. Repositories already existing on the
// destination are dropped from the selection.
func (p *Prompter) SelectRepositories(rows []Row) ([]repo.Repository, error) {
	PrintRepositories(p.out, rows)
	printUsage(p.out)

	for {
		fmt.Fprint(p.out, "\nSelect: ")
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, ErrQuit
		}

		indices, all, err := ParseSelection(p.scanner.Text(), len(rows))
		if errors.Is(err, ErrQuit) {
			return nil, ErrQuit
		}
		if err != nil {
			fmt.Fprintf(p.out, "%v, try again\n", err)
			continue
		}

		selected := ApplySelection(p.out, rows, indices, all)
		if len(selected) == 0 && !all {
			fmt.Fprintln(p.out, "No valid repositories selected")
			continue
		}
		return selected, nil
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s (y/N): ", message)
	if !p.scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
	return answer == "y" || answer == "yes"
}

// ParseSelection parses a picker expression against a list of max entries.
// Supported forms: "3" (single), "1-4" (range), "2,5,7" (list), "all", and
// "q" to quit. Returned indices are zero-based, deduplicated, in input order.
func ParseSelection(input string, max int) (indices []int, all bool, err error) {
	selection := strings.ToLower(strings.TrimSpace(input))
	switch selection {
	case "q", "quit":
		return nil, false, ErrQuit
	case "all":
		return nil, true, nil
	case "":
		return nil, false, errors.New("empty selection")
	}

	var raw []int
	switch {
	case strings.Contains(selection, ","):
		for _, part := range strings.Split(selection, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, false, fmt.Errorf("invalid selection %q", input)
			}
			raw = append(raw, n-1)
		}
	case strings.Contains(selection, "-"):
		bounds := strings.SplitN(selection, "-", 2)
		start, startErr := strconv.Atoi(strings.TrimSpace(bounds[0]))
		end, endErr := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if startErr != nil || endErr != nil || start > end {
			return nil, false, fmt.Errorf("invalid range %q", input)
		}
		for n := start; n <= end; n++ {
			raw = append(raw, n-1)
		}
	default:
		n, err := strconv.Atoi(selection)
		if err != nil {
			return nil, false, fmt.Errorf("invalid selection %q", input)
		}
		raw = append(raw, n-1)
	}

	seen := make(map[int]struct{}, len(raw))
	for _, idx := range raw {
		if idx < 0 || idx >= max {
			return nil, false, fmt.Errorf("index %d is out of range", idx+1)
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}
	return indices, false, nil
}

// ApplySelection resolves parsed indices against the rows, dropping
// repositories whose destination name is already taken. With all set the
// whole inventory is taken and existing repositories are skipped silently,
// otherwise each skip is called out.
func ApplySelection(w io.Writer, rows []Row, indices []int, all bool) []repo.Repository {
	if all {
		selected := make([]repo.Repository, 0, len(rows))
		for _, row := range rows {
			if row.Exists {
				continue
			}
			selected = append(selected, row.Repo)
		}
		if skipped := len(rows) - len(selected); skipped > 0 {
			fmt.Fprintf(w, "Skipping %d repositories that already exist on GitHub\n", skipped)
		}
		return selected
	}

	var selected []repo.Repository
	for _, idx := range indices {
		row := rows[idx]
		if row.Exists {
			fmt.Fprintf(w, "Skipping %s: a repository with this name already exists on GitHub\n", row.Repo.Name)
			continue
		}
		selected = append(selected, row.Repo)
	}
	return selected
}

// PrintRepositories renders the numbered inventory with its annotations.
func PrintRepositories(w io.Writer, rows []Row) {
	fmt.Fprintln(w, "\nGitLab repositories:")
	fmt.Fprintln(w, strings.Repeat("=", 72))

	for i, row := range rows {
		r := row.Repo
		name := r.Name
		if slug := r.SafeName(); slug != r.Name {
			name = fmt.Sprintf("%s (%s)", r.Name, slug)
		}
		visibility := "public"
		if r.Private() {
			visibility = "private"
		}

		markers := make([]string, 0, 2)
		if r.HasCI {
			markers = append(markers, "ci")
		}
		if row.Exists {
			markers = append(markers, "exists on github")
		} else {
			markers = append(markers, "new")
		}

		fmt.Fprintf(w, "%2d. %-32s %-8s [%s]\n", i+1, name, visibility, strings.Join(markers, ", "))
		description := r.Description
		if description == "" {
			description = "no description"
		}
		fmt.Fprintf(w, "    %s\n", utils.TruncateText(description, 64))
		if r.LastActivityAt != nil {
			fmt.Fprintf(w, "    last activity: %s\n", r.LastActivityAt.Format("2006-01-02"))
		}
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "\nChoose repositories to migrate:")
	fmt.Fprintln(w, "  a number for a single repository (e.g. 1)")
	fmt.Fprintln(w, "  a range (e.g. 1-3)")
	fmt.Fprintln(w, "  a comma separated list (e.g. 1,3,5)")
	fmt.Fprintln(w, "  'all' for every repository not yet on GitHub")
	fmt.Fprintln(w, "  'q' to quit")
}
