package prompt

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gl2gh/gl2gh/pkg/repo"
)

func testRows() []Row {
	return []Row{
		{Repo: repo.Repository{Name: "Alpha", Path: "alpha", Visibility: "private"}},
		{Repo: repo.Repository{Name: "Bravo", Path: "bravo", Visibility: "public"}, Exists: true},
		{Repo: repo.Repository{Name: "Charlie", Path: "charlie", Visibility: "internal"}},
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		max     int
		want    []int
		wantAll bool
		wantErr bool
	}{
		{name: "single", input: "2", max: 5, want: []int{1}},
		{name: "single with whitespace", input: " 3 ", max: 5, want: []int{2}},
		{name: "range", input: "1-3", max: 5, want: []int{0, 1, 2}},
		{name: "list", input: "1,3,5", max: 5, want: []int{0, 2, 4}},
		{name: "list with spaces", input: "1, 3", max: 5, want: []int{0, 2}},
		{name: "list dedupes keeping order", input: "3,1,3", max: 5, want: []int{2, 0}},
		{name: "all", input: "all", max: 5, wantAll: true},
		{name: "all uppercase", input: "ALL", max: 5, wantAll: true},
		{name: "zero", input: "0", max: 5, wantErr: true},
		{name: "negative", input: "-2", max: 5, wantErr: true},
		{name: "out of range", input: "6", max: 5, wantErr: true},
		{name: "range exceeding max", input: "4-9", max: 5, wantErr: true},
		{name: "reversed range", input: "3-1", max: 5, wantErr: true},
		{name: "garbage", input: "abc", max: 5, wantErr: true},
		{name: "range inside a list", input: "1-3,5", max: 5, wantErr: true},
		{name: "empty", input: "", max: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, all, err := ParseSelection(tt.input, tt.max)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSelection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if all != tt.wantAll {
				t.Errorf("ParseSelection(%q) all = %v, want %v", tt.input, all, tt.wantAll)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSelection(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSelectionQuit(t *testing.T) {
	for _, input := range []string{"q", "Q", "quit"} {
		if _, _, err := ParseSelection(input, 3); !errors.Is(err, ErrQuit) {
			t.Errorf("ParseSelection(%q) = %v, want ErrQuit", input, err)
		}
	}
}

func TestApplySelectionWarnsPerSkip(t *testing.T) {
	var out bytes.Buffer

	selected := ApplySelection(&out, testRows(), []int{0, 1, 2}, false)

	if len(selected) != 2 || selected[0].Name != "Alpha" || selected[1].Name != "Charlie" {
		t.Errorf("unexpected selection %+v", selected)
	}
	if !strings.Contains(out.String(), "Bravo") {
		t.Errorf("skip warning should name the repository, got %q", out.String())
	}
}

func TestApplySelectionAllFiltersSilently(t *testing.T) {
	var out bytes.Buffer

	selected := ApplySelection(&out, testRows(), nil, true)

	if len(selected) != 2 {
		t.Fatalf("got %d repositories, want 2", len(selected))
	}
	if strings.Contains(out.String(), "Bravo") {
		t.Errorf("all-mode skips are silent per repository, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Skipping 1") {
		t.Errorf("all-mode should report the skip count, got %q", out.String())
	}
}

func TestSelectRepositoriesRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("bogus\n1,3\n"), &out)

	selected, err := p.SelectRepositories(testRows())
	if err != nil {
		t.Fatalf("SelectRepositories() error = %v", err)
	}
	if len(selected) != 2 || selected[0].Name != "Alpha" || selected[1].Name != "Charlie" {
		t.Errorf("unexpected selection %+v", selected)
	}
	if !strings.Contains(out.String(), "try again") {
		t.Errorf("invalid input should re-prompt, got %q", out.String())
	}
}

func TestSelectRepositoriesQuit(t *testing.T) {
	p := New(strings.NewReader("q\n"), io.Discard)

	if _, err := p.SelectRepositories(testRows()); !errors.Is(err, ErrQuit) {
		t.Fatalf("SelectRepositories() = %v, want ErrQuit", err)
	}
}

func TestSelectRepositoriesQuitOnEOF(t *testing.T) {
	p := New(strings.NewReader(""), io.Discard)

	if _, err := p.SelectRepositories(testRows()); !errors.Is(err, ErrQuit) {
		t.Fatalf("SelectRepositories() = %v, want ErrQuit on closed input", err)
	}
}

func TestSelectRepositoriesRepromptsWhenEverythingSkipped(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("2\nq\n"), &out)

	_, err := p.SelectRepositories(testRows())
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("SelectRepositories() = %v, want ErrQuit after the retry", err)
	}
	if !strings.Contains(out.String(), "No valid repositories selected") {
		t.Errorf("empty index selection should re-prompt, got %q", out.String())
	}
}

func TestSelectRepositoriesAllMayBeEmpty(t *testing.T) {
	rows := []Row{
		{Repo: repo.Repository{Name: "Alpha", Path: "alpha"}, Exists: true},
	}
	p := New(strings.NewReader("all\n"), io.Discard)

	selected, err := p.SelectRepositories(rows)
	if err != nil {
		t.Fatalf("SelectRepositories() error = %v", err)
	}
	if len(selected) != 0 {
		t.Errorf("all-mode returns the filtered set as-is, got %+v", selected)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"nope\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		p := New(strings.NewReader(tt.input), io.Discard)
		if got := p.Confirm("Proceed"); got != tt.want {
			t.Errorf("Confirm() with input %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPrompterSharesInput(t *testing.T) {
	// Selection and confirmation read consecutive lines from one reader.
	var out bytes.Buffer
	p := New(strings.NewReader("1\ny\n"), &out)

	selected, err := p.SelectRepositories(testRows())
	if err != nil || len(selected) != 1 {
		t.Fatalf("SelectRepositories() = %+v, %v", selected, err)
	}
	if !p.Confirm("Proceed") {
		t.Error("Confirm() should read the line after the selection")
	}
}

func TestPrintRepositories(t *testing.T) {
	var out bytes.Buffer
	activity := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := []Row{
		{
			Repo: repo.Repository{
				Name:           "Widget",
				Path:           "widget",
				Visibility:     "public",
				Description:    strings.Repeat("x", 100),
				LastActivityAt: &activity,
				HasCI:          true,
			},
			Exists: true,
		},
		{Repo: repo.Repository{Name: "Gadget", Path: "gadget", Visibility: "internal"}},
	}

	PrintRepositories(&out, rows)
	listing := out.String()

	for _, want := range []string{"1.", "Widget (widget)", "public", "ci", "exists on github", "2024-05-01", "2.", "Gadget (gadget)", "private", "new", "no description"} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing should contain %q:\n%s", want, listing)
		}
	}
	if strings.Contains(listing, strings.Repeat("x", 80)) {
		t.Errorf("long descriptions should be truncated:\n%s", listing)
	}
}
