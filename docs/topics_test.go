package docs

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced code blocks with these info strings are run by TestCodeBlocks.
//
// A "bash setup" block starts a scenario in a new directory, "bash run"
// blocks record their output for the next "console check" block, and
// "bash check" blocks must exit with 0.
const (
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	bashCheck    = "bash check"
	consoleCheck = "console check"
)

func TestIndex(t *testing.T) {
	index, err := Index()
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if len(index) == 0 {
		t.Fatal("Index() is empty")
	}

	var indexed []string
	for _, topic := range index {
		if topic.Summary == "" {
			t.Errorf("topic %q has no summary in readme.md", topic.Name)
		}
		if _, err := GetTopic(topic.Name); err != nil {
			t.Errorf("GetTopic(%q) error = %v", topic.Name, err)
		}
		indexed = append(indexed, topic.Name)
	}

	// Every markdown file must be reachable from the index.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		name := strings.TrimSuffix(file, ".md")
		if name != readme && !slices.Contains(indexed, name) {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestGetTopics(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope) succeeded, want an error")
	}
	if _, err := GetTopics("proforma", "nope"); err == nil {
		t.Error("GetTopics(proforma, nope) succeeded, want an error")
	}

	names, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) error = %v", err)
	}
	last := -1
	for _, name := range names {
		content, err := GetTopic(name)
		if err != nil {
			t.Fatalf("GetTopic(%q) error = %v", name, err)
		}
		i := strings.Index(all, content)
		if i < 0 {
			t.Errorf("GetTopics(*) does not contain topic %q", name)
			continue
		}
		if i < last {
			t.Errorf("GetTopics(*) has topic %q out of the readme order", name)
		}
		last = i
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	pf := buildPf(t)
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			blocks := parseBlocks(t, file)
			s := scenario{
				env: append(os.Environ(), "PATH="+filepath.Dir(pf)+string(os.PathListSeparator)+os.Getenv("PATH")),
				dir: t.TempDir(),
			}
			for _, b := range blocks {
				s.run(t, b)
			}
		})
	}
}

// block is a runnable fenced code block.
type block struct {
	kind    string
	content string
	pos     string // file:line, for error messages
}

// buildPf compiles the pf command and returns the path to the binary.
func buildPf(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "pf")
	out, err := exec.Command("go", "build", "-o", bin, "../pf/").CombinedOutput()
	if err != nil {
		t.Fatalf("cannot build pf: %v\n%s", err, out)
	}
	return bin
}

// parseBlocks returns the runnable blocks of a markdown file, in order.
func parseBlocks(t *testing.T, file string) []block {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("cannot read %s: %v", file, err)
	}

	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(source))
		switch kind {
		case bashSetup, bashRun, bashCheck, consoleCheck:
		default:
			return ast.WalkContinue, nil
		}
		var content strings.Builder
		for i := range fcb.Lines().Len() {
			line := fcb.Lines().At(i)
			content.Write(line.Value(source))
		}
		// goldmark has no positions, count the lines up to the info string.
		line := bytes.Count(source[:fcb.Info.Segment.Start], []byte("\n")) + 1
		blocks = append(blocks, block{kind: kind, content: content.String(), pos: file + ":" + strconv.Itoa(line)})
		return ast.WalkContinue, nil
	})
	return blocks
}

// scenario is the state shared by the blocks of a markdown file.
type scenario struct {
	env    []string
	dir    string
	output string // of the last bash run block
}

func (s *scenario) run(t *testing.T, b block) {
	t.Helper()
	if b.kind == consoleCheck {
		want := strings.TrimSpace(b.content)
		got := strings.ReplaceAll(strings.TrimSpace(s.output), "\t", "        ")
		if got != want {
			t.Errorf("%s: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q", b.pos, got, want, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		s.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = s.dir
	cmd.Env = s.env
	out, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.output = string(out)
	}
	switch {
	case err == nil:
	case b.kind == bashCheck:
		t.Errorf("%s: %s failed: %v with output:\n%s", b.pos, b.kind, err, out)
	default:
		t.Fatalf("%s: %s failed: %v with output:\n%s", b.pos, b.kind, err, out)
	}
}
