package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/etnz/stockchart"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	tomlConfig = "toml config"
	yamlConfig = "yaml config"
	csvEvents  = "csv events"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every topic is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("GetTopic(%q) failed: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	listed := strings.Join(topicsInReadme, ",")
	for _, topic := range all {
		if !strings.Contains(","+listed+",", ","+topic+",") {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

// Block is a fenced code block of a topic.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

func TestExamples(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		for _, b := range parseMarkdown(t, file) {
			t.Run(b.Type, func(t *testing.T) {
				switch b.Type {
				case tomlConfig, yamlConfig:
					ext := ".toml"
					if b.Type == yamlConfig {
						ext = ".yaml"
					}
					path := filepath.Join(t.TempDir(), "stockchart"+ext)
					if err := os.WriteFile(path, []byte(b.Content), 0644); err != nil {
						t.Fatal(err)
					}
					if _, err := stockchart.LoadConfig(path); err != nil {
						t.Errorf("%s:%d: invalid configuration example: %v", b.File, b.Line, err)
					}
				case csvEvents:
					events, err := stockchart.DecodeEvents(strings.NewReader(b.Content))
					if err != nil {
						t.Fatalf("%s:%d: invalid event example: %v", b.File, b.Line, err)
					}
					labels := stockchart.Reduce(events).Labels()
					if got, want := labels[stockchart.NewDate(2008, 9, 8)], "United States:banking; United States:banking"; got != want {
						t.Errorf("%s:%d: 2008-09-08 label = %q, want %q", b.File, b.Line, got, want)
					}
					if len(events) != 3 {
						t.Errorf("%s:%d: got %d events, want 3", b.File, b.Line, len(events))
					}
				}
			})
		}
	}
}

// parseMarkdown parses a markdown file and returns its example blocks.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		lang := string(fcb.Info.Segment.Value(content))
		switch lang {
		case tomlConfig, yamlConfig, csvEvents:
			var blockContent strings.Builder
			for i := 0; i < fcb.Lines().Len(); i++ {
				line := fcb.Lines().At(i)
				blockContent.Write(line.Value(content))
			}
			blocks = append(blocks, &Block{
				Type:    lang,
				Content: blockContent.String(),
				File:    file,
				Line:    lineNumber(content, fcb.Info.Segment.Start),
			})
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// lineNumber computes the line number of an AST offset.
func lineNumber(source []byte, offset int) int {
	return strings.Count(string(source[:offset]), "\n") + 1
}
