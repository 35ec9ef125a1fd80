package skills_test

import (
	"strings"
	"testing"

	"github.com/skillctx/skx/internal/skills"
)

func TestParseFrontMatter(t *testing.T) {
	document := strings.Join([]string{
		"---",
		"name: fetch-url",
		"description: Fetch a URL and summarize it",
		"---",
		"# Fetch URL",
		"",
	}, "\n")

	frontMatter, body, parseError := skills.ParseFrontMatter(document)
	if parseError != nil {
		t.Fatalf("ParseFrontMatter error: %v", parseError)
	}
	if frontMatter.Name != "fetch-url" {
		t.Fatalf("expected name fetch-url, got %q", frontMatter.Name)
	}
	if frontMatter.Description != "Fetch a URL and summarize it" {
		t.Fatalf("unexpected description %q", frontMatter.Description)
	}
	if !strings.HasPrefix(body, "# Fetch URL") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	document := "# Just markdown\n"
	frontMatter, body, parseError := skills.ParseFrontMatter(document)
	if parseError != nil {
		t.Fatalf("ParseFrontMatter error: %v", parseError)
	}
	if frontMatter != (skills.FrontMatter{}) {
		t.Fatalf("expected zero front matter, got %+v", frontMatter)
	}
	if body != document {
		t.Fatalf("expected body to be full document")
	}
}

func TestParseFrontMatterUnclosedBlock(t *testing.T) {
	document := "---\nname: broken\n"
	frontMatter, body, parseError := skills.ParseFrontMatter(document)
	if parseError != nil {
		t.Fatalf("ParseFrontMatter error: %v", parseError)
	}
	if frontMatter != (skills.FrontMatter{}) {
		t.Fatalf("expected zero front matter for unclosed block, got %+v", frontMatter)
	}
	if body != document {
		t.Fatalf("expected body to be full document")
	}
}

func TestParseFrontMatterInvalidYAML(t *testing.T) {
	document := "---\nname: [unclosed\n---\nbody\n"
	_, _, parseError := skills.ParseFrontMatter(document)
	if parseError == nil {
		t.Fatalf("expected error for invalid YAML")
	}
}
