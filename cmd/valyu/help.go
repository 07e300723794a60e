package main

import (
	"fmt"
	"io"
	"strings"
)

type usageSection struct {
	title string
	lines []string
}

var usageSections = []usageSection{
	{"SETUP COMMAND:", []string{
		"  valyu setup <api-key>",
		"    Save your API key to ~/.valyu/config.json",
		"    Get your key at: https://platform.valyu.ai",
	}},
	{"SEARCH COMMANDS:", []string{
		"  valyu search <type> <query> [maxResults]",
		"    Types: web, finance, paper, bio, patent, sec, economics, news",
		`    Example: valyu search web "AI news" 10`,
	}},
	{"ANSWER COMMAND:", []string{
		"  valyu answer <query> [options]",
		"    Options: --fast, --structured <json-schema>, --render",
		`    Example: valyu answer "What is quantum computing?" --fast`,
	}},
	{"CONTENTS COMMAND:", []string{
		"  valyu contents <url> [options]",
		"    Options: --summary [instructions], --structured <json-schema>",
		`    Example: valyu contents "https://example.com" --summary`,
		`    Example: valyu contents "https://example.com" --summary "Key findings in 2 paragraphs"`,
	}},
	{"DEEPRESEARCH COMMANDS:", []string{
		"  valyu deepresearch create <query> [options]",
		"    Options: --model <fast|lite|heavy>, --pdf",
		`    Example: valyu deepresearch create "AI market trends" --model heavy --pdf`,
		"",
		"  valyu deepresearch status <task-id> [--render]",
		"    Example: valyu deepresearch status f992a8ab-4c91-4322-905f-190107bd5a5b",
	}},
	{"OTHER COMMANDS:", []string{
		"  valyu mcp       Serve the commands as MCP tools over stdio",
		"  valyu version   Print version information",
	}},
	{"GLOBAL OPTIONS:", []string{
		"  --debug   Log API traffic to stderr (or VALYU_DEBUG_LOG)",
	}},
}

// printUsage writes the command reference to w.
func printUsage(w io.Writer) {
	style := styler(w)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(style(headerStyle, "Valyu CLI - Complete API Tool"))
	b.WriteString("\n\n")
	for _, section := range usageSections {
		b.WriteString(style(headerStyle, section.title))
		b.WriteString("\n")
		for _, line := range section.lines {
			switch {
			case strings.HasPrefix(line, "  valyu ") || strings.HasPrefix(line, "  --"):
				line = style(cmdStyle, line)
			case strings.HasPrefix(strings.TrimSpace(line), "Example:"):
				line = style(mutedStyle, line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(style(mutedStyle, "API Key: Set VALYU_API_KEY env var OR run 'valyu setup <key>'"))
	b.WriteString("\n")

	fmt.Fprint(w, b.String())
}
