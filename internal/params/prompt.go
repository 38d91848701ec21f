package params

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// frontendTemplates are the Vite templates offered by the interactive menu.
var frontendTemplates = []string{"vue", "react", "svelte", "lit", "vanilla"}

// Prompt walks the user through the remaining parameters using numbered
// menus and defaulted free-text questions on r/w. The ArtifactID in seed
// is kept as-is; every other field of seed is offered as the default.
func Prompt(r io.Reader, w io.Writer, seed Params) (*Params, error) {
	reader := bufio.NewReader(r)
	p := seed

	var err error
	if p.GroupID, err = askString(reader, w, "Group id", seed.GroupID); err != nil {
		return nil, err
	}
	if p.BootVersion, err = askString(reader, w, "Spring Boot version", seed.BootVersion); err != nil {
		return nil, err
	}
	if p.JavaVersion, err = askString(reader, w, "Java version", seed.JavaVersion); err != nil {
		return nil, err
	}

	packagings := []string{PackagingJar, PackagingWar}
	idx, err := selectFromList(reader, w, "Select packaging:", packagings, indexOf(packagings, seed.Packaging))
	if err != nil {
		return nil, err
	}
	p.Packaging = packagings[idx]

	idx, err = selectFromList(reader, w, "Select frontend template:", frontendTemplates, indexOf(frontendTemplates, seed.FrontendTemplate))
	if err != nil {
		return nil, err
	}
	p.FrontendTemplate = frontendTemplates[idx]

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// askString asks a free-text question, returning def on empty input.
func askString(reader *bufio.Reader, w io.Writer, prompt, def string) (string, error) {
	fmt.Fprintf(w, "%s [%s]: ", prompt, def)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// selectFromList presents a numbered list and returns the selected index.
// Empty input selects defIdx.
func selectFromList(reader *bufio.Reader, w io.Writer, prompt string, items []string, defIdx int) (int, error) {
	if defIdx < 0 {
		defIdx = 0
	}
	fmt.Fprintf(w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [%d]: ", defIdx+1)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defIdx, nil
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", line, len(items))
	}
	return num - 1, nil
}

func indexOf(items []string, v string) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return -1
}
