package zellij

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Tab represents a zellij tab as observed in a layout dump. Tabs are
// recomputed on every query, never cached: they can be created, closed, or
// renamed between calls, and no identity persists across queries except
// best-effort index/name matching.
type Tab struct {
	// Index is 1-based, stable for the lifetime of one layout dump.
	Index int
	// Name is the display text, falling back to "Tab {index}" if unnamed.
	Name string
	// Active is whether the tab was focused at observation time.
	Active bool
}

var (
	tabLineRe  = regexp.MustCompile(`^tab(\s|\{|$)`)
	nameAttrRe = regexp.MustCompile(`name="((?:[^"\\]|\\.)*)"`)
	focusRe    = regexp.MustCompile(`\bfocus=true\b`)
)

// parseTabs extracts tab declarations from a zellij layout dump. Tabs are
// assigned 1-based indices in the order encountered.
func parseTabs(layout string) []Tab {
	var tabs []Tab
	for _, line := range strings.Split(layout, "\n") {
		trimmed := strings.TrimSpace(line)
		if !tabLineRe.MatchString(trimmed) {
			continue
		}
		index := len(tabs) + 1
		name := fmt.Sprintf("Tab %d", index)
		if m := nameAttrRe.FindStringSubmatch(trimmed); m != nil {
			name = unescapeKdl(m[1])
		}
		tabs = append(tabs, Tab{
			Index:  index,
			Name:   name,
			Active: focusRe.MatchString(trimmed),
		})
	}
	return tabs
}

// unescapeKdl reverses the quoting zellij applies to tab names in a dump.
func unescapeKdl(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// ResolveTab resolves a tab identifier to a 1-based index. A name is
// matched exactly against the tab list first; failing that, the identifier
// is parsed as a number and passed through without bounds checking —
// out-of-range indices are deferred to zellij's own tab-switch error.
// Unresolvable identifiers return ErrTabNotFound naming the identifier.
func ResolveTab(identifier string, tabs []Tab) (int, error) {
	for _, tab := range tabs {
		if tab.Name == identifier {
			return tab.Index, nil
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(identifier)); err == nil {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrTabNotFound, identifier)
}
