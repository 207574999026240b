package typescript

import "strings"

const indentUnit = "    "

// Format normalizes rendered TypeScript: LF line endings, leading tabs
// expanded to four spaces, no trailing whitespace, no blank line directly
// inside braces, at most one consecutive blank line and exactly one
// trailing newline.
func Format(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")

	var out []string
	blank := false
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimRight(expandTabs(line), " \t")
		if line == "" {
			if len(out) == 0 || blank || strings.HasSuffix(out[len(out)-1], "{") {
				continue
			}
			blank = true
			out = append(out, line)
			continue
		}
		if blank && strings.HasPrefix(strings.TrimSpace(line), "}") {
			out = out[:len(out)-1]
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n"
}

func expandTabs(line string) string {
	n := 0
	for n < len(line) && line[n] == '\t' {
		n++
	}
	if n == 0 {
		return line
	}
	return strings.Repeat(indentUnit, n) + line[n:]
}
