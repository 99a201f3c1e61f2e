// Package command rewrites nikto invocations so the scan always leaves an XML report
// at a path chosen by the caller.
package command

import (
	"path"
	"regexp"
	"strings"
)

const (
	outputFlag = "-output"
	formatArgs = "-Format XML"
)

var (
	// flag value: a shell word made of quoted runs, escapes and plain characters that
	// does not start with a dash
	valuePattern = `(?:'[^']*'|"[^"]*"|\\.|[^\s'"\\-])(?:'[^']*'|"[^"]*"|\\.|[^\s'"\\])*`

	outputRe = regexp.MustCompile(`(^|\s)(?:-output|-o)(?:\s+|=)` + valuePattern)
	formatRe = regexp.MustCompile(`(^|\s)(?:-Format|-F)(?:\s+|=)` + valuePattern)
	bareRe   = regexp.MustCompile(`(^|\s)(?:-output|-o|-Format|-F)=?(\s|$)`)
	tokenRe  = regexp.MustCompile(`\S+`)

	commandRe = regexp.MustCompile(`^(sudo nikto|nikto|sudo nikto\.pl|nikto\.pl|perl nikto\.pl|\./nikto\.pl|\./nikto)`)
)

// Rewrite returns commandLine changed so that nikto writes an XML report to
// outputPath. An existing output flag is replaced and any format flags are dropped;
// otherwise "-output <path> -Format XML" is inserted right after the nikto token.
// The command is not required to be a nikto invocation. Flags are found by pattern,
// not by shell parsing, so "-o" or "-Format" inside a quoted argument is treated as
// a flag too.
func Rewrite(commandLine, outputPath string) string {
	replacement := outputFlag + " " + quote(outputPath) + " " + formatArgs

	if loc := outputRe.FindStringSubmatchIndex(commandLine); loc != nil {
		// loc[3] ends the separator in front of the flag, which is kept.
		before := commandLine[:loc[3]]
		after := outputRe.ReplaceAllString(commandLine[loc[1]:], "")
		return strip(before) + replacement + strip(after)
	}

	line := strip(commandLine)
	at := insertionPoint(line)
	if at < 0 {
		return strings.TrimRight(line, " \t") + " " + replacement
	}
	return line[:at] + " " + replacement + line[at:]
}

// IsNikto reports whether commandLine starts with one of the known nikto invocations.
func IsNikto(commandLine string) bool {
	return commandRe.MatchString(strings.TrimSpace(commandLine))
}

// insertionPoint returns the offset just past the nikto token, or -1. A token whose
// base name is nikto or nikto.pl wins; failing that, the first token mentioning nikto
// is used, so wrapper scripts get rewritten too.
func insertionPoint(line string) int {
	tokens := tokenRe.FindAllStringIndex(line, -1)
	for _, loc := range tokens {
		tok := strings.Trim(line[loc[0]:loc[1]], `'"`)
		switch path.Base(tok) {
		case "nikto", "nikto.pl":
			return loc[1]
		}
	}
	for _, loc := range tokens {
		if strings.Contains(line[loc[0]:loc[1]], "nikto") {
			return loc[1]
		}
	}
	return -1
}

// strip removes format flags and any output or format flag left without a value.
func strip(s string) string {
	s = formatRe.ReplaceAllString(s, "")
	for bareRe.MatchString(s) {
		s = bareRe.ReplaceAllString(s, "${2}")
	}
	return s
}

// quote wraps p in single quotes when the shell would split or interpret it.
func quote(p string) string {
	if p != "" && !strings.ContainsAny(p, " \t\n'\"$`\\;&|<>()*?") {
		return p
	}
	return "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
}
