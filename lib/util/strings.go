package util

import (
	"regexp"
	"strings"
)

// joins the listed strings together with the given separator,
// but only if the string is not empty
// e.g. CondJoin(",", "foo", "", "bar") results in "foo,bar"
// whereas strings.Join([]string{"foo", "", "bar"},",") would result in "foo,,bar"
func CondJoin(sep string, strs ...string) string {
	out := ""
	for _, s := range strs {
		if s != "" {
			if out != "" {
				out += sep
			}
			out += s
		}
	}
	return out
}

func MaybeStr(cond bool, str string) string {
	if cond {
		return str
	}
	return ""
}

// returns true if the two slices contain the same case-insensitive strings in the same order
func IStrsEq(a, b []string) bool {
	return EqualsFunc(a, b, strings.EqualFold)
}

// returns true if word appears in text as a whole word, case insensitively
func IContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	return regexp.MustCompile(`(?i)(^|[^\w])` + regexp.QuoteMeta(word) + `($|[^\w])`).MatchString(text)
}

// returns true if the string is empty or consists only of whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
