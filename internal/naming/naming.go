// Package naming turns /-delimited variable names into the folder and token
// names used in exported documents.
package naming

import (
	"regexp"
	"strings"
)

var (
	separatorRun = regexp.MustCompile(`[\s/]+`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
)

// Kebab lowercases s and replaces each run of whitespace or slashes with a hyphen
func Kebab(s string) string {
	return strings.ToLower(separatorRun.ReplaceAllString(s, "-"))
}

// SanitizeFolder strips whitespace and slashes from a group name, preserving case
func SanitizeFolder(s string) string {
	return separatorRun.ReplaceAllString(s, "")
}

// ParseVariablePath splits a variable name such as "Colors/Gray/50" into its
// sanitized folder names and its leaf token name. A purely numeric leaf is
// prefixed with its kebab-cased parent ("Gray/50" -> "gray-50").
func ParseVariablePath(fullName string) (folders []string, leaf string) {
	segments := strings.Split(fullName, "/")
	last := segments[len(segments)-1]
	parents := segments[:len(segments)-1]

	folders = make([]string, 0, len(parents))
	for _, segment := range parents {
		folders = append(folders, SanitizeFolder(segment))
	}

	leaf = Kebab(last)
	if digitsOnly.MatchString(last) && len(parents) > 0 {
		leaf = Kebab(parents[len(parents)-1]) + "-" + last
	}
	return folders, leaf
}

// DottedPath joins folders and leaf with dots ("Colors.Gray.gray-50")
func DottedPath(folders []string, leaf string) string {
	if len(folders) == 0 {
		return leaf
	}
	return strings.Join(folders, ".") + "." + leaf
}
