package utils

import (
	"strings"
)

// Slug normalizes a realm name to the form used in upstream query strings.
func Slug(realm string) string {
	s := strings.ToLower(strings.TrimSpace(realm))
	s = strings.ReplaceAll(s, "'", "")
	return strings.Join(strings.Fields(s), "-")
}

// ParseCharacterRef splits "name-realm" on the last delimiter. Without a
// delimiter, or with an empty realm part, the realm is defaultRealm. The
// returned realm is always in slug form.
func ParseCharacterRef(raw, defaultRealm string) (name, realm string) {
	raw = strings.TrimSpace(raw)

	i := strings.LastIndex(raw, "-")
	if i < 0 {
		return raw, Slug(defaultRealm)
	}

	name, realm = strings.TrimSpace(raw[:i]), raw[i+1:]
	if strings.TrimSpace(realm) == "" {
		return name, Slug(defaultRealm)
	}

	return name, Slug(realm)
}

// ParseCommand splits a message into a command name and its arguments. ok is
// false when the message does not start with the prefix.
func ParseCommand(content, prefix string) (name string, args []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}

	return fields[0], fields[1:], true
}
