package matcher

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

type compiledRegex struct {
	re *regexp.Regexp
}

// resolveRegex turns a $regex operand and its $options modifier into a
// compiled expression. Patterns compile once and are served from the shared
// cache afterwards. A pattern that does not compile resolves to nil, which
// makes the clause false.
func (m *Matcher) resolveRegex(ov any, options string) *regexp.Regexp {
	flags := regexFlags(options)

	switch t := ov.(type) {
	case *regexp.Regexp:
		if flags == "" {
			return t
		}
		return m.regexFor(t.String(), flags)
	case string:
		return m.regexFor(t, flags)
	default:
		return nil
	}
}

func (m *Matcher) regexFor(pattern, flags string) *regexp.Regexp {
	key := flags + "\x00" + pattern
	if cached, ok := m.regexes.Get(key); ok {
		return cached.re
	}

	expr := pattern
	if flags != "" {
		expr = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		m.log.Debug("cannot compile $regex pattern",
			zap.String("pattern", pattern),
			zap.Error(err),
		)
		m.regexes.Add(key, &compiledRegex{})
		return nil
	}
	m.regexes.Add(key, &compiledRegex{re: re})
	return re
}

// regexFlags keeps the honored option letters i, m and s, in canonical
// order. Other letters are silently ignored.
func regexFlags(options string) string {
	var b strings.Builder
	for _, flag := range "ims" {
		if strings.ContainsRune(options, flag) {
			b.WriteRune(flag)
		}
	}
	return b.String()
}
