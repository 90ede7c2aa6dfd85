package process

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"NewsClipper/internal/domain"
)

// roles is the closed set of role suffixes recognized after a name token.
var roles = []string{"교수", "센터장", "병원장", "이사장", "원장", "연구원"}

// entityExpr matches a 2-4 character Hangul name token followed by an
// optional space and a role word, e.g. "홍길동 교수".
var entityExpr = regexp.MustCompile(`([가-힣]{2,4})\s*(` + strings.Join(roles, "|") + `)`)

// stopwords are common non-name words that the name pattern also matches.
var stopwords = map[string]struct{}{
	"우리": {}, "이번": {}, "지난": {}, "다음": {}, "어떤": {}, "해당": {},
}

// TagEntities appends recognized "name role" mentions to each record's
// title as a parenthetical. Mentions are collected from description and
// full text, deduplicated, and sorted for deterministic output. Titles
// that already carry a tag parenthetical are left alone, so the stage is
// safe to re-run.
func TagEntities(records []domain.Record) []domain.Record {
	tagged := make([]domain.Record, len(records))
	copy(tagged, records)

	for i := range tagged {
		if alreadyTagged(tagged[i].Title) {
			continue
		}

		content := tagged[i].Description + " " + tagged[i].FullText
		content = strings.ReplaceAll(content, "\n", " ")

		found := map[string]struct{}{}
		for _, m := range entityExpr.FindAllStringSubmatch(content, -1) {
			name, role := m[1], m[2]
			if _, skip := stopwords[name]; skip {
				continue
			}
			found[name+" "+role] = struct{}{}
		}
		if len(found) == 0 {
			continue
		}

		entities := make([]string, 0, len(found))
		for e := range found {
			entities = append(entities, e)
		}
		sort.Strings(entities)

		tagged[i].Title = fmt.Sprintf("%s (%s)", tagged[i].Title, strings.Join(entities, ", "))
	}

	return tagged
}

// alreadyTagged reports whether the title ends in a parenthetical that
// contains a role word, i.e. was produced by a previous tagging run.
func alreadyTagged(title string) bool {
	if !strings.HasSuffix(title, ")") {
		return false
	}
	open := strings.LastIndex(title, " (")
	if open < 0 {
		return false
	}
	suffix := title[open:]
	for _, role := range roles {
		if strings.Contains(suffix, role) {
			return true
		}
	}
	return false
}
