// Package press holds the static editorial knowledge base: which publishers
// belong to which priority tier, and which hostnames map to which publisher.
package press

import (
	"strings"

	"NewsClipper/internal/domain"
)

// tierTable lists publisher names per tier in priority order. Matching is
// substring containment, so "KBS뉴스" still lands in tier 1.
var tierTable = [][]string{
	{"KBS", "SBS", "MBC"},
	{"조선일보", "중앙일보", "동아일보", "한겨레", "경향신문", "한국일보", "매일경제", "한국경제", "서울경제"},
	{"연합뉴스", "뉴스1", "뉴시스"},
	{"머니투데이", "아시아경제", "헬스조선", "연합뉴스TV", "한국경제TV"},
	{"데일리메디", "메디칼타임즈", "코메디닷컴", "의학신문"},
}

// domainTable maps a normalized hostname (lowercase, no "www.") to the
// canonical publisher name. Subdomains are distinct entries on purpose:
// biz.chosun.com is 조선비즈, not 조선일보.
var domainTable = map[string]string{
	"news1.kr":           "뉴스1",
	"newsis.com":         "뉴시스",
	"chosun.com":         "조선일보",
	"joongang.co.kr":     "중앙일보",
	"donga.com":          "동아일보",
	"hani.co.kr":         "한겨레",
	"khan.co.kr":         "경향신문",
	"hankookilbo.com":    "한국일보",
	"mk.co.kr":           "매일경제",
	"hankyung.com":       "한국경제",
	"sedaily.com":        "서울경제",
	"mt.co.kr":           "머니투데이",
	"asiae.co.kr":        "아시아경제",
	"health.chosun.com":  "헬스조선",
	"yonhapnewstv.co.kr": "연합뉴스TV",
	"wowtv.co.kr":        "한국경제TV",
	"dailymedi.com":      "데일리메디",
	"medicaltimes.com":   "메디칼타임즈",
	"kormedi.com":        "코메디닷컴",
	"bosa.co.kr":         "의학신문",
	"yna.co.kr":          "연합뉴스",
	"kbs.co.kr":          "KBS",
	"imbc.com":           "MBC",
	"sbs.co.kr":          "SBS",
	"womaneconomy.co.kr": "여성경제신문",
	"etnews.com":         "전자신문",
	"zdnet.co.kr":        "지디넷코리아",
	"biz.chosun.com":     "조선비즈",
}

// Tier classifies a publisher display name. The first tier whose list
// contains the name as a substring wins; unmatched publishers fall into
// the unranked tier.
func Tier(source string) int {
	for i, names := range tierTable {
		for _, name := range names {
			if strings.Contains(source, name) {
				return i + 1
			}
		}
	}
	return domain.TierOther
}

// ByDomain resolves a hostname to a publisher name. The host is lowercased
// and stripped of a leading "www." before lookup.
func ByDomain(host string) (string, bool) {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	name, ok := domainTable[host]
	return name, ok
}
