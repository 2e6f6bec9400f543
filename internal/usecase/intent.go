package usecase

import (
	"regexp"
	"strings"
)

const (
	DateToday   = "today"
	DateTonight = "tonight"
	DateWeekend = "weekend"
)

type genreKeyword struct {
	keyword string
	tmdbID  int
}

// genreVocabulary is scanned in order; the first keyword found in the
// message wins, so the order is part of the behaviour.
var genreVocabulary = []genreKeyword{
	{"action", 28},
	{"adventure", 12},
	{"animation", 16},
	{"comedy", 35},
	{"crime", 80},
	{"documentary", 99},
	{"drama", 18},
	{"family", 10751},
	{"fantasy", 14},
	{"history", 36},
	{"horror", 27},
	{"music", 10402},
	{"mystery", 9648},
	{"romance", 10749},
	{"science fiction", 878},
	{"sci-fi", 878},
	{"thriller", 53},
	{"war", 10752},
	{"western", 37},
}

type languageKeyword struct {
	keyword string
	code    string
	name    string
}

var languageVocabulary = []languageKeyword{
	{"hindi", "hi", "Hindi"},
	{"english", "en", "English"},
	{"french", "fr", "French"},
}

var dateBuckets = []string{DateToday, DateTonight, DateWeekend}

var (
	cityPattern         = regexp.MustCompile(`\bin ([a-z]+)`)
	titleKeywordPattern = regexp.MustCompile(`(?i)\b(?:movie|film|watch|show)\b`)
	titleTextPattern    = regexp.MustCompile(`(?i)^ +([a-z0-9: ]+)`)
	trailingDatePattern = regexp.MustCompile(`(?i)(?:^|\s)(?:this weekend|today|tonight|weekend)$`)
	// "to watch", "a movie": the keyword is the object of the request, not part of a title
	connectivePattern = regexp.MustCompile(`(?i)^(?:(?:to|a|an|some|any|another|good|great|new)\s+)?(?:movie|film|watch|show)$`)
)

// Intent is the structured reading of one chat message. Nil means not recognised.
type Intent struct {
	City     *string
	Genre    *string
	Language *string // ISO 639-1 code
	Date     *string
	Title    *string
}

// HasFilters reports whether the discover step applies
func (i Intent) HasFilters() bool {
	return i.Genre != nil || i.Language != nil || i.Date != nil
}

// ExtractIntent parses a free-text message. It never fails: anything it
// cannot recognise is left nil.
func ExtractIntent(text string) Intent {
	lower := strings.ToLower(text)

	var in Intent

	if m := cityPattern.FindStringSubmatch(lower); m != nil {
		in.City = &m[1]
	}

	for _, g := range genreVocabulary {
		if strings.Contains(lower, g.keyword) {
			genre := g.keyword
			in.Genre = &genre
			break
		}
	}

	for _, l := range languageVocabulary {
		if strings.Contains(lower, l.keyword) {
			code := l.code
			in.Language = &code
			break
		}
	}

	for _, d := range dateBuckets {
		if strings.Contains(lower, d) {
			date := d
			in.Date = &date
			break
		}
	}

	in.Title = extractTitle(text)

	return in
}

// extractTitle returns the first title candidate
func extractTitle(text string) *string {
	candidates := titleCandidates(text)
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// titleCandidates takes the words after every movie/film/watch/show keyword,
// left to right, so titles that contain a keyword themselves survive.
func titleCandidates(text string) []string {
	var candidates []string
	for _, loc := range titleKeywordPattern.FindAllStringIndex(text, -1) {
		m := titleTextPattern.FindStringSubmatch(text[loc[1]:])
		if m == nil {
			continue
		}

		title := strings.TrimSpace(m[1])
		title = strings.TrimSpace(trailingDatePattern.ReplaceAllString(title, ""))
		if title == "" || connectivePattern.MatchString(title) {
			continue
		}
		candidates = append(candidates, title)
	}
	return candidates
}

func genreID(genre string) int {
	for _, g := range genreVocabulary {
		if g.keyword == genre {
			return g.tmdbID
		}
	}
	return 0
}

// languageName maps an ISO code back to the name used by the local catalog
func languageName(code string) string {
	for _, l := range languageVocabulary {
		if l.code == code {
			return l.name
		}
	}
	return code
}
