package usecase

import (
	"fmt"
	"strings"

	"cinema-chat/internal/dto/response"
)

const (
	replyNoMatch       = "I'm sorry, I couldn't find any movies matching your request. Try asking for a different movie or genre."
	ReplyInternalError = "Sorry, something went wrong. Please try again later."
)

// filterTerms renders the applied genre and language, e.g. " action Hindi"
func filterTerms(in Intent) string {
	var sb strings.Builder
	if in.Genre != nil {
		sb.WriteString(" " + *in.Genre)
	}
	if in.Language != nil {
		sb.WriteString(" " + languageName(*in.Language))
	}
	return sb.String()
}

func localTitleReply(title string) string {
	return fmt.Sprintf(`Found "%s" in our local database:`, title)
}

func discoverReply(in Intent) string {
	reply := "Here are some popular" + filterTerms(in) + " movies"
	if in.Date != nil {
		reply += " for " + *in.Date
	}
	return reply + ":"
}

func discoverFallbackReply(in Intent) string {
	return "TMDb is unavailable. Here are some" + filterTerms(in) + " movies from our local database:"
}

func titleSearchReply(m response.MovieResult) string {
	year := ""
	if m.Year != nil {
		year = *m.Year
	}
	overview := ""
	if m.Overview != nil {
		overview = *m.Overview
	}

	reply := fmt.Sprintf(`"%s" (%s): %s`, m.Title, year, overview)
	if len(m.Cast) > 0 {
		names := make([]string, 0, len(m.Cast))
		for _, c := range m.Cast {
			names = append(names, c.Name)
		}
		reply += "\nCast: " + strings.Join(names, ", ")
	}
	return reply
}

func titleFallbackReply(title string) string {
	return fmt.Sprintf(`TMDb is unavailable. Here are some movies matching "%s" from our local database:`, title)
}
