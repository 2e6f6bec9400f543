package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func TestExtractIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{
			name: "genre and date without title",
			text: "Suggest an action movie to watch tonight",
			want: Intent{Genre: strp("action"), Date: strp("tonight")},
		},
		{
			name: "city and today",
			text: "What's good in Mumbai today?",
			want: Intent{City: strp("mumbai"), Date: strp("today")},
		},
		{
			name: "title keeps case",
			text: "watch Inception",
			want: Intent{Title: strp("Inception")},
		},
		{
			name: "language and city",
			text: "What are the best Hindi movies today in Delhi?",
			want: Intent{City: strp("delhi"), Language: strp("hi"), Date: strp("today")},
		},
		{
			name: "first genre in vocabulary order wins",
			text: "a thriller or maybe a comedy",
			want: Intent{Genre: strp("comedy")},
		},
		{
			name: "sci-fi synonym",
			text: "any good sci-fi around",
			want: Intent{Genre: strp("sci-fi")},
		},
		{
			name: "science fiction before sci-fi",
			text: "science fiction or sci-fi",
			want: Intent{Genre: strp("science fiction")},
		},
		{
			name: "language priority",
			text: "french or english films",
			want: Intent{Language: strp("en")},
		},
		{
			name: "date priority",
			text: "this weekend or tonight",
			want: Intent{Date: strp("tonight")},
		},
		{
			name: "trailing date word dropped from title",
			text: "I want to watch Dangal this weekend",
			want: Intent{Date: strp("weekend"), Title: strp("Dangal")},
		},
		{
			name: "title stops at punctuation",
			text: "Tell me about the film Interstellar, please",
			want: Intent{Title: strp("Interstellar")},
		},
		{
			name: "title with colon and digits",
			text: "show Mission: Impossible 2",
			want: Intent{Title: strp("Mission: Impossible 2")},
		},
		{
			name: "title ending in a keyword",
			text: "watch The Truman Show",
			want: Intent{Title: strp("The Truman Show")},
		},
		{
			name: "title ending in movie",
			text: "watch The Lego Movie",
			want: Intent{Title: strp("The Lego Movie")},
		},
		{
			name: "title starting with a keyword",
			text: "tell me about the film Show Me Love",
			want: Intent{Title: strp("Show Me Love")},
		},
		{
			name: "keyword as object of the request",
			text: "I want to watch a movie tonight",
			want: Intent{Date: strp("tonight")},
		},
		{
			name: "keyword without text",
			text: "recommend a movie?",
			want: Intent{},
		},
		{
			name: "nothing recognised",
			text: "hello there",
			want: Intent{},
		},
		{
			name: "empty",
			text: "",
			want: Intent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIntent(tt.text))
		})
	}
}

func TestTitleCandidates(t *testing.T) {
	assert.Equal(t, []string{"The Truman Show"}, titleCandidates("watch The Truman Show"))
	assert.Equal(t, []string{"Show Me Love", "Me Love"}, titleCandidates("the film Show Me Love"))
	assert.Equal(t, []string{"me a film Dangal", "Dangal"}, titleCandidates("show me a film Dangal"))
	assert.Nil(t, titleCandidates("Suggest an action movie to watch tonight"))
	assert.Nil(t, titleCandidates("hello there"))
}

func TestExtractIntent_IsPure(t *testing.T) {
	msg := "Suggest a horror film in Pune today"
	assert.Equal(t, ExtractIntent(msg), ExtractIntent(msg))
}

func TestIntent_HasFilters(t *testing.T) {
	assert.False(t, Intent{}.HasFilters())
	assert.False(t, Intent{City: strp("pune"), Title: strp("X")}.HasFilters())
	assert.True(t, Intent{Date: strp(DateToday)}.HasFilters())
	assert.True(t, Intent{Language: strp("hi")}.HasFilters())
}

func TestGenreID(t *testing.T) {
	assert.Equal(t, 28, genreID("action"))
	assert.Equal(t, 878, genreID("science fiction"))
	assert.Equal(t, 878, genreID("sci-fi"))
	assert.Equal(t, 0, genreID("opera"))
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Hindi", languageName("hi"))
	assert.Equal(t, "xx", languageName("xx"))
}
