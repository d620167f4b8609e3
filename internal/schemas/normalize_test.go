package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mindful-escapades/internal/models"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]struct {
		want  models.Status
		known bool
	}{
		"ongoing":       {models.StatusOngoing, true},
		"Ongoing":       {models.StatusOngoing, true},
		"  on going ":   {models.StatusOngoing, true},
		"in progress":   {models.StatusOngoing, true},
		"good_ending":   {models.StatusGoodEnding, true},
		"good ending":   {models.StatusGoodEnding, true},
		"Good Ending":   {models.StatusGoodEnding, true},
		"good-ending":   {models.StatusGoodEnding, true},
		"GOODENDING":    {models.StatusGoodEnding, true},
		"bad_ending":    {models.StatusBadEnding, true},
		"bad ending":    {models.StatusBadEnding, true},
		"Bad__Ending":   {models.StatusBadEnding, true},
		"":              {models.StatusOngoing, false},
		"finished":      {models.StatusOngoing, false},
		"good":          {models.StatusOngoing, false},
		"Bad":           {models.StatusOngoing, false},
		"neutral_ended": {models.StatusOngoing, false},
	}

	for in, tc := range cases {
		got, known := NormalizeStatus(in)
		assert.Equal(t, tc.want, got, "input %q", in)
		assert.Equal(t, tc.known, known, "input %q", in)
	}
}

func TestNormalizeSentiment(t *testing.T) {
	cases := map[string]struct {
		want  models.Sentiment
		known bool
	}{
		"neutral":   {models.SentimentNeutral, true},
		"Negative":  {models.SentimentNegative, true},
		" POSITIVE": {models.SentimentPositive, true},
		"":          {models.SentimentNeutral, false},
		"great":     {models.SentimentNeutral, false},
	}

	for in, tc := range cases {
		got, known := NormalizeSentiment(in)
		assert.Equal(t, tc.want, got, "input %q", in)
		assert.Equal(t, tc.known, known, "input %q", in)
	}
}
