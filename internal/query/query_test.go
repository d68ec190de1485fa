package query

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipeshare/internal/apperr"
	"recipeshare/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestParseRecipeQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    RecipeQuery
		wantErr bool
	}{
		{
			name: "defaults",
			raw:  "",
			want: RecipeQuery{Page: Page{Number: 1, Limit: 10}},
		},
		{
			name: "all clauses",
			raw:  "search=+Tomato+&rating=3.5&preparationTime=30&page=2&limit=5",
			want: RecipeQuery{
				Filter: RecipeFilter{Search: "Tomato", MinRating: ptr(3.5), MaxPreparationTime: ptr(30)},
				Page:   Page{Number: 2, Limit: 5},
			},
		},
		{
			name: "page floored to one",
			raw:  "page=-4",
			want: RecipeQuery{Page: Page{Number: 1, Limit: 10}},
		},
		{
			name: "malformed page falls back",
			raw:  "page=abc",
			want: RecipeQuery{Page: Page{Number: 1, Limit: 10}},
		},
		{
			name: "limit capped",
			raw:  "limit=9223372036854775807",
			want: RecipeQuery{Page: Page{Number: 1, Limit: MaxLimit}},
		},
		{
			name: "huge page kept",
			raw:  "page=4611686018427387904&limit=4611686018427387904",
			want: RecipeQuery{Page: Page{Number: 4611686018427387904, Limit: MaxLimit}},
		},
		{name: "limit beyond int range", raw: "limit=99999999999999999999", wantErr: true},
		{name: "zero limit", raw: "limit=0", wantErr: true},
		{name: "negative limit", raw: "limit=-1", wantErr: true},
		{name: "malformed limit", raw: "limit=ten", wantErr: true},
		{name: "malformed rating", raw: "rating=high", wantErr: true},
		{name: "malformed preparation time", raw: "preparationTime=NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			got, err := ParseRecipeQuery(values)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Page{Number: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, Page{Number: 0, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, Page{Number: 4, Limit: math.MaxInt / 2}.Offset())
	assert.Equal(t, math.MaxInt, Page{Number: math.MaxInt, Limit: MaxLimit}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(5, math.MaxInt))
	assert.Equal(t, 2, TotalPages(math.MaxInt64, math.MaxInt64/2+1))
}

func TestParseTopLimit(t *testing.T) {
	assert.Equal(t, DefaultTopLimit, ParseTopLimit(""))
	assert.Equal(t, DefaultTopLimit, ParseTopLimit("-2"))
	assert.Equal(t, 7, ParseTopLimit("7"))
	assert.Equal(t, MaxTopLimit, ParseTopLimit("500"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% rye\_bread\\`, EscapeLike(`100% rye_bread\`))
	assert.Equal(t, `%salt%`, RecipeFilter{Search: "salt"}.LikePattern())
}

func TestFilterMatches(t *testing.T) {
	recipe := &models.Recipe{
		Title:           "Weeknight Curry",
		Ingredients:     []string{"Chickpeas", "Coconut Milk"},
		PreparationTime: 25,
		AverageRating:   4,
	}

	tests := []struct {
		name   string
		filter RecipeFilter
		want   bool
	}{
		{"empty filter", RecipeFilter{}, true},
		{"title substring", RecipeFilter{Search: "curry"}, true},
		{"ingredient substring only", RecipeFilter{Search: "COCONUT"}, true},
		{"no match", RecipeFilter{Search: "tofu"}, false},
		{"rating bound inclusive", RecipeFilter{MinRating: ptr(4)}, true},
		{"rating too high", RecipeFilter{MinRating: ptr(4.5)}, false},
		{"prep bound inclusive", RecipeFilter{MaxPreparationTime: ptr(25)}, true},
		{"prep too short", RecipeFilter{MaxPreparationTime: ptr(20)}, false},
		{"search ANDed with rating", RecipeFilter{Search: "curry", MinRating: ptr(5)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(recipe))
		})
	}
}
