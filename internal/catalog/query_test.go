package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parse(t *testing.T, rawQuery string) ListParams {
	t.Helper()
	q, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	return ParseListParams(q)
}

func TestParseListParamsDefaults(t *testing.T) {
	p := parse(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Nil(t, p.MinPrice)
	assert.Nil(t, p.MaxPrice)
	assert.False(t, p.Featured)
}

func TestParseListParamsIgnoresMalformedNumbers(t *testing.T) {
	p := parse(t, "minPrice=abc&maxPrice=&page=0&limit=-3")
	assert.Nil(t, p.MinPrice)
	assert.Nil(t, p.MaxPrice)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestFilterDefaultIsActiveOnly(t *testing.T) {
	for _, raw := range []string{"", "category=all"} {
		p := parse(t, raw)
		assert.Equal(t, bson.M{"isActive": true}, p.Filter(), "query %q", raw)
	}
}

func TestFilterSingleCategoryAnchored(t *testing.T) {
	p := parse(t, "category=Templates")
	f := p.Filter()

	re, ok := f["category"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "^Templates$", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestFilterMultiCategoryUnion(t *testing.T) {
	p := parse(t, "category=Templates,Icons")
	f := p.Filter()

	in, ok := f["category"].(bson.M)
	require.True(t, ok)
	regexes, ok := in["$in"].([]primitive.Regex)
	require.True(t, ok)
	require.Len(t, regexes, 2)
	assert.Equal(t, "^Templates$", regexes[0].Pattern)
	assert.Equal(t, "^Icons$", regexes[1].Pattern)
	assert.Equal(t, "i", regexes[0].Options)
	assert.Equal(t, true, f["isActive"])
}

func TestFilterEscapesRegexMetacharacters(t *testing.T) {
	p := parse(t, "category=C%2B%2B+Snippets") // "C++ Snippets"
	f := p.Filter()

	re, ok := f["category"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `^C\+\+ Snippets$`, re.Pattern)
}

func TestFilterSearch(t *testing.T) {
	p := parse(t, "search=panda")
	f := p.Filter()

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"name": primitive.Regex{Pattern: "panda", Options: "i"}}, or[0])
	assert.Equal(t, bson.M{"category": primitive.Regex{Pattern: "panda", Options: "i"}}, or[1])
	// combined by AND with the mandatory predicate
	assert.Equal(t, true, f["isActive"])
}

func TestFilterPriceBounds(t *testing.T) {
	p := parse(t, "minPrice=10&maxPrice=50")
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 50.0}, p.Filter()["price"])

	p = parse(t, "minPrice=10")
	assert.Equal(t, bson.M{"$gte": 10.0}, p.Filter()["price"])

	p = parse(t, "maxPrice=50")
	assert.Equal(t, bson.M{"$lte": 50.0}, p.Filter()["price"])
}

func TestFilterFeatured(t *testing.T) {
	p := parse(t, "featured=true")
	assert.Equal(t, true, p.Filter()["isFeatured"])

	p = parse(t, "featured=false")
	_, present := p.Filter()["isFeatured"]
	assert.False(t, present)
}

func TestFilterIncludeInactive(t *testing.T) {
	p := parse(t, "")
	p.IncludeInactive = true
	_, present := p.Filter()["isActive"]
	assert.False(t, present)
}

func TestFindOptionsPagination(t *testing.T) {
	p := parse(t, "page=3&limit=20")
	opts := p.FindOptions()
	assert.Equal(t, int64(40), *opts.Skip)
	assert.Equal(t, int64(20), *opts.Limit)
}

func TestFindOptionsSort(t *testing.T) {
	newest := parse(t, "").FindOptions()
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, newest.Sort)

	asc := parse(t, "sort=price_asc").FindOptions()
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, asc.Sort)

	desc := parse(t, "sort=price_desc").FindOptions()
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, desc.Sort)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 5, TotalPages(41, 10))
}
