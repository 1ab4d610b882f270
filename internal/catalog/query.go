// Package catalog translates incoming filter requests into MongoDB queries
// over the product collection and returns paginated pages.
package catalog

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultLimit = 10

// Sort orders supported by the listing endpoints. Public category browsing
// defaults to newest-first; the admin catalog may sort by price.
const (
	SortNewest    = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

type ListParams struct {
	Category        string
	Search          string
	MinPrice        *float64
	MaxPrice        *float64
	Featured        bool
	Page            int
	Limit           int
	Sort            string
	IncludeInactive bool
}

// ParseListParams reads filter, pagination and sort values from a query
// string. Malformed numeric input is ignored, not an error.
func ParseListParams(q url.Values) ListParams {
	p := ListParams{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Featured: q.Get("featured") == "true",
		Sort:     q.Get("sort"),
		Page:     1,
		Limit:    DefaultLimit,
	}

	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		p.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		p.MaxPrice = &v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 1 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v >= 1 {
		p.Limit = v
	}
	return p
}

// Filter builds the MongoDB filter document. Public listings always carry
// isActive=true; every other predicate is optional.
func (p ListParams) Filter() bson.M {
	query := bson.M{}

	if !p.IncludeInactive {
		query["isActive"] = true
	}

	if p.Featured {
		query["isFeatured"] = true
	}

	if cat := strings.TrimSpace(p.Category); cat != "" && cat != "all" {
		categories := strings.Split(cat, ",")
		if len(categories) > 1 {
			regexes := make([]primitive.Regex, 0, len(categories))
			for _, c := range categories {
				regexes = append(regexes, anchoredRegex(c))
			}
			query["category"] = bson.M{"$in": regexes}
		} else {
			query["category"] = anchoredRegex(categories[0])
		}
	}

	if s := strings.TrimSpace(p.Search); s != "" {
		sub := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": sub},
			bson.M{"category": sub},
		}
	}

	if p.MinPrice != nil || p.MaxPrice != nil {
		price := bson.M{}
		if p.MinPrice != nil {
			price["$gte"] = *p.MinPrice
		}
		if p.MaxPrice != nil {
			price["$lte"] = *p.MaxPrice
		}
		query["price"] = price
	}

	return query
}

// FindOptions applies pagination and sort. skip = (page-1)×limit.
func (p ListParams) FindOptions() *options.FindOptions {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	switch p.Sort {
	case SortPriceAsc:
		sort = bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		sort = bson.D{{Key: "price", Value: -1}}
	}

	return options.Find().
		SetSort(sort).
		SetSkip(int64((p.Page - 1) * p.Limit)).
		SetLimit(int64(p.Limit))
}

// anchoredRegex matches a category exactly, case-insensitively, with regex
// metacharacters in the raw value escaped.
func anchoredRegex(category string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(category)) + "$",
		Options: "i",
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
