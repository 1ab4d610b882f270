package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"pixelpanda_back_end/internal/models"
)

type Page struct {
	Products      []models.Product `json:"products"`
	CurrentPage   int              `json:"currentPage"`
	TotalPages    int              `json:"totalPages"`
	TotalProducts int64            `json:"totalProducts"`
}

// List executes the built query against the product collection. The count and
// the fetch are both read-only and order-independent, so they run
// concurrently; the page is assembled once both complete.
func List(ctx context.Context, coll *mongo.Collection, p ListParams) (Page, error) {
	filter := p.Filter()

	type countResult struct {
		total int64
		err   error
	}
	countCh := make(chan countResult, 1)
	go func() {
		total, err := coll.CountDocuments(ctx, filter)
		countCh <- countResult{total, err}
	}()

	products := []models.Product{}
	cursor, err := coll.Find(ctx, filter, p.FindOptions())
	if err == nil {
		defer cursor.Close(ctx)
		err = cursor.All(ctx, &products)
	}

	count := <-countCh
	if err != nil {
		return Page{}, err
	}
	if count.err != nil {
		return Page{}, count.err
	}

	return Page{
		Products:      products,
		CurrentPage:   p.Page,
		TotalPages:    TotalPages(count.total, p.Limit),
		TotalProducts: count.total,
	}, nil
}

// EmptyPage is the degraded result served to public browsing when the
// database is unavailable.
func EmptyPage(p ListParams) Page {
	return Page{
		Products:    []models.Product{},
		CurrentPage: p.Page,
	}
}
