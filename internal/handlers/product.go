package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pixelpanda_back_end/internal/cache"
	"pixelpanda_back_end/internal/catalog"
	"pixelpanda_back_end/internal/database"
	"pixelpanda_back_end/internal/models"
	"pixelpanda_back_end/internal/storage"
)

// GET /api/products
// Public catalog listing. A database failure degrades to an empty page
// instead of surfacing a driver error to the storefront.
func GetProducts(c *gin.Context) {
	params := catalog.ParseListParams(c.Request.URL.Query())

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// The unfiltered first page is the landing-page request; serve it from
	// Redis when possible.
	cacheable := params == catalog.ListParams{Page: 1, Limit: catalog.DefaultLimit} ||
		params == catalog.ListParams{Page: 1, Limit: catalog.DefaultLimit, Featured: true}
	cacheKey := "default"
	if params.Featured {
		cacheKey = "featured"
	}

	if cacheable {
		if page, ok := cache.GetProductPage(ctx, cacheKey); ok {
			c.JSON(http.StatusOK, page)
			return
		}
	}

	page, err := catalog.List(ctx, database.Products(), params)
	if err != nil {
		c.JSON(http.StatusOK, catalog.EmptyPage(params))
		return
	}

	if cacheable {
		cache.SetProductPage(ctx, cacheKey, page)
	}

	c.JSON(http.StatusOK, page)
}

// GET /api/admin/products
// Admin catalog: inactive products included, price sort allowed, database
// failures surfaced.
func AdminListProducts(c *gin.Context) {
	params := catalog.ParseListParams(c.Request.URL.Query())
	params.IncludeInactive = true

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	page, err := catalog.List(ctx, database.Products(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching products"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// creatorRef is the public slice of the user who created a product.
type creatorRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// productDetail replaces the raw createdBy id with the creator's name and
// email on the detail endpoint.
type productDetail struct {
	models.Product
	CreatedBy *creatorRef `json:"createdBy,omitempty"`
}

func lookupCreator(ctx context.Context, id primitive.ObjectID) *creatorRef {
	if id.IsZero() {
		return nil
	}
	var creator creatorRef
	err := database.Users().FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"name": 1, "email": 1})).Decode(&creator)
	if err != nil {
		return nil
	}
	return &creator
}

// GET /api/products/:id
func GetProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching product"})
		return
	}

	detail := productDetail{Product: product, CreatedBy: lookupCreator(ctx, product.CreatedBy)}

	c.JSON(http.StatusOK, gin.H{"product": detail})
}

type productInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"isActive"`
	IsFeatured  bool     `json:"isFeatured"`
}

func (in productInput) validate() string {
	switch {
	case in.Name == "":
		return "Please provide a product name"
	case len(in.Name) > 100:
		return "Name cannot be more than 100 characters"
	case in.Description == "":
		return "Please provide a product description"
	case len(in.Description) > 1000:
		return "Description cannot be more than 1000 characters"
	case in.Category == "":
		return "Please provide a product category"
	case in.Price < 0:
		return "Price cannot be negative"
	}
	return ""
}

// POST /api/products (admin)
func CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	adminID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if input.Brand == "" {
		input.Brand = "PixelPanda"
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	product := models.Product{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Brand:       input.Brand,
		Stock:       input.Stock,
		Images:      input.Images,
		IsActive:    isActive,
		IsFeatured:  input.IsFeatured,
		CreatedBy:   adminID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := database.Products().InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating product"})
		return
	}

	cache.InvalidateProducts(ctx)

	c.JSON(http.StatusCreated, gin.H{"product": product, "message": "Product created successfully"})
}

// PUT /api/products/:id (admin)
// Images dropped from the list are deleted from the bucket before the
// database write; cleanup failures never block the update.
func UpdateProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var old models.Product
	err = database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&old)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating product"})
		return
	}

	if removed := storage.RemovedImages(old.Images, input.Images); len(removed) > 0 {
		storage.Cleanup(ctx, removed)
	}

	isActive := old.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	if input.Brand == "" {
		input.Brand = old.Brand
	}

	update := bson.M{"$set": bson.M{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"category":    input.Category,
		"brand":       input.Brand,
		"stock":       input.Stock,
		"images":      input.Images,
		"isActive":    isActive,
		"isFeatured":  input.IsFeatured,
		"updatedAt":   time.Now(),
	}}

	if _, err := database.Products().UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating product"})
		return
	}

	var product models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating product"})
		return
	}

	cache.InvalidateProducts(ctx)

	c.JSON(http.StatusOK, gin.H{"product": product, "message": "Product updated successfully"})
}

// DELETE /api/products/:id (admin)
// All of the product's managed-bucket images are submitted for deletion; the
// record is removed even when blob cleanup fails.
func DeleteProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var product models.Product
	err = database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting product"})
		return
	}

	storage.Cleanup(ctx, product.Images)

	if _, err := database.Products().DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting product"})
		return
	}

	cache.InvalidateProducts(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
