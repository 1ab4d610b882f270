package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pixelpanda_back_end/internal/database"
	"pixelpanda_back_end/internal/models"
)

// GET /api/admin/stats
func AdminStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	type result struct {
		name  string
		value interface{}
		err   error
	}

	results := make(chan result, 4)

	go func() {
		n, err := database.Users().CountDocuments(ctx, bson.M{})
		results <- result{"totalUsers", n, err}
	}()
	go func() {
		n, err := database.Orders().CountDocuments(ctx, bson.M{})
		results <- result{"totalOrders", n, err}
	}()
	go func() {
		n, err := database.Products().CountDocuments(ctx, bson.M{"isActive": true})
		results <- result{"activeProducts", n, err}
	}()
	go func() {
		var revenue float64
		cursor, err := database.Orders().Aggregate(ctx, bson.A{
			bson.M{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}},
		})
		if err == nil {
			var rows []bson.M
			if err = cursor.All(ctx, &rows); err == nil && len(rows) > 0 {
				switch v := rows[0]["total"].(type) {
				case float64:
					revenue = v
				case int32:
					revenue = float64(v)
				case int64:
					revenue = float64(v)
				}
			}
		}
		results <- result{"totalRevenue", revenue, err}
	}()

	stats := gin.H{}
	for i := 0; i < 4; i++ {
		r := <-results
		if r.err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
			return
		}
		stats[r.name] = r.value
	}

	c.JSON(http.StatusOK, stats)
}

// GET /api/admin/users
func AdminListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password": 0})

	cursor, err := database.Users().Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding users"})
		return
	}

	total, err := database.Users().CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting users"})
		return
	}

	pages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": pages,
		},
	})
}
