package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pixelpanda_back_end/internal/cart"
	"pixelpanda_back_end/internal/database"
)

// SessionCookie identifies a shopper's cart without requiring a login. Two
// browsers get two carts; there is no cross-device merge.
const SessionCookie = "cart_session"

func sessionStore(c *gin.Context) *cart.Store {
	session, err := c.Cookie(SessionCookie)
	if err != nil || session == "" {
		session = uuid.NewString()
		c.SetCookie(SessionCookie, session, int(cart.CartTTL.Seconds()), "/", "", secureCookies(), true)
	}

	return cart.New(&cart.RedisPersistence{
		Client: database.Redis,
		Key:    "cart:" + session,
	})
}

func cartResponse(s *cart.Store) gin.H {
	return gin.H{
		"items": s.Snapshot(),
		"total": s.Total(),
		"count": s.Count(),
	}
}

// GET /api/cart
func GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(sessionStore(c)))
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	var input struct {
		ID       string  `json:"_id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Image    string  `json:"image"`
		Category string  `json:"category"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if input.ID == "" || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item id and name are required"})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
		return
	}

	store := sessionStore(c)
	store.Add(cart.Item{
		ID:       input.ID,
		Name:     input.Name,
		Price:    input.Price,
		Image:    input.Image,
		Category: input.Category,
	})

	c.JSON(http.StatusOK, cartResponse(store))
}

// PUT /api/cart/quantity
func UpdateCartQuantity(c *gin.Context) {
	var input struct {
		ID    string `json:"_id"`
		Delta int    `json:"delta"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	store := sessionStore(c)
	if !store.UpdateQuantity(input.ID, input.Delta) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(store))
}

// DELETE /api/cart/item/:id
func RemoveFromCart(c *gin.Context) {
	store := sessionStore(c)
	if !store.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(store))
}

// DELETE /api/cart
func ClearCart(c *gin.Context) {
	store := sessionStore(c)
	store.Clear()
	c.JSON(http.StatusOK, cartResponse(store))
}
