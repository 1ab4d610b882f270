package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pixelpanda_back_end/internal/utils"
)

// POST /api/contact
func Contact(c *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name == "" || input.Email == "" || input.Subject == "" || input.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}

	if err := utils.SendContactEmail(input.Name, input.Email, input.Subject, input.Message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message could not be sent, please check your details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}
