package admin

import (
	"log"
	"net/http"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/services"
	"pos_backend/pkg/store"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

// GetMenuItems lists the catalog for ?view=all, food, bar or inventory
func GetMenuItems(c *gin.Context) {
	app := middleware.GetApp(c)
	items, err := app.State.ManagementMenu(c.DefaultQuery("view", store.MenuViewAll))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateMenuItem adds a dish or essential to the catalog
func CreateMenuItem(c *gin.Context) {
	var req store.MenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item"})
		return
	}
	req.Category = normalizeCategory(req.Category)

	app := middleware.GetApp(c)
	item, err := app.State.AddMenuItem(req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem replaces the editable fields of an item
func UpdateMenuItem(c *gin.Context) {
	var req store.MenuInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item"})
		return
	}
	req.Category = normalizeCategory(req.Category)

	app := middleware.GetApp(c)
	item, err := app.State.UpdateMenuItem(c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes an item and its uploaded image
func DeleteMenuItem(c *gin.Context) {
	app := middleware.GetApp(c)
	id := c.Param("id")

	item, err := app.State.MenuItem(id)
	if err != nil {
		c.Error(err)
		return
	}
	if err := app.State.DeleteMenuItem(id); err != nil {
		c.Error(err)
		return
	}
	if err := services.DeleteMenuImage(c.Request.Context(), item.Image); err != nil {
		log.Printf("⚠️  Could not delete image of menu item %s: %v", id, err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

// UploadMenuImage stores a photo for a menu item and points the item at it
func UploadMenuImage(c *gin.Context) {
	if !services.StorageReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image storage is not configured"})
		return
	}

	app := middleware.GetApp(c)
	id := c.Param("id")
	item, err := app.State.MenuItem(id)
	if err != nil {
		c.Error(err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image must be 5MB or smaller"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only image uploads are allowed"})
		return
	}

	url, err := services.UploadMenuImage(c.Request.Context(), file, header.Filename, contentType)
	if err != nil {
		c.Error(err)
		return
	}
	updated, err := app.State.SetMenuImage(id, url)
	if err != nil {
		c.Error(err)
		return
	}
	if item.Image != url {
		if err := services.DeleteMenuImage(c.Request.Context(), item.Image); err != nil {
			log.Printf("⚠️  Could not delete old image of menu item %s: %v", id, err)
		}
	}
	c.JSON(http.StatusOK, updated)
}

// GenerateDescription drafts a menu description from a dish name and ingredients
func GenerateDescription(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Ingredients string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	app := middleware.GetApp(c)
	description := app.Assistant.DescribeDish(c.Request.Context(), req.Name, req.Ingredients)
	c.JSON(http.StatusOK, gin.H{"description": description})
}

// ResetMenu restores the default catalog
func ResetMenu(c *gin.Context) {
	app := middleware.GetApp(c)
	items := app.State.ResetMenu()
	c.JSON(http.StatusOK, gin.H{"message": "Menu reset to defaults", "items": items})
}
