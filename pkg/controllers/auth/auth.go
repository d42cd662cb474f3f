package auth

import (
	"log"
	"net/http"
	"pos_backend/pkg/config"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/session"
	"pos_backend/pkg/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Login signs a staff member in with their staff id and passcode
func Login(c *gin.Context) {
	var req struct {
		StaffID  string `json:"staffId" binding:"required"`
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Staff ID and passcode are required"})
		return
	}

	app := middleware.GetApp(c)
	member, err := app.State.Login(strings.TrimSpace(req.StaffID), strings.TrimSpace(req.Passcode))
	if err != nil {
		c.Error(err)
		return
	}

	key := uuid.NewString()
	token, err := utils.GenerateToken(member.ID, member.Role, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if err := middleware.StartSession(c, member.ID, key); err != nil {
		log.Printf("⚠️  Could not save session for %s: %v", member.ID, err)
	}
	app.Idle.Begin(key, member.ID)

	c.SetCookie(
		middleware.TokenCookie,
		token,
		int(utils.TokenTTL().Seconds()),
		"/",
		"",
		config.AppConfig.CookieSecure == "true",
		true,
	)

	response := gin.H{
		"message":        "Login successful",
		"user":           member,
		"standbyMinutes": app.State.Settings().StandbyMinutes,
	}
	if config.AppConfig.EnableMobileTokenReturn == "true" {
		response["token"] = token
	}
	c.JSON(http.StatusOK, response)
}

// Logout ends the session and clears its cookies
func Logout(c *gin.Context) {
	app := middleware.GetApp(c)
	if key := middleware.CurrentSessionKey(c); key != "" {
		app.Idle.End(key, middleware.CurrentStaff(c).ID)
	}
	middleware.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// Me returns the signed-in staff member
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentStaff(c)})
}

// Activity resets the idle countdown of the current session
func Activity(c *gin.Context) {
	var req struct {
		Signal string `json:"signal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "signal is required"})
		return
	}
	signal, ok := session.ParseSignal(req.Signal)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown activity signal: " + req.Signal})
		return
	}

	app := middleware.GetApp(c)
	if !app.Idle.Activity(middleware.CurrentSessionKey(c), signal) {
		middleware.ClearSession(c)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Signed out due to inactivity."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Activity recorded",
		"standbyMinutes": app.State.Settings().StandbyMinutes,
	})
}
