package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartfarm/config"
	"smartfarm/models"
	"smartfarm/utils"
)

// GetCrops returns the crop profile reference table.
func GetCrops(c *gin.Context) {
	c.JSON(http.StatusOK, config.Crops)
}

// GetRecommendations scores every crop profile against the latest
// sensor reading and returns them ranked, best match first.
func GetRecommendations(c *gin.Context) {
	reading, err := models.LatestReading(config.DB)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No sensor data recorded yet"})
		return
	}

	recommendations := utils.RankCrops(reading, config.Crops)
	c.JSON(http.StatusOK, gin.H{
		"reading":         reading,
		"recommendations": recommendations,
	})
}
