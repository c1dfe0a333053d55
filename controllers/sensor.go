package controllers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartfarm/config"
	"smartfarm/models"
	"smartfarm/utils"
)

// Alerter dispatches SMS alerts for critical field conditions. Set by
// main at startup; nil disables alerting.
var Alerter *utils.SMSAlerter

// IngestReading stores a validated reading, notifies dashboard clients,
// raises alerts and runs the automatic irrigation check. Shared by the
// HTTP and MQTT ingest paths.
func IngestReading(input models.SensorReadingInput) (models.SensorReading, error) {
	if !input.Complete() {
		return models.SensorReading{}, utils.ErrInvalidReading
	}

	reading := input.Reading(time.Now())
	if err := utils.ValidateReading(reading); err != nil {
		return models.SensorReading{}, err
	}

	reading.IsAbnormal = utils.CheckAbnormality(reading)
	if err := config.DB.Create(&reading).Error; err != nil {
		return models.SensorReading{}, err
	}

	BroadcastUpdate(reading)

	if reading.IsAbnormal {
		kind := utils.GetAbnormalType(reading)
		message := fmt.Sprintf("Smartfarm alert: abnormal %s reading at %s",
			kind, reading.Timestamp.Format("15:04 2006-01-02"))
		BroadcastNotification(kind, message, reading)
		Alerter.Send(config.DB, kind, message)
	}

	if err := RunAutomaticControl(reading); err != nil {
		// Ingest already succeeded; the control check defers to the
		// next reading.
		slog.Warn("automatic irrigation check failed", "err", err)
	}

	return reading, nil
}

// ReceiveData processes incoming sensor data.
func ReceiveData(c *gin.Context) {
	var input models.SensorReadingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	reading, err := IngestReading(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data received successfully", "reading": reading})
}

// GetHistory returns sensor data history, newest first.
func GetHistory(c *gin.Context) {
	query := config.DB.Order("timestamp desc")
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		query = query.Limit(limit)
	}

	var records []models.SensorReading
	if err := query.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetLatest returns the most recent sensor reading.
func GetLatest(c *gin.Context) {
	reading, err := models.LatestReading(config.DB)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No sensor data recorded yet"})
		return
	}
	c.JSON(http.StatusOK, reading)
}

// GetAbnormalCount returns the count of abnormal sensor readings.
func GetAbnormalCount(c *gin.Context) {
	var count int64
	config.DB.Model(&models.SensorReading{}).Where("is_abnormal = ?", true).Count(&count)
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetAbnormalHistory returns abnormal sensor readings with their type.
func GetAbnormalHistory(c *gin.Context) {
	var records []models.SensorReading
	if err := config.DB.Where("is_abnormal = ?", true).Order("timestamp desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		response = append(response, map[string]interface{}{
			"timestamp": record.Timestamp.Format("2006-01-02 15:04:05"),
			"type":      utils.GetAbnormalType(record),
		})
	}

	c.JSON(http.StatusOK, response)
}

// DownloadCSV sends sensor data as a CSV file.
func DownloadCSV(c *gin.Context) {
	var records []models.SensorReading
	config.DB.Order("timestamp desc").Find(&records)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=sensor_data.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{
		"timestamp", "soil_moisture", "soil_temperature", "soil_humidity",
		"air_temperature", "air_humidity", "pressure", "rainfall", "ammonia",
	})
	for _, record := range records {
		writer.Write([]string{
			record.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2f", record.SoilMoisture),
			fmt.Sprintf("%.2f", record.SoilTemperature),
			fmt.Sprintf("%.2f", record.SoilHumidity),
			fmt.Sprintf("%.2f", record.AirTemperature),
			fmt.Sprintf("%.2f", record.AirHumidity),
			fmt.Sprintf("%.2f", record.Pressure),
			fmt.Sprintf("%.2f", record.Rainfall),
			fmt.Sprintf("%.2f", record.Ammonia),
		})
	}
}
