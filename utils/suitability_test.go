package utils

import (
	"strings"
	"testing"

	"smartfarm/models"
)

func band(min, max float64) models.Range {
	return models.Range{Min: min, Max: max}
}

func TestParameterScore(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		band  models.Range
		want  float64
	}{
		{"midpoint scores 100", 50, band(40, 60), 100},
		{"lower edge scores 80", 40, band(40, 60), 80},
		{"upper edge scores 80", 60, band(40, 60), 80},
		{"halfway inside scores 90", 45, band(40, 60), 90},
		{"ten below min scores 50", 30, band(40, 60), 50},
		{"far below floors at 20", 10, band(40, 60), 20},
		{"far above floors at 20", 95, band(40, 60), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parameterScore(tt.value, tt.band)
			if got != tt.want {
				t.Errorf("parameterScore(%v, %v) = %v, want %v", tt.value, tt.band, got, tt.want)
			}
		})
	}
}

func idealProfile(name string) models.CropProfile {
	return models.CropProfile{
		Name:            name,
		SoilMoisture:    band(40, 60),
		SoilTemperature: band(15, 25),
		AirTemperature:  band(20, 30),
		AirHumidity:     band(50, 70),
	}
}

// idealReading sits exactly at the midpoint of every idealProfile band.
func idealReading() models.SensorReading {
	return models.SensorReading{
		SoilMoisture:    50,
		SoilTemperature: 20,
		AirTemperature:  25,
		AirHumidity:     60,
	}
}

func TestSuitabilityScorePerfectMatch(t *testing.T) {
	score := SuitabilityScore(idealReading(), idealProfile("Test"))
	if score != 100 {
		t.Errorf("score at all midpoints = %d, want 100", score)
	}
}

func TestSuitabilityScoreAllEdges(t *testing.T) {
	reading := models.SensorReading{
		SoilMoisture:    40,
		SoilTemperature: 15,
		AirTemperature:  20,
		AirHumidity:     50,
	}
	score := SuitabilityScore(reading, idealProfile("Test"))
	if score != 80 {
		t.Errorf("score at all band edges = %d, want 80", score)
	}
}

func TestSuitabilityScoreBounds(t *testing.T) {
	readings := []models.SensorReading{
		{SoilMoisture: 0, SoilTemperature: -40, AirTemperature: 60, AirHumidity: 0},
		{SoilMoisture: 100, SoilTemperature: 50, AirTemperature: -10, AirHumidity: 100},
		idealReading(),
	}
	for _, reading := range readings {
		score := SuitabilityScore(reading, idealProfile("Test"))
		if score < 20 || score > 100 {
			t.Errorf("score %d out of [20, 100] for reading %+v", score, reading)
		}
	}
}

func TestRankCropsStableOrder(t *testing.T) {
	p1 := idealProfile("P1")
	p2 := idealProfile("P2")
	p3 := idealProfile("P3")
	// Push P3 well away from the reading on two parameters.
	p3.SoilMoisture = band(80, 95)
	p3.AirHumidity = band(85, 95)

	recs := RankCrops(idealReading(), []models.CropProfile{p3, p1, p2})
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}

	// P1 and P2 tie on score; the profile table's order breaks the tie.
	if recs[0].Crop != "P1" || recs[1].Crop != "P2" || recs[2].Crop != "P3" {
		t.Errorf("ranking = [%s, %s, %s], want [P1, P2, P3]",
			recs[0].Crop, recs[1].Crop, recs[2].Crop)
	}
	if recs[0].Score != recs[1].Score {
		t.Errorf("P1 and P2 scores differ: %d vs %d", recs[0].Score, recs[1].Score)
	}
	if recs[2].Score >= recs[0].Score {
		t.Errorf("P3 score %d not below P1 score %d", recs[2].Score, recs[0].Score)
	}
}

func TestAdviceWording(t *testing.T) {
	t.Run("high score is positive", func(t *testing.T) {
		recs := RankCrops(idealReading(), []models.CropProfile{idealProfile("Rice")})
		if recs[0].Score < 80 {
			t.Fatalf("expected score >= 80, got %d", recs[0].Score)
		}
		if !strings.Contains(recs[0].Advice, "Rice") || !strings.Contains(recs[0].Advice, "well suited") {
			t.Errorf("unexpected advice: %q", recs[0].Advice)
		}
	})

	t.Run("mid score cites the off parameter and direction", func(t *testing.T) {
		reading := idealReading()
		reading.SoilMoisture = 28 // 12 below min, sub-score 40
		reading.AirHumidity = 38  // 12 below min, sub-score 40
		recs := RankCrops(reading, []models.CropProfile{idealProfile("Wheat")})
		if recs[0].Score < 60 || recs[0].Score >= 80 {
			t.Fatalf("expected score in [60, 80), got %d", recs[0].Score)
		}
		if !strings.Contains(recs[0].Advice, "soil moisture") || !strings.Contains(recs[0].Advice, "too dry") {
			t.Errorf("advice should cite dry soil moisture: %q", recs[0].Advice)
		}
	})

	t.Run("low score warns about the most limiting parameter", func(t *testing.T) {
		reading := models.SensorReading{
			SoilMoisture:    95,
			SoilTemperature: 45,
			AirTemperature:  48,
			AirHumidity:     98,
		}
		recs := RankCrops(reading, []models.CropProfile{idealProfile("Potato")})
		if recs[0].Score >= 60 {
			t.Fatalf("expected score < 60, got %d", recs[0].Score)
		}
		if !strings.Contains(recs[0].Advice, "Poor conditions") {
			t.Errorf("unexpected advice: %q", recs[0].Advice)
		}
	})

	t.Run("hot direction for temperature", func(t *testing.T) {
		reading := idealReading()
		reading.AirTemperature = 44 // 14 above max, sub-score 30
		reading.SoilTemperature = 37
		recs := RankCrops(reading, []models.CropProfile{idealProfile("Maize")})
		if !strings.Contains(recs[0].Advice, "too hot") {
			t.Errorf("advice should say too hot: %q", recs[0].Advice)
		}
	})
}
