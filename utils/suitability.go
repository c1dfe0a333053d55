package utils

import (
	"fmt"
	"math"
	"sort"

	"smartfarm/models"
)

// Suitability scoring: every parameter scores 100 at the middle of the
// crop's ideal band, 80 at either edge, and loses 5 points per unit of
// distance outside it, floored at 20. The crop score is the rounded
// mean over soil moisture, soil temperature, air temperature and air
// humidity.
const (
	scoreFloor     = 20.0
	scoreCeil      = 100.0
	inBandPenalty  = 20.0
	outOfBandSlope = 5.0
	maxOutPenalty  = 80.0
)

// parameterKind drives advice wording: moisture-like parameters are
// dry/wet, temperature-like parameters are cold/hot.
type parameterKind int

const (
	kindMoisture parameterKind = iota
	kindTemperature
)

type parameterCheck struct {
	Name  string
	Kind  parameterKind
	Value float64
	Band  models.Range
	Score float64
}

// Deviation returns how far the value sits outside the band, zero when
// inside.
func (p parameterCheck) Deviation() float64 {
	if p.Value < p.Band.Min {
		return p.Band.Min - p.Value
	}
	if p.Value > p.Band.Max {
		return p.Value - p.Band.Max
	}
	return 0
}

// Direction returns the advice wording for which way the parameter is off.
func (p parameterCheck) Direction() string {
	high := p.Value > p.Band.Max
	if p.Kind == kindTemperature {
		if high {
			return "too hot"
		}
		return "too cold"
	}
	if high {
		return "too wet"
	}
	return "too dry"
}

func parameterScore(value float64, band models.Range) float64 {
	if band.Contains(value) {
		half := (band.Max - band.Min) / 2
		return scoreCeil - math.Abs(value-band.Mid())/half*inBandPenalty
	}
	var distance float64
	if value < band.Min {
		distance = band.Min - value
	} else {
		distance = value - band.Max
	}
	score := scoreCeil - math.Min(distance*outOfBandSlope, maxOutPenalty)
	return math.Max(score, scoreFloor)
}

func checkParameters(reading models.SensorReading, profile models.CropProfile) []parameterCheck {
	checks := []parameterCheck{
		{Name: "soil moisture", Kind: kindMoisture, Value: reading.SoilMoisture, Band: profile.SoilMoisture},
		{Name: "soil temperature", Kind: kindTemperature, Value: reading.SoilTemperature, Band: profile.SoilTemperature},
		{Name: "air temperature", Kind: kindTemperature, Value: reading.AirTemperature, Band: profile.AirTemperature},
		{Name: "air humidity", Kind: kindMoisture, Value: reading.AirHumidity, Band: profile.AirHumidity},
	}
	for i := range checks {
		checks[i].Score = parameterScore(checks[i].Value, checks[i].Band)
	}
	return checks
}

// SuitabilityScore computes the 0-100 suitability of current conditions
// for one crop. The result is always within [20, 100].
func SuitabilityScore(reading models.SensorReading, profile models.CropProfile) int {
	checks := checkParameters(reading, profile)
	var sum float64
	for _, c := range checks {
		sum += c.Score
	}
	score := math.Round(sum / float64(len(checks)))
	score = math.Max(scoreFloor, math.Min(scoreCeil, score))
	return int(score)
}

// RankCrops scores every profile against the reading and returns
// recommendations sorted by score, best first. Ties keep the profile
// table's order.
func RankCrops(reading models.SensorReading, profiles []models.CropProfile) []models.CropRecommendation {
	recs := make([]models.CropRecommendation, 0, len(profiles))
	for _, p := range profiles {
		checks := checkParameters(reading, p)
		var sum float64
		worst := checks[0]
		for _, c := range checks {
			sum += c.Score
			if c.Score < worst.Score {
				worst = c
			}
		}
		score := int(math.Max(scoreFloor, math.Min(scoreCeil, math.Round(sum/float64(len(checks))))))
		recs = append(recs, models.CropRecommendation{
			Crop:   p.Name,
			Score:  score,
			Advice: adviceFor(p.Name, score, worst),
			Season: p.Season,
			Yield:  p.Yield,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	return recs
}

// adviceFor phrases the recommendation. Any score below 80 implies at
// least one parameter sits outside its band, so worst carries a real
// deviation and direction in the lower branches.
func adviceFor(crop string, score int, worst parameterCheck) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("Conditions are well suited for %s. Keep the current regime going.", crop)
	case score >= 60:
		return fmt.Sprintf("%s is workable, but %s is %s (%.1f outside the ideal range). Correct it before planting.",
			crop, worst.Name, worst.Direction(), worst.Deviation())
	default:
		return fmt.Sprintf("Poor conditions for %s: %s is %s by %.1f. Planting now risks crop failure.",
			crop, worst.Name, worst.Direction(), worst.Deviation())
	}
}
