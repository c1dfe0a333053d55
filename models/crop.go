package models

// Range is an inclusive [Min, Max] band of acceptable values for one
// growing parameter.
type Range struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// CropProfile is static reference data describing the ideal growing
// conditions for one crop plus display metadata for the dashboard.
// Profiles are loaded from configuration, never edited at runtime.
type CropProfile struct {
	Name            string `json:"name" mapstructure:"name"`
	SoilMoisture    Range  `json:"soil_moisture" mapstructure:"soil_moisture"`
	SoilTemperature Range  `json:"soil_temperature" mapstructure:"soil_temperature"`
	AirTemperature  Range  `json:"air_temperature" mapstructure:"air_temperature"`
	AirHumidity     Range  `json:"air_humidity" mapstructure:"air_humidity"`
	Season          string `json:"season" mapstructure:"season"`
	Yield           string `json:"yield" mapstructure:"yield"`
	Care            string `json:"care" mapstructure:"care"`
}

// CropRecommendation is a derived, per-request projection: how suitable
// current conditions are for one crop. Not persisted as authoritative data.
type CropRecommendation struct {
	Crop   string `json:"crop"`
	Score  int    `json:"suitability_score"`
	Advice string `json:"advice"`
	Season string `json:"season"`
	Yield  string `json:"yield"`
}
