package geocoding

import "time"

// Location is one candidate from the direct geocoding endpoint.
// Lat and Lon are pointers so a record with every field missing stays
// distinguishable from a real match at 0,0.
type Location struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names,omitempty"`
	State      string            `json:"state,omitempty"`
	Country    string            `json:"country"`
	Lat        *float64          `json:"lat"`
	Lon        *float64          `json:"lon"`
}

// HasCoordinates reports whether both lat and lon were returned.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Lat != nil && l.Lon != nil
}

// AirQuality is the current air pollution reading for a coordinate.
type AirQuality struct {
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	AQI        int        `json:"aqi"`
	Components Components `json:"components"`
	Time       time.Time  `json:"time"`
}

// Components holds pollutant concentrations in μg/m3.
type Components struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

// AQILabel maps the 1-5 OpenWeatherMap index to its name.
func AQILabel(aqi int) string {
	switch aqi {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	case 5:
		return "Very Poor"
	default:
		return "Unknown"
	}
}

// airPollutionResponse mirrors /data/2.5/air_pollution.
type airPollutionResponse struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components Components `json:"components"`
		Dt         int64      `json:"dt"`
	} `json:"list"`
}
