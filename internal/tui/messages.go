package tui

import "github.com/jask/citycoords/internal/geocoding"

type geocodeDoneMsg struct {
	query     string
	locations []geocoding.Location
	err       error
}

type airQualityDoneMsg struct {
	lat, lon float64
	reading  *geocoding.AirQuality
	err      error
}
