package model

// WeatherReport is one current-conditions lookup, discarded after display.
type WeatherReport struct {
	Location    string
	Description string
	Temperature float64
	Humidity    float64
	Pressure    float64
	WindSpeed   float64
}
