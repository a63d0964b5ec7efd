package model

import "encoding/json"

// OpenWeatherMapResponse is the subset of /data/2.5/weather this tool reads.
// Fields are pointers so a missing field can be told apart from a zero value.
type OpenWeatherMapResponse struct {
	Name *string `json:"name"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Pressure *float64 `json:"pressure"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		ID          int     `json:"id"`
		Main        string  `json:"main"`
		Description *string `json:"description"`
		Icon        string  `json:"icon"`
	} `json:"weather"`
}

// OpenWeatherMapError is the body OpenWeatherMap sends with a non-2xx status.
type OpenWeatherMapError struct {
	Cod     Code   `json:"cod"`
	Message string `json:"message"`
}

// Code is the "cod" field, which the API sends as a string or a number.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}
