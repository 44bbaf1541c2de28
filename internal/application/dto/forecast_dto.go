package dto

// VolumeForecastRecord punto pronosticado de volumen en rublos.
type VolumeForecastRecord struct {
	Dt         string  `json:"dt"`
	SumPrice   float64 `json:"sum_price"`
	RegionCode string  `json:"region_code"`
}

// CountForecastRecord punto pronosticado de unidades vendidas.
type CountForecastRecord struct {
	Dt         string  `json:"dt"`
	Cnt        float64 `json:"cnt"`
	RegionCode string  `json:"region_code"`
}
