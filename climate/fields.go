// Package climate defines the climate and environmental input schema for the
// biodiversity impact network: field order, domain ranges, defaults and presets.
package climate

// Field identifies one input variable. Fields are ordered; the first
// NumConsumed fields feed the network input layer.
type Field int

const (
	TemperatureChange Field = iota
	PrecipitationChange
	CO2Levels
	OceanAcidification
	SeaLevelRise
	ForestCover
	AgriculturalLand
	UrbanExpansion
	PollutionIndex
	HabitatFragmentation
	InvasiveSpecies

	NumFields
)

// NumConsumed is the number of fields read by the network input layer.
// InvasiveSpecies is collected but sits outside this prefix.
const NumConsumed = 10

// FieldSpec describes a single input variable.
type FieldSpec struct {
	Name        string  // camelCase key used in maps, presets and config
	Label       string  // Display label
	Unit        string  // Display unit
	Description string  // One-line description
	Min         float64 // Lower domain bound
	Max         float64 // Upper domain bound
	Default     float64 // Baseline value
}

// specs is indexed by Field.
var specs = [NumFields]FieldSpec{
	{Name: "temperatureChange", Label: "Temperature", Unit: "°C", Min: -2, Max: 4, Default: 0,
		Description: "Change in average temperature relative to baseline"},
	{Name: "precipitationChange", Label: "Precipitation", Unit: "%", Min: -30, Max: 30, Default: 0,
		Description: "Percentage change in annual precipitation"},
	{Name: "co2Levels", Label: "CO2", Unit: "ppm", Min: 400, Max: 800, Default: 400,
		Description: "Atmospheric CO2 concentration"},
	{Name: "oceanAcidification", Label: "Ocean pH", Unit: "pH units", Min: -0.5, Max: 1.0, Default: 0,
		Description: "Change in ocean pH levels"},
	{Name: "seaLevelRise", Label: "Sea level", Unit: "m", Min: -0.5, Max: 1.0, Default: 0,
		Description: "Change in sea level relative to baseline"},
	{Name: "forestCover", Label: "Forest", Unit: "%", Min: 0, Max: 100, Default: 100,
		Description: "Percentage of forest cover"},
	{Name: "agriculturalLand", Label: "Agriculture", Unit: "%", Min: 0, Max: 100, Default: 50,
		Description: "Percentage of agricultural land use"},
	{Name: "urbanExpansion", Label: "Urban", Unit: "%", Min: 0, Max: 100, Default: 0,
		Description: "Percentage of urban expansion"},
	{Name: "pollutionIndex", Label: "Pollution", Unit: "index", Min: -0.5, Max: 1.0, Default: 0,
		Description: "Environmental pollution index"},
	{Name: "habitatFragmentation", Label: "Fragmentation", Unit: "index", Min: -0.5, Max: 1.0, Default: 0,
		Description: "Habitat fragmentation index"},
	{Name: "invasiveSpecies", Label: "Invasive", Unit: "index", Min: 0, Max: 1.0, Default: 0,
		Description: "Invasive species pressure index"},
}

var byName = func() map[string]Field {
	m := make(map[string]Field, NumFields)
	for i, s := range specs {
		m[s.Name] = Field(i)
	}
	return m
}()

// Spec returns the descriptor for f.
func (f Field) Spec() FieldSpec {
	return specs[f]
}

// String returns the camelCase field name.
func (f Field) String() string {
	if f < 0 || f >= NumFields {
		return "unknown"
	}
	return specs[f].Name
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool {
	return f >= 0 && f < NumFields
}

// Consumed reports whether the network input layer reads f.
func (f Field) Consumed() bool {
	return f >= 0 && f < NumConsumed
}

// Clamp restricts v to the field's domain.
func (f Field) Clamp(v float64) float64 {
	s := specs[f]
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Fields returns all fields in schema order.
func Fields() []Field {
	out := make([]Field, NumFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Lookup finds a field by its camelCase name.
func Lookup(name string) (Field, bool) {
	f, ok := byName[name]
	return f, ok
}
