package habitat

// SolarBody names the body a habitat orbits or sits on. The name keys the
// solar-output modifier table.
type SolarBody string

const (
	EarthLEO             SolarBody = "Earth (LEO)"
	Mercury              SolarBody = "Mercury"
	Venus                SolarBody = "Venus"
	EarthLuna            SolarBody = "Earth / Luna"
	InnerSystemAsteroids SolarBody = "Inner System Asteroids"
	Mars                 SolarBody = "Mars"
	InnerBeltAsteroids   SolarBody = "Inner Belt Asteroids"
	MiddleBeltAsteroids  SolarBody = "Middle Belt Asteroids"
	OuterBeltAsteroids   SolarBody = "Outer Belt Asteroids"
	OuterSystemBodies    SolarBody = "Outer System Bodies"
)

// SolarBodies is the selectable body list, innermost first
var SolarBodies = []SolarBody{
	EarthLEO,
	Mercury,
	Venus,
	EarthLuna,
	InnerSystemAsteroids,
	Mars,
	InnerBeltAsteroids,
	MiddleBeltAsteroids,
	OuterBeltAsteroids,
	OuterSystemBodies,
}

// HabitatType distinguishes orbital stations from surface bases
type HabitatType string

const (
	Station HabitatType = "station"
	Base    HabitatType = "base"
)

// HabType returns the catalog habType tag matching this habitat type
func (t HabitatType) HabType() string {
	switch t {
	case Station:
		return "Station"
	case Base:
		return "Base"
	}
	return ""
}

// IsValid reports whether t is a known habitat type
func (t HabitatType) IsValid() bool {
	return t == Station || t == Base
}

// HabitatTypeFromHabType maps a catalog habType tag back to a habitat type
func HabitatTypeFromHabType(habType string) (HabitatType, bool) {
	switch habType {
	case "Station":
		return Station, true
	case "Base":
		return Base, true
	}
	return "", false
}
