package plan

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Number is a lenient numeric field. Producers emit numbers, numeric strings
// or null for the same field; anything that is not numeric decodes to zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*n = 0
		return nil
	}
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// Float returns the value as float64.
func (n Number) Float() float64 { return float64(n) }

// Int returns the value rounded to the nearest integer.
func (n Number) Int() int { return int(math.Round(float64(n))) }

// Ratio is a lenient fraction such as a reliability score. Besides the
// forms Number accepts it takes percentages: "95%" and 95 both decode to 0.95.
type Ratio float64

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*r = 0
		return nil
	}
	percent := false
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if trimmed, found := strings.CutSuffix(s, "%"); found {
			s = strings.TrimSpace(trimmed)
			percent = true
		}
		raw = s
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		*r = 0
		return nil
	}
	if percent || f > 1 {
		f /= 100
	}
	*r = Ratio(math.Min(f, 1))
	return nil
}

// Float returns the value as float64.
func (r Ratio) Float() float64 { return float64(r) }

// StringList accepts either a JSON array or a single scalar.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	switch v := raw.(type) {
	case nil:
		*l = nil
	case []any:
		out := make(StringList, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, cast.ToString(item))
		}
		*l = out
	default:
		s := cast.ToString(v)
		if s == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
	}
	return nil
}

// Join joins the list with sep.
func (l StringList) Join(sep string) string { return strings.Join(l, sep) }

// Coordinate is a geographic position. It decodes from either a
// [lon, lat] pair or a named record {x: lat, y: lon} ({lat, lon} is also
// accepted). Anything else, including out-of-range values, leaves it unresolved.
type Coordinate struct {
	Lon   float64
	Lat   float64
	Valid bool
}

// NewCoordinate returns a resolved coordinate.
func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{Lon: lon, Lat: lat, Valid: validLonLat(lon, lat)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	*c = Coordinate{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case []any:
		if len(v) < 2 {
			return nil
		}
		lon, errLon := cast.ToFloat64E(v[0])
		lat, errLat := cast.ToFloat64E(v[1])
		if errLon != nil || errLat != nil {
			return nil
		}
		*c = NewCoordinate(lon, lat)
	case map[string]any:
		lat, lon, ok := namedLatLon(v)
		if !ok {
			return nil
		}
		*c = NewCoordinate(lon, lat)
	}
	return nil
}

// MarshalJSON renders a resolved coordinate as [lon, lat] and an unresolved one as null.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

func namedLatLon(m map[string]any) (lat, lon float64, ok bool) {
	for _, keys := range [][2]string{{"x", "y"}, {"lat", "lon"}, {"lat", "lng"}} {
		rawLat, hasLat := m[keys[0]]
		rawLon, hasLon := m[keys[1]]
		if !hasLat || !hasLon || rawLat == nil || rawLon == nil {
			continue
		}
		var errLat, errLon error
		lat, errLat = cast.ToFloat64E(rawLat)
		lon, errLon = cast.ToFloat64E(rawLon)
		if errLat == nil && errLon == nil {
			return lat, lon, true
		}
	}
	return 0, 0, false
}

func validLonLat(lon, lat float64) bool {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
