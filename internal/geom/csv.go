package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a CSV file. A wkt/geometry column is parsed as WKT;
// otherwise latitude and longitude columns (lat|latitude|y and
// lon|lng|long|longitude|x, case-insensitive) give one point per row.
// All other columns become attributes.
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ParseCSV(f)
}

func ParseCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) == 0 {
		return Data{}, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon, idxWKT := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "wkt", "geometry", "geom", "the_geom":
			if idxWKT == -1 {
				idxWKT = i
			}
		}
	}
	if idxWKT == -1 && (idxLat == -1 || idxLon == -1) {
		return Data{}, errors.New("csv: latitude/longitude columns not found")
	}

	var d Data
	for n, row := range recs[1:] {
		props := make(map[string]string, len(header))
		for i, h := range header {
			if i == idxLat || i == idxLon || i == idxWKT || i >= len(row) {
				continue
			}
			props[h] = row[i]
		}
		if idxWKT >= 0 {
			if idxWKT >= len(row) || strings.TrimSpace(row[idxWKT]) == "" {
				continue
			}
			g, err := ParseWKT(row[idxWKT])
			if err != nil {
				return Data{}, fmt.Errorf("csv row %d: %w", n+2, err)
			}
			for _, f := range g.Features {
				f.Props = props
				d.Add(f)
			}
			continue
		}
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		d.Add(Feature{Kind: Point, Rings: [][][2]float64{{{lon, lat}}}, Props: props})
	}
	if len(d.Features) == 0 {
		return Data{}, errors.New("csv: no valid geometries parsed")
	}
	return d, nil
}
