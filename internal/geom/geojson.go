package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

type geoJSON struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometry    *geoJSON        `json:"geometry"`
	Geometries  []geoJSON       `json:"geometries"`
	Features    []geoJSON       `json:"features"`
	Properties  map[string]any  `json:"properties"`
}

// LoadGeoJSON reads a GeoJSON file: a FeatureCollection, a Feature or a
// bare geometry. Feature properties become string attributes.
func LoadGeoJSON(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeoJSON(b)
}

func ParseGeoJSON(b []byte) (Data, error) {
	var raw geoJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return Data{}, err
	}
	if raw.Type == "" {
		return Data{}, errors.New("invalid geojson: missing type")
	}
	var d Data
	if err := d.walkGeoJSON(raw, nil); err != nil {
		return Data{}, err
	}
	if len(d.Features) == 0 {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}

func (d *Data) walkGeoJSON(g geoJSON, props map[string]string) error {
	switch g.Type {
	case "FeatureCollection":
		for _, f := range g.Features {
			if err := d.walkGeoJSON(f, nil); err != nil {
				return err
			}
		}
		return nil
	case "Feature":
		if g.Geometry == nil {
			return nil
		}
		return d.walkGeoJSON(*g.Geometry, stringProps(g.Properties))
	case "GeometryCollection":
		for _, c := range g.Geometries {
			if err := d.walkGeoJSON(c, props); err != nil {
				return err
			}
		}
		return nil
	}

	if len(g.Coordinates) == 0 || string(g.Coordinates) == "null" {
		return nil
	}
	var err error
	switch g.Type {
	case "Point":
		var c []float64
		if err = json.Unmarshal(g.Coordinates, &c); err == nil {
			d.Add(Feature{Kind: Point, Rings: [][][2]float64{pairs([][]float64{c})}, Props: props})
		}
	case "MultiPoint":
		var c [][]float64
		if err = json.Unmarshal(g.Coordinates, &c); err == nil {
			for _, p := range pairs(c) {
				d.Add(Feature{Kind: Point, Rings: [][][2]float64{{p}}, Props: props})
			}
		}
	case "LineString":
		var c [][]float64
		if err = json.Unmarshal(g.Coordinates, &c); err == nil {
			d.Add(Feature{Kind: Line, Rings: [][][2]float64{pairs(c)}, Props: props})
		}
	case "MultiLineString":
		var c [][][]float64
		if err = json.Unmarshal(g.Coordinates, &c); err == nil {
			for _, ls := range c {
				d.Add(Feature{Kind: Line, Rings: [][][2]float64{pairs(ls)}, Props: props})
			}
		}
	case "Polygon":
		var c [][][]float64
		if err = json.Unmarshal(g.Coordinates, &c); err == nil {
			d.Add(Feature{Kind: Polygon, Rings: rings(c), Props: props})
		}
	case "MultiPolygon":
		var c [][][][]float64
		if err = json.Unmarshal(g.Coordinates, &c); err == nil {
			for _, poly := range c {
				d.Add(Feature{Kind: Polygon, Rings: rings(poly), Props: props})
			}
		}
	default:
		return errors.New("unsupported geojson type: " + g.Type)
	}
	if err != nil {
		return fmt.Errorf("geojson %s: %w", g.Type, err)
	}
	return nil
}

// pairs keeps the first two ordinates of every position; shorter
// positions are skipped.
func pairs(c [][]float64) [][2]float64 {
	out := make([][2]float64, 0, len(c))
	for _, p := range c {
		if len(p) >= 2 {
			out = append(out, [2]float64{p[0], p[1]})
		}
	}
	return out
}

func rings(c [][][]float64) [][][2]float64 {
	out := make([][][2]float64, 0, len(c))
	for _, r := range c {
		out = append(out, pairs(r))
	}
	if len(out) > 0 && len(out[0]) == 0 {
		return nil
	}
	return out
}

func stringProps(pm map[string]any) map[string]string {
	if len(pm) == 0 {
		return nil
	}
	out := make(map[string]string, len(pm))
	for k, v := range pm {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'g', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			bs, _ := json.Marshal(t)
			out[k] = string(bs)
		}
	}
	return out
}
