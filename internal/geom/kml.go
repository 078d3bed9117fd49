package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlGeometry struct {
	Points   []kmlCoords   `xml:"Point"`
	Lines    []kmlCoords   `xml:"LineString"`
	Polygons []kmlPolygon  `xml:"Polygon"`
	Multi    []kmlGeometry `xml:"MultiGeometry"`
}

type kmlPlacemark struct {
	Name string `xml:"name"`
	kmlGeometry
	Data []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:"value"`
	} `xml:"ExtendedData>Data"`
}

// LoadKML reads every Placemark in a KML file, however deeply it is
// nested in Document and Folder elements.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ParseKML(f)
}

func ParseKML(r io.Reader) (Data, error) {
	var d Data
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Data{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Data{}, err
		}
		props := map[string]string{}
		if pm.Name != "" {
			props["name"] = pm.Name
		}
		for _, kv := range pm.Data {
			props[kv.Name] = strings.TrimSpace(kv.Value)
		}
		if err := d.addKML(pm.kmlGeometry, props); err != nil {
			return Data{}, fmt.Errorf("kml placemark %q: %w", pm.Name, err)
		}
	}
	if len(d.Features) == 0 {
		return Data{}, errors.New("kml: no geometries found")
	}
	return d, nil
}

func (d *Data) addKML(g kmlGeometry, props map[string]string) error {
	for _, p := range g.Points {
		pts, err := kmlTuples(p.Coordinates)
		if err != nil {
			return err
		}
		for _, pt := range pts {
			d.Add(Feature{Kind: Point, Rings: [][][2]float64{{pt}}, Props: props})
		}
	}
	for _, l := range g.Lines {
		ls, err := kmlTuples(l.Coordinates)
		if err != nil {
			return err
		}
		d.Add(Feature{Kind: Line, Rings: [][][2]float64{ls}, Props: props})
	}
	for _, poly := range g.Polygons {
		outer, err := kmlTuples(poly.Outer.Coordinates)
		if err != nil {
			return err
		}
		rs := [][][2]float64{outer}
		for _, in := range poly.Inner {
			hole, err := kmlTuples(in.Coordinates)
			if err != nil {
				return err
			}
			rs = append(rs, hole)
		}
		d.Add(Feature{Kind: Polygon, Rings: rs, Props: props})
	}
	for _, m := range g.Multi {
		if err := d.addKML(m, props); err != nil {
			return err
		}
	}
	return nil
}

// kmlTuples parses whitespace separated "lon,lat[,alt]" tuples.
func kmlTuples(s string) ([][2]float64, error) {
	var out [][2]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			return nil, fmt.Errorf("bad coordinate %q", tuple)
		}
		lon, err1 := strconv.ParseFloat(vals[0], 64)
		lat, err2 := strconv.ParseFloat(vals[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("bad coordinate %q", tuple)
		}
		out = append(out, [2]float64{lon, lat})
	}
	return out, nil
}
