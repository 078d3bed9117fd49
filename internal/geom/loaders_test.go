package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoedit/internal/shapes"
)

const collection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "park", "area": 12.5, "open": true, "tags": ["a"]},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[4,0],[4,3],[0,0]]]}},
    {"type": "Feature", "properties": null,
     "geometry": {"type": "MultiLineString", "coordinates": [[[1,1],[2,2]], [[3,3],[5,5,9]]]}},
    {"type": "Feature", "geometry": null},
    {"type": "Feature", "properties": {"name": "pin"},
     "geometry": {"type": "GeometryCollection", "geometries": [{"type": "Point", "coordinates": [7, -1]}]}}
  ]
}`

func TestParseGeoJSON(t *testing.T) {
	d, err := ParseGeoJSON([]byte(collection))
	require.NoError(t, err)

	require.Len(t, d.Features, 4)
	assert.Equal(t, 1, d.Count(Polygon))
	assert.Equal(t, 2, d.Count(Line))
	assert.Equal(t, 1, d.Count(Point))
	assert.Equal(t, BBox{0, -1, 7, 5}, d.BBox)

	park := d.Features[0].Props
	assert.Equal(t, "park", park["name"])
	assert.Equal(t, "12.5", park["area"])
	assert.Equal(t, "true", park["open"])
	assert.Equal(t, `["a"]`, park["tags"])
	assert.Nil(t, d.Features[1].Props)
	assert.Equal(t, "pin", d.Features[3].Props["name"])
}

func TestParseGeoJSONErrors(t *testing.T) {
	for _, in := range []string{
		`not json`,
		`{}`,
		`{"type": "Circle", "coordinates": [1, 2]}`,
		`{"type": "Point", "coordinates": "x"}`,
		`{"type": "FeatureCollection", "features": []}`,
	} {
		_, err := ParseGeoJSON([]byte(in))
		assert.Error(t, err, "input %s", in)
	}
}

func TestParseKML(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
 <Document><Folder>
  <Placemark>
   <name>route</name>
   <ExtendedData><Data name="ref"><value> A1 </value></Data></ExtendedData>
   <LineString><coordinates>0,0,10 1,1 2,0</coordinates></LineString>
  </Placemark>
  <Placemark>
   <name>lake</name>
   <MultiGeometry>
    <Point><coordinates>5,5</coordinates></Point>
    <Polygon>
     <outerBoundaryIs><LinearRing><coordinates>0,0 3,0 3,3 0,0</coordinates></LinearRing></outerBoundaryIs>
     <innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
    </Polygon>
   </MultiGeometry>
  </Placemark>
 </Folder></Document>
</kml>`
	d, err := ParseKML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, d.Features, 3)

	route := d.Features[0]
	assert.Equal(t, Line, route.Kind)
	assert.Equal(t, [][2]float64{{0, 0}, {1, 1}, {2, 0}}, route.Rings[0])
	assert.Equal(t, map[string]string{"name": "route", "ref": "A1"}, route.Props)

	assert.Equal(t, Point, d.Features[1].Kind)
	assert.Equal(t, Polygon, d.Features[2].Kind)
	assert.Len(t, d.Features[2].Rings, 2)
	assert.Equal(t, "lake", d.Features[2].Props["name"])

	_, err = ParseKML(strings.NewReader(`<kml><Document/></kml>`))
	assert.Error(t, err)
}

func TestParseCSV(t *testing.T) {
	d, err := ParseCSV(strings.NewReader("name,Lat,Lon\na,1,2\nb,x,3\nc,4,5\n"))
	require.NoError(t, err)
	require.Len(t, d.Features, 2)
	assert.Equal(t, [2]float64{2, 1}, d.Features[0].Rings[0][0])
	assert.Equal(t, map[string]string{"name": "c"}, d.Features[1].Props)

	d, err = ParseCSV(strings.NewReader("id,wkt\n1,\"LINESTRING (0 0, 1 1)\"\n2,\n"))
	require.NoError(t, err)
	require.Len(t, d.Features, 1)
	assert.Equal(t, Line, d.Features[0].Kind)
	assert.Equal(t, "1", d.Features[0].Props["id"])

	_, err = ParseCSV(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	wkt := filepath.Join(dir, "shape.WKT")
	require.NoError(t, os.WriteFile(wkt, []byte("LINESTRING (0 0, 1 1)"), 0o644))

	d, err := Load(wkt)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Count(Line))

	_, err = Load(filepath.Join(dir, "shape.shp"))
	assert.Error(t, err)
	assert.True(t, Supported(".GeoJSON"))
	assert.False(t, Supported(".shp"))
}

func TestShapes(t *testing.T) {
	d, err := ParseWKT("POLYGON ((0 0, 4 0, 4 3, 0 0))\nLINESTRING (1 1, 2 2)")
	require.NoError(t, err)
	d.Features[1].Props = map[string]string{"name": "l", KindAttr: "ignored"}

	rows := d.Shapes(shapes.Fields{X: "xs", Y: "ys"})
	require.Len(t, rows, 2)
	assert.Equal(t, []float64{0, 4, 4}, rows[0].Seqs["xs"], "closing vertex dropped")
	assert.Equal(t, []float64{0, 0, 3}, rows[0].Seqs["ys"])
	assert.Equal(t, "polygon", rows[0].Attrs[KindAttr])
	assert.Equal(t, map[string]string{KindAttr: "line", "name": "l"}, rows[1].Attrs)

	s := shapes.NewStore()
	s.Reset(rows, "")
	xs, ys, ok := s.Coords(1, shapes.Fields{X: "xs", Y: "ys"})
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, xs)
	assert.Equal(t, []float64{1, 2}, ys)

	rows = d.Shapes(shapes.Fields{Y: "lat"})
	_, hasX := rows[0].Seqs["xs"]
	assert.False(t, hasX)
	assert.Equal(t, []float64{0, 0, 3}, rows[0].Seqs["lat"])
}

func TestBBoxPad(t *testing.T) {
	b := BBox{1, 2, 1, 5}.Pad(0.5)
	assert.Equal(t, BBox{0.5, 2, 1.5, 5}, b)
	assert.True(t, b.Valid())
	assert.False(t, BBox{}.Valid())
}
