package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseWKT parses one or more WKT geometries separated by whitespace,
// newlines or semicolons. Supported: POINT, MULTIPOINT, LINESTRING,
// MULTILINESTRING, POLYGON, MULTIPOLYGON. Z/M ordinates are ignored.
func ParseWKT(src string) (Data, error) {
	var d Data
	s := strings.TrimSpace(src)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	for s != "" {
		tag, body, rest, err := cutGeometry(s)
		if err != nil {
			return Data{}, err
		}
		if err := d.addWKT(tag, body); err != nil {
			return Data{}, fmt.Errorf("wkt %s: %w", strings.ToLower(tag), err)
		}
		s = strings.TrimLeft(rest, " \t\r\n;")
	}
	if len(d.Features) == 0 {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}

// cutGeometry splits the leading "TAG [Z|M|ZM] (...)" off s. body is the
// text inside the outermost parentheses; an EMPTY geometry has no body.
func cutGeometry(s string) (tag, body, rest string, err error) {
	open := strings.IndexByte(s, '(')
	headEnd := open
	if open < 0 {
		headEnd = len(s)
	}
	head := strings.Fields(strings.ToUpper(s[:headEnd]))
	if len(head) == 0 {
		return "", "", "", errors.New("wkt: missing geometry type")
	}
	if len(head) > 1 && head[1] == "EMPTY" {
		i := strings.Index(strings.ToUpper(s), "EMPTY") + len("EMPTY")
		return head[0], "", s[i:], nil
	}
	if open < 0 {
		return "", "", "", fmt.Errorf("wkt: missing coordinates in %q", s)
	}
	if len(head) > 2 || (len(head) == 2 && head[1] != "Z" && head[1] != "M" && head[1] != "ZM") {
		return "", "", "", fmt.Errorf("wkt: unexpected %q", strings.Join(head, " "))
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return head[0], s[open+1 : i], s[i+1:], nil
			}
		}
	}
	return "", "", "", fmt.Errorf("wkt %s: unbalanced parentheses", strings.ToLower(head[0]))
}

func (d *Data) addWKT(tag, body string) error {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	switch tag {
	case "POINT", "MULTIPOINT":
		pts, err := tuples(strings.NewReplacer("(", " ", ")", " ").Replace(body))
		if err != nil {
			return err
		}
		for _, p := range pts {
			d.Add(Feature{Kind: Point, Rings: [][][2]float64{{p}}})
		}
	case "LINESTRING":
		ls, err := tuples(body)
		if err != nil {
			return err
		}
		d.Add(Feature{Kind: Line, Rings: [][][2]float64{ls}})
	case "MULTILINESTRING":
		parts, err := groups(body)
		if err != nil {
			return err
		}
		for _, part := range parts {
			ls, err := tuples(part)
			if err != nil {
				return err
			}
			d.Add(Feature{Kind: Line, Rings: [][][2]float64{ls}})
		}
	case "POLYGON":
		rings, err := polygon(body)
		if err != nil {
			return err
		}
		d.Add(Feature{Kind: Polygon, Rings: rings})
	case "MULTIPOLYGON":
		polys, err := groups(body)
		if err != nil {
			return err
		}
		for _, p := range polys {
			rings, err := polygon(p)
			if err != nil {
				return err
			}
			d.Add(Feature{Kind: Polygon, Rings: rings})
		}
	default:
		return errors.New("unsupported wkt type")
	}
	return nil
}

func polygon(body string) ([][][2]float64, error) {
	parts, err := groups(body)
	if err != nil {
		return nil, err
	}
	rings := make([][][2]float64, 0, len(parts))
	for _, part := range parts {
		r, err := tuples(part)
		if err != nil {
			return nil, err
		}
		rings = append(rings, r)
	}
	return rings, nil
}

// groups returns the contents of each top-level parenthesized group.
func groups(body string) ([]string, error) {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced parentheses")
			}
			if depth == 0 {
				out = append(out, body[start:i])
			}
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced parentheses")
	}
	if len(out) == 0 {
		return nil, errors.New("expected parenthesized groups")
	}
	return out, nil
}

// tuples parses "x y[ z[ m]], ..." into coordinate pairs.
func tuples(block string) ([][2]float64, error) {
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(tup)
		if len(parts) == 0 {
			continue
		}
		if len(parts) < 2 {
			return nil, fmt.Errorf("bad coordinate %q", strings.TrimSpace(tup))
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("bad coordinate %q", strings.TrimSpace(tup))
		}
		out = append(out, [2]float64{x, y})
	}
	return out, nil
}
