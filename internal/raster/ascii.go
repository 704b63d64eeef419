package raster

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ASCIIGrid is a grid together with the georeferencing header of the
// Esri ASCII raster format.
type ASCIIGrid struct {
	Grid     *Grid
	XCorner  float64
	YCorner  float64
	CellSize float64
}

// ReadASCII loads an Esri ASCII raster file.
// Header keys (ncols, nrows, xllcorner, yllcorner, cellsize, nodata_value)
// may appear in any order; nodata_value is optional and defaults to -9999.
func ReadASCII(path string) (*ASCIIGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raster %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("unexpected end of file")
		}
		return sc.Text(), nil
	}

	out := &ASCIIGrid{CellSize: 1}
	nodata := -9999.0
	rows, cols := 0, 0

	// Header: key/value pairs until the first bare number.
	var firstValue string
	for {
		tok, err := next()
		if err != nil {
			return nil, fmt.Errorf("reading raster %s header: %w", path, err)
		}
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			_ = v
			firstValue = tok
			break
		}
		val, err := next()
		if err != nil {
			return nil, fmt.Errorf("reading raster %s header value for %q: %w", path, tok, err)
		}
		fv, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing raster %s header %q: %w", path, tok, err)
		}
		switch strings.ToLower(tok) {
		case "ncols":
			cols = int(fv)
		case "nrows":
			rows = int(fv)
		case "xllcorner":
			out.XCorner = fv
		case "yllcorner":
			out.YCorner = fv
		case "cellsize":
			out.CellSize = fv
		case "nodata_value":
			nodata = fv
		default:
			return nil, fmt.Errorf("parsing raster %s: unknown header key %q", path, tok)
		}
	}

	grid, err := New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("raster %s: %w", path, err)
	}
	grid.NoData = nodata

	idx := 0
	total := rows * cols
	tok := firstValue
	for {
		fv, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing raster %s cell %d: %w", path, idx, err)
		}
		if idx >= total {
			return nil, fmt.Errorf("raster %s: more than %d cells", path, total)
		}
		grid.Set(idx/cols, idx%cols, fv)
		idx++
		if idx == total {
			break
		}
		tok, err = next()
		if err != nil {
			return nil, fmt.Errorf("reading raster %s cell %d: %w", path, idx, err)
		}
	}

	out.Grid = grid
	return out, nil
}

// WriteASCII writes the grid as an Esri ASCII raster file.
func WriteASCII(path string, a *ASCIIGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating raster %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	g := a.Grid
	fmt.Fprintf(w, "ncols %d\n", g.Cols())
	fmt.Fprintf(w, "nrows %d\n", g.Rows())
	fmt.Fprintf(w, "xllcorner %g\n", a.XCorner)
	fmt.Fprintf(w, "yllcorner %g\n", a.YCorner)
	fmt.Fprintf(w, "cellsize %g\n", a.CellSize)
	fmt.Fprintf(w, "nodata_value %g\n", g.NoData)
	for r := range g.Rows() {
		for c := range g.Cols() {
			if c > 0 {
				if err := w.WriteByte(' '); err != nil {
					return fmt.Errorf("writing raster %s: %w", path, err)
				}
			}
			fmt.Fprintf(w, "%g", g.At(r, c))
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing raster %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing raster %s: %w", path, err)
	}
	return nil
}
