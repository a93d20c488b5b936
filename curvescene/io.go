package curvescene

import (
	"archive/zip"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/achilleasa/hairbvh/hair"
)

const curveDataFile = "curves.bin"

// gobGeometry is the on-disk shape of a CurveGeometry; gob needs
// exported fields with no interface members, which CurveGeometry
// already satisfies, but keeping a distinct type here insulates the
// wire format from in-memory field renames.
type gobGeometry struct {
	ID        uuid.UUID
	Vertices  []hair.CurveVertex
	IsEnabled bool
}

// Save writes sc to path as a zip archive containing a single
// gob-encoded stream of its geometries.
func Save(path string, sc *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("curvescene: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	cw, err := zw.Create(curveDataFile)
	if err != nil {
		return fmt.Errorf("curvescene: %w", err)
	}

	out := make([]gobGeometry, len(sc.Geometries))
	for i, g := range sc.Geometries {
		out[i] = gobGeometry{ID: g.ID, Vertices: g.Vertices, IsEnabled: g.IsEnabled}
	}
	if err := gob.NewEncoder(cw).Encode(out); err != nil {
		return fmt.Errorf("curvescene: %w", err)
	}
	return nil
}

// Load reads a scene previously written by Save.
func Load(path string) (*Scene, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("curvescene: %w", err)
	}
	defer zr.Close()

	var cr *zip.File
	for _, f := range zr.File {
		if f.Name == curveDataFile {
			cr = f
			break
		}
	}
	if cr == nil {
		return nil, fmt.Errorf("curvescene: %s missing %s", path, curveDataFile)
	}

	rc, err := cr.Open()
	if err != nil {
		return nil, fmt.Errorf("curvescene: %w", err)
	}
	defer rc.Close()

	var in []gobGeometry
	if err := gob.NewDecoder(rc).Decode(&in); err != nil {
		return nil, fmt.Errorf("curvescene: %w", err)
	}

	sc := New()
	for _, g := range in {
		sc.Add(&CurveGeometry{ID: g.ID, Vertices: g.Vertices, IsEnabled: g.IsEnabled})
	}
	return sc, nil
}
