package geometry

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// LoadSTL reads a binary or ASCII STL file. Every facet gets its own three
// vertices, so computed normals are flat.
func LoadSTL(path string) (*TriangleMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseSTL(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// ParseSTL decodes STL data, detecting binary files by their exact size.
func ParseSTL(data []byte) (*TriangleMesh, error) {
	if len(data) >= stlHeaderSize+4 {
		n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if len(data) == stlHeaderSize+4+int(n)*stlTriangleSize {
			return parseBinarySTL(data[stlHeaderSize+4:], int(n))
		}
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return parseASCIISTL(data)
	}
	return nil, fmt.Errorf("unrecognized STL data (%d bytes)", len(data))
}

func parseBinarySTL(data []byte, n int) (*TriangleMesh, error) {
	m := &TriangleMesh{}
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	for t := 0; t < n; t++ {
		// 12 bytes facet normal, 3x12 bytes vertices, 2 bytes attribute
		off := t*stlTriangleSize + 12
		base := uint32(len(m.Vertices))
		for k := 0; k < 3; k++ {
			o := off + k*12
			m.Vertices = append(m.Vertices, mgl32.Vec3{f(o), f(o + 4), f(o + 8)})
		}
		m.Triangles = append(m.Triangles, [3]uint32{base, base + 1, base + 2})
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.ComputeVertexNormals()
	return m, nil
}

func parseASCIISTL(data []byte) (*TriangleMesh, error) {
	m := &TriangleMesh{}
	var facet []mgl32.Vec3
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("short vertex line %q", sc.Text())
			}
			var v mgl32.Vec3
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(fields[k+1], 32)
				if err != nil {
					return nil, err
				}
				v[k] = float32(f)
			}
			facet = append(facet, v)
		case "endloop":
			if len(facet) != 3 {
				return nil, fmt.Errorf("facet with %d vertices", len(facet))
			}
			base := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, facet...)
			m.Triangles = append(m.Triangles, [3]uint32{base, base + 1, base + 2})
			facet = facet[:0]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.ComputeVertexNormals()
	return m, nil
}
