package geometry

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// maxPLYList bounds a single list property so a corrupt count cannot
// drive an unbounded read.
const maxPLYList = 1 << 16

var plyTypeSizes = map[string]int{
	"char": 1, "int8": 1,
	"uchar": 1, "uint8": 1,
	"short": 2, "int16": 2,
	"ushort": 2, "uint16": 2,
	"int": 4, "int32": 4,
	"uint": 4, "uint32": 4,
	"float": 4, "float32": 4,
	"double": 8, "float64": 8,
}

type plyProperty struct {
	name      string
	typ       string // scalar type, or the item type of a list
	countType string // set for list properties
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

func (e plyElement) index(names ...string) int {
	for _, n := range names {
		for i, p := range e.props {
			if p.name == n && p.countType == "" {
				return i
			}
		}
	}
	return -1
}

type plyHeader struct {
	format   string
	elements []plyElement
}

// plyNext reads the next value of the given type from the body.
type plyNext func(typ string) (float64, error)

// LoadPLY reads an ASCII or binary PLY file. Vertex normals are kept when
// the vertex element carries nx, ny and nz; otherwise they are computed.
func LoadPLY(path string) (*TriangleMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParsePLY(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// ParsePLY decodes PLY data in ascii, binary_little_endian or
// binary_big_endian format. Polygon faces are fan-triangulated and
// elements other than vertex and face are skipped.
func ParsePLY(data []byte) (*TriangleMesh, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	h, err := readPLYHeader(r)
	if err != nil {
		return nil, err
	}

	var next plyNext
	switch h.format {
	case "ascii":
		next = asciiPLYValues(r)
	case "binary_little_endian":
		next = binaryPLYValues(r, binary.LittleEndian)
	case "binary_big_endian":
		next = binaryPLYValues(r, binary.BigEndian)
	default:
		return nil, fmt.Errorf("unsupported PLY format %q", h.format)
	}
	return readPLYBody(h, next)
}

func readPLYHeader(r *bufio.Reader) (*plyHeader, error) {
	magic, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic")
	}

	h := &plyHeader{}
	for {
		line, err := r.ReadString('\n')
		fields := strings.Fields(line)
		if err != nil {
			if err == io.EOF && len(fields) == 1 && fields[0] == "end_header" {
				return h, nil
			}
			return nil, fmt.Errorf("unterminated PLY header")
		}
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("bad format line %q", strings.TrimSpace(line))
			}
			h.format = fields[1]
		case "comment", "obj_info":
		case "element":
			if len(fields) != 3 {
				return nil, fmt.Errorf("bad element line %q", strings.TrimSpace(line))
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("bad element count %q", fields[2])
			}
			h.elements = append(h.elements, plyElement{name: fields[1], count: n})
		case "property":
			if len(h.elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			p, err := parsePLYProperty(fields)
			if err != nil {
				return nil, err
			}
			el := &h.elements[len(h.elements)-1]
			el.props = append(el.props, p)
		case "end_header":
			return h, nil
		default:
			return nil, fmt.Errorf("unknown PLY header keyword %q", fields[0])
		}
	}
}

func parsePLYProperty(fields []string) (plyProperty, error) {
	var p plyProperty
	switch {
	case len(fields) == 5 && fields[1] == "list":
		p = plyProperty{countType: fields[2], typ: fields[3], name: fields[4]}
		if _, ok := plyTypeSizes[p.countType]; !ok {
			return p, fmt.Errorf("unknown PLY type %q", p.countType)
		}
	case len(fields) == 3:
		p = plyProperty{typ: fields[1], name: fields[2]}
	default:
		return p, fmt.Errorf("bad property line %q", strings.Join(fields, " "))
	}
	if _, ok := plyTypeSizes[p.typ]; !ok {
		return p, fmt.Errorf("unknown PLY type %q", p.typ)
	}
	return p, nil
}

func asciiPLYValues(r io.Reader) plyNext {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return func(string) (float64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		return strconv.ParseFloat(sc.Text(), 64)
	}
}

func binaryPLYValues(r io.Reader, order binary.ByteOrder) plyNext {
	var buf [8]byte
	return func(typ string) (float64, error) {
		b := buf[:plyTypeSizes[typ]]
		if _, err := io.ReadFull(r, b); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		switch typ {
		case "char", "int8":
			return float64(int8(b[0])), nil
		case "uchar", "uint8":
			return float64(b[0]), nil
		case "short", "int16":
			return float64(int16(order.Uint16(b))), nil
		case "ushort", "uint16":
			return float64(order.Uint16(b)), nil
		case "int", "int32":
			return float64(int32(order.Uint32(b))), nil
		case "uint", "uint32":
			return float64(order.Uint32(b)), nil
		case "float", "float32":
			return float64(math.Float32frombits(order.Uint32(b))), nil
		}
		return math.Float64frombits(order.Uint64(b)), nil
	}
}

// readPLYRow reads one element instance. Scalars land in scalars and lists
// in lists, both indexed by property position.
func readPLYRow(el plyElement, next plyNext, scalars []float64, lists [][]float64) error {
	for i, p := range el.props {
		if p.countType == "" {
			v, err := next(p.typ)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", el.name, p.name, err)
			}
			scalars[i] = v
			continue
		}
		n, err := next(p.countType)
		if err != nil {
			return fmt.Errorf("%s.%s count: %w", el.name, p.name, err)
		}
		if n < 0 || n > maxPLYList {
			return fmt.Errorf("%s.%s: bad list length %v", el.name, p.name, n)
		}
		items := lists[i][:0]
		for k := 0; k < int(n); k++ {
			v, err := next(p.typ)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", el.name, p.name, err)
			}
			items = append(items, v)
		}
		lists[i] = items
	}
	return nil
}

func readPLYBody(h *plyHeader, next plyNext) (*TriangleMesh, error) {
	m := &TriangleMesh{}
	var (
		normals []mgl32.Vec3
		uvs     []mgl32.Vec2
	)

	for _, el := range h.elements {
		scalars := make([]float64, len(el.props))
		lists := make([][]float64, len(el.props))

		switch el.name {
		case "vertex":
			x, y, z := el.index("x"), el.index("y"), el.index("z")
			if x < 0 || y < 0 || z < 0 {
				return nil, fmt.Errorf("vertex element without x, y and z")
			}
			nx, ny, nz := el.index("nx"), el.index("ny"), el.index("nz")
			hasNormals := nx >= 0 && ny >= 0 && nz >= 0
			u, v := el.index("u", "s", "texture_u"), el.index("v", "t", "texture_v")
			hasUVs := u >= 0 && v >= 0

			for i := 0; i < el.count; i++ {
				if err := readPLYRow(el, next, scalars, lists); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				m.Vertices = append(m.Vertices, mgl32.Vec3{float32(scalars[x]), float32(scalars[y]), float32(scalars[z])})
				if hasNormals {
					normals = append(normals, mgl32.Vec3{float32(scalars[nx]), float32(scalars[ny]), float32(scalars[nz])})
				}
				if hasUVs {
					uvs = append(uvs, mgl32.Vec2{float32(scalars[u]), float32(scalars[v])})
				}
			}

		case "face":
			idx := -1
			for i, p := range el.props {
				if p.countType != "" && (p.name == "vertex_indices" || p.name == "vertex_index") {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("face element without vertex_indices")
			}

			for i := 0; i < el.count; i++ {
				if err := readPLYRow(el, next, scalars, lists); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				corners := lists[idx]
				if len(corners) < 3 {
					return nil, fmt.Errorf("face %d: needs at least 3 vertices, got %d", i, len(corners))
				}
				face := make([]uint32, len(corners))
				for k, c := range corners {
					if c < 0 || c > math.MaxUint32 || c != math.Trunc(c) {
						return nil, fmt.Errorf("face %d: bad vertex index %v", i, c)
					}
					face[k] = uint32(c)
				}
				for k := 1; k+1 < len(face); k++ {
					m.Triangles = append(m.Triangles, [3]uint32{face[0], face[k], face[k+1]})
				}
			}

		default:
			for i := 0; i < el.count; i++ {
				if err := readPLYRow(el, next, scalars, lists); err != nil {
					return nil, fmt.Errorf("%s %d: %w", el.name, i, err)
				}
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(uvs) == len(m.Vertices) {
		for _, tri := range m.Triangles {
			m.TriangleUVs = append(m.TriangleUVs, uvs[tri[0]], uvs[tri[1]], uvs[tri[2]])
		}
	}
	if len(normals) == len(m.Vertices) {
		m.Normals = normals
	} else {
		m.ComputeVertexNormals()
	}
	return m, nil
}
