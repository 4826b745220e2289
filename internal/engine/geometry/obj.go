package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture kinds referenced by MTL files.
const (
	KindDiffuse  = "texture_diffuse"
	KindSpecular = "texture_specular"
)

// TextureRef is a texture referenced by a material file.
type TextureRef struct {
	Path string
	Kind string
}

// OBJ is the result of reading a Wavefront OBJ file.
type OBJ struct {
	Mesh     *TriangleMesh
	MtlLibs  []string
	Textures []TextureRef
}

type objCorner struct {
	v, vt, vn int // zero-based, -1 when absent
}

// ReadOBJ parses OBJ geometry. Polygons are fan-triangulated. Per-vertex
// normals are taken from vn only when every face corner carries one,
// otherwise they are computed.
func ReadOBJ(r io.Reader) (*OBJ, error) {
	var (
		positions []mgl32.Vec3
		texcoords []mgl32.Vec2
		normals   []mgl32.Vec3
		faces     [][]objCorner
		mtllibs   []string
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			texcoords = append(texcoords, mgl32.Vec2{v[0], v[1]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			face := make([]objCorner, 0, len(fields)-1)
			for _, f := range fields[1:] {
				c, err := parseCorner(f, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				face = append(face, c)
			}
			faces = append(faces, face)
		case "mtllib":
			mtllibs = append(mtllibs, strings.Join(fields[1:], " "))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	m := &TriangleMesh{Vertices: positions}
	anyUV, allVN := false, len(faces) > 0
	for _, face := range faces {
		for _, c := range face {
			anyUV = anyUV || c.vt >= 0
			allVN = allVN && c.vn >= 0
		}
	}
	if allVN {
		m.Normals = make([]mgl32.Vec3, len(positions))
	}
	for _, face := range faces {
		for k := 1; k+1 < len(face); k++ {
			corners := [3]objCorner{face[0], face[k], face[k+1]}
			m.Triangles = append(m.Triangles, [3]uint32{uint32(corners[0].v), uint32(corners[1].v), uint32(corners[2].v)})
			for _, c := range corners {
				if anyUV {
					var uv mgl32.Vec2
					if c.vt >= 0 {
						uv = texcoords[c.vt]
					}
					m.TriangleUVs = append(m.TriangleUVs, uv)
				}
				if allVN {
					m.Normals[c.v] = normals[c.vn]
				}
			}
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if !m.HasNormals() {
		m.ComputeVertexNormals()
	}
	return &OBJ{Mesh: m, MtlLibs: mtllibs}, nil
}

// LoadOBJ reads an OBJ file and the texture references of its material
// library. Without an mtllib statement the sibling .mtl file is used.
// Texture files that do not exist are skipped.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	libs := obj.MtlLibs
	if len(libs) == 0 {
		libs = []string{strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".mtl"}
	}
	for _, lib := range libs {
		mf, err := os.Open(filepath.Join(dir, lib))
		if err != nil {
			continue
		}
		refs, err := ReadMTL(mf, dir)
		mf.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", lib, err)
		}
		for _, ref := range refs {
			if _, err := os.Stat(ref.Path); err == nil {
				obj.Textures = append(obj.Textures, ref)
			}
		}
	}
	return obj, nil
}

// ReadMTL collects map_Kd and map_Ks references declared inside a newmtl
// block. Paths are resolved against dir.
func ReadMTL(r io.Reader, dir string) ([]TextureRef, error) {
	var refs []TextureRef
	current := ""
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		var kind string
		switch fields[0] {
		case "newmtl":
			current = fields[1]
			continue
		case "map_Kd":
			kind = KindDiffuse
		case "map_Ks":
			kind = KindSpecular
		default:
			continue
		}
		if current == "" {
			continue
		}
		// options such as -s 1 1 1 precede the file name
		name := fields[len(fields)-1]
		refs = append(refs, TextureRef{Path: filepath.Join(dir, name), Kind: kind})
	}
	return refs, sc.Err()
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn with 1-based or negative
// (relative) indices.
func parseCorner(s string, nv, nvt, nvn int) (objCorner, error) {
	parts := strings.Split(s, "/")
	c := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], nv); err != nil || c.v < 0 {
		return c, fmt.Errorf("bad vertex index %q", s)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], nvt); err != nil || c.vt < 0 {
			return c, fmt.Errorf("bad texcoord index %q", s)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], nvn); err != nil || c.vn < 0 {
			return c, fmt.Errorf("bad normal index %q", s)
		}
	}
	return c, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return -1, fmt.Errorf("index %d out of range", i)
}
