package gpu

// Draw is one recorded DrawIndexed call.
type Draw struct {
	Mesh       MeshHandle
	IndexCount int
	Textures   map[int]TextureHandle
}

// Recorder is a Device that keeps uploads in memory and records draws.
type Recorder struct {
	Meshes   map[MeshHandle]RecordedMesh
	Textures map[TextureHandle]Image
	Draws    []Draw

	bound map[int]TextureHandle
	next  uint32
}

// RecordedMesh is the data handed to UploadMesh.
type RecordedMesh struct {
	Vertices []float32
	Indices  []uint32
}

// NewRecorder creates an empty recording device.
func NewRecorder() *Recorder {
	return &Recorder{
		Meshes:   make(map[MeshHandle]RecordedMesh),
		Textures: make(map[TextureHandle]Image),
		bound:    make(map[int]TextureHandle),
	}
}

// UploadMesh stores copies of the buffers.
func (r *Recorder) UploadMesh(vertices []float32, indices []uint32) (MeshHandle, error) {
	r.next++
	h := MeshHandle(r.next)
	r.Meshes[h] = RecordedMesh{
		Vertices: append([]float32(nil), vertices...),
		Indices:  append([]uint32(nil), indices...),
	}
	return h, nil
}

// UploadTexture stores the image.
func (r *Recorder) UploadTexture(img Image) (TextureHandle, error) {
	if err := img.Validate(); err != nil {
		return 0, err
	}
	r.next++
	h := TextureHandle(r.next)
	r.Textures[h] = img
	return h, nil
}

// BindTexture remembers the texture bound to unit.
func (r *Recorder) BindTexture(unit int, tex TextureHandle) {
	r.bound[unit] = tex
}

// DrawIndexed records a draw with the current bindings and then resets
// them, mirroring a return to texture unit 0.
func (r *Recorder) DrawIndexed(mesh MeshHandle, indexCount int) {
	d := Draw{Mesh: mesh, IndexCount: indexCount}
	if len(r.bound) > 0 {
		d.Textures = make(map[int]TextureHandle, len(r.bound))
		for u, t := range r.bound {
			d.Textures[u] = t
		}
	}
	r.Draws = append(r.Draws, d)
	clear(r.bound)
}

// Reset drops recorded draws but keeps uploads.
func (r *Recorder) Reset() {
	r.Draws = r.Draws[:0]
	clear(r.bound)
}
