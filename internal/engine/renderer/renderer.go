// Package renderer implements the device and program interfaces on top of
// OpenGL 4.1 core.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width    int
	Height   int
	CullFace bool
}

type glMesh struct {
	vao, vbo, ebo uint32
}

// Renderer owns every buffer, texture and program it creates and issues
// the draws. It must be created after the GL context and used from the
// thread that owns it.
type Renderer struct {
	config Config

	meshes   map[gpu.MeshHandle]glMesh
	textures map[gpu.TextureHandle]uint32
	programs []*Program

	log *zap.Logger
}

var _ gpu.Device = (*Renderer)(nil)

// New initializes OpenGL and the default pipeline state.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config:   cfg,
		meshes:   make(map[gpu.MeshHandle]glMesh),
		textures: make(map[gpu.TextureHandle]uint32),
		log:      logger.Named("renderer"),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if cfg.CullFace {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}
	// texture rows are tightly packed
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Begin clears the color and depth buffers.
func (r *Renderer) Begin(clear mgl32.Vec4) {
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Resize updates the viewport to the drawable size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// UploadMesh creates a vertex array with the interleaved position, normal
// and texcoord layout plus an element buffer.
func (r *Renderer) UploadMesh(vertices []float32, indices []uint32) (gpu.MeshHandle, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, fmt.Errorf("upload mesh: empty buffers (%d floats, %d indices)", len(vertices), len(indices))
	}

	var m glMesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*gpu.FloatSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	for _, a := range gpu.Layout {
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, gpu.Stride, uintptr(a.Offset))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := glError("upload mesh"); err != nil {
		r.deleteMesh(m)
		return 0, err
	}

	h := gpu.MeshHandle(m.vao)
	r.meshes[h] = m
	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", len(vertices)/gpu.FloatsPerVertex),
		zap.Int("indices", len(indices)),
	)
	return h, nil
}

// UploadTexture creates a mipmapped, repeating 2D texture.
func (r *Renderer) UploadTexture(img gpu.Image) (gpu.TextureHandle, error) {
	if err := img.Validate(); err != nil {
		return 0, err
	}
	format := uint32(gl.RGBA)
	if img.Format == gpu.RGB {
		format = gl.RGB
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(img.Width), int32(img.Height), 0, format, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("upload texture"); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, err
	}

	h := gpu.TextureHandle(id)
	r.textures[h] = id
	return h, nil
}

// BindTexture binds tex to texture unit.
func (r *Renderer) BindTexture(unit int, tex gpu.TextureHandle) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, r.textures[tex])
}

// DrawIndexed draws indexCount indices of mesh as triangles and returns
// to texture unit 0.
func (r *Renderer) DrawIndexed(mesh gpu.MeshHandle, indexCount int) {
	m, ok := r.meshes[mesh]
	if !ok {
		r.log.Warn("draw of unknown mesh", zap.Uint32("handle", uint32(mesh)))
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// ReadPixels reads the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int, error) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0, fmt.Errorf("read pixels: empty viewport %dx%d", w, h)
	}
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	if err := glError("read pixels"); err != nil {
		return nil, 0, 0, err
	}
	return pixels, w, h, nil
}

// Close releases every GPU object created through the renderer.
func (r *Renderer) Close() error {
	r.log.Info("closing renderer",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("textures", len(r.textures)),
		zap.Int("programs", len(r.programs)),
	)

	var errs error
	for h, m := range r.meshes {
		r.deleteMesh(m)
		delete(r.meshes, h)
	}
	errs = multierr.Append(errs, glError("delete meshes"))

	for h, id := range r.textures {
		gl.DeleteTextures(1, &id)
		delete(r.textures, h)
	}
	errs = multierr.Append(errs, glError("delete textures"))

	for _, p := range r.programs {
		p.delete()
	}
	r.programs = nil
	errs = multierr.Append(errs, glError("delete programs"))

	return errs
}

func (r *Renderer) deleteMesh(m glMesh) {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// glError drains the GL error queue.
func glError(op string) error {
	var errs error
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		errs = multierr.Append(errs, fmt.Errorf("%s: GL error 0x%04x", op, code))
	}
	return errs
}
