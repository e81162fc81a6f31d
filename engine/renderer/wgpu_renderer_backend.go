package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuMesh is the WebGPU counterpart of a GL vertex array: the buffers of one mesh, bound with
// the layout returned by WGPUVertexLayouts.
type wgpuMesh struct {
	buffers [model.BufferCount]model.Handle
}

// wgpuRendererBackendImpl uploads meshes to a headless WebGPU device. WebGPU has no object
// names, so the backend hands out its own handles and maps them to the wgpu objects.
type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	nextHandle model.Handle
	buffers    map[model.Handle]*wgpu.Buffer
	meshes     map[model.Handle]*wgpuMesh
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// WGPUVertexLayouts returns the vertex buffer layouts for the attribute buffers of a mesh built
// by the WebGPU backend, in buffer order, with the same slots the GL backend uses.
// A render pipeline drawing those meshes binds them with this layout.
//
// Returns:
//   - []wgpu.VertexBufferLayout: one layout per attribute buffer
func WGPUVertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 4 * geometry.PositionComponents,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  []wgpu.VertexAttribute{{Format: wgpu.VertexFormatFloat32x3, ShaderLocation: AttribPosition}},
		},
		{
			ArrayStride: 4 * geometry.TexCoordComponents,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  []wgpu.VertexAttribute{{Format: wgpu.VertexFormatFloat32x2, ShaderLocation: AttribTexCoord}},
		},
		{
			ArrayStride: 4 * geometry.NormalComponents,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  []wgpu.VertexAttribute{{Format: wgpu.VertexFormatFloat32x3, ShaderLocation: AttribNormal}},
		},
	}
}

// newWGPURendererBackend requests an adapter and device without a surface.
//
// Parameters:
//   - forceFallbackAdapter: true to request the software fallback adapter
//
// Returns:
//   - RendererBackend: the WebGPU backend
//   - error: error if no adapter or device is available
func newWGPURendererBackend(forceFallbackAdapter bool) (RendererBackend, error) {
	w := &wgpuRendererBackendImpl{
		mu:       &sync.Mutex{},
		instance: wgpu.CreateInstance(nil),
		buffers:  make(map[model.Handle]*wgpu.Buffer),
		meshes:   make(map[model.Handle]*wgpuMesh),
	}

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	})
	if err != nil {
		w.instance.Release()
		return nil, fmt.Errorf("failed to request WebGPU adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Mesh Upload Device",
	})
	if err != nil {
		a.Release()
		w.instance.Release()
		return nil, fmt.Errorf("failed to request WebGPU device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) BuildMesh(g geometry.Geometry) (model.Mesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	contents := [model.BufferCount][]byte{
		model.BufferPosition: common.SliceToBytes(g.Positions),
		model.BufferTexCoord: common.SliceToBytes(g.TexCoords),
		model.BufferNormal:   common.SliceToBytes(g.Normals),
		model.BufferIndex:    common.SliceToBytes(g.Indices),
	}
	labels := [model.BufferCount]string{"positions", "texcoords", "normals", "indices"}

	mesh := model.Mesh{Name: g.Name, IndexCount: int32(len(g.Indices))}
	record := &wgpuMesh{}

	for i, data := range contents {
		usage := wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
		if i == model.BufferIndex {
			usage = wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
		}
		// Zero-sized mapped buffers are rejected, so empty attributes get one padding word.
		if len(data) == 0 {
			data = make([]byte, 4)
		}

		buf, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    g.Name + " " + labels[i],
			Contents: data,
			Usage:    usage,
		})
		if err != nil {
			b.releaseBuffers(record.buffers[:i])
			return model.Mesh{}, fmt.Errorf("build mesh %s: failed to create %s buffer: %w", g.Name, labels[i], err)
		}

		h := b.allocHandle()
		b.buffers[h] = buf
		record.buffers[i] = h
	}

	mesh.Buffers = record.buffers
	mesh.VertexArray = b.allocHandle()
	b.meshes[mesh.VertexArray] = record
	return mesh, nil
}

func (b *wgpuRendererBackendImpl) allocHandle() model.Handle {
	b.nextHandle++
	return b.nextHandle
}

func (b *wgpuRendererBackendImpl) releaseBuffers(handles []model.Handle) {
	for _, h := range handles {
		if buf, ok := b.buffers[h]; ok {
			buf.Release()
			delete(b.buffers, h)
		}
	}
}

func (b *wgpuRendererBackendImpl) DrawMeshes(meshes []model.Mesh, wireframe bool) error {
	return ErrDrawUnsupported
}

func (b *wgpuRendererBackendImpl) FreeMesh(mesh model.Mesh) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	record, ok := b.meshes[mesh.VertexArray]
	if !ok {
		return fmt.Errorf("free mesh %s: %w", mesh.Name, ErrUnknownMesh)
	}
	b.releaseBuffers(record.buffers[:])
	delete(b.meshes, mesh.VertexArray)
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for h, record := range b.meshes {
		b.releaseBuffers(record.buffers[:])
		delete(b.meshes, h)
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
