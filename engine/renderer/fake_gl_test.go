package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type fakeAttrib struct {
	buffer uint32
	size   int32
	xtype  uint32
}

type fakeVAO struct {
	attribs map[uint32]fakeAttrib
	enabled map[uint32]bool
	element uint32
}

type fakeDraw struct {
	vao   uint32
	count int32
}

// fakeGL records the state a real driver would hold for the calls the backend makes.
type fakeGL struct {
	next uint32

	vaos    map[uint32]*fakeVAO
	buffers map[uint32][]byte

	boundVAO   uint32
	boundArray uint32

	// failOn names a method that raises GL_OUT_OF_MEMORY when called.
	failOn string
	// zeroNames makes every Gen* call return 0.
	zeroNames bool
	errs      []uint32

	polygonModes   []uint32
	draws          []fakeDraw
	deletedVAOs    []uint32
	deletedBuffers []uint32
}

var _ GLContext = &fakeGL{}

func newFakeGL() *fakeGL {
	return &fakeGL{
		vaos:    make(map[uint32]*fakeVAO),
		buffers: make(map[uint32][]byte),
	}
}

func (f *fakeGL) maybeFail(name string) {
	if f.failOn == name {
		f.errs = append(f.errs, gl.OUT_OF_MEMORY)
	}
}

func (f *fakeGL) gen(n int32, names *uint32) []uint32 {
	out := unsafe.Slice(names, n)
	for i := range out {
		if f.zeroNames {
			out[i] = 0
			continue
		}
		f.next++
		out[i] = f.next
	}
	return out
}

func (f *fakeGL) GenVertexArrays(n int32, arrays *uint32) {
	for _, name := range f.gen(n, arrays) {
		if name != 0 {
			f.vaos[name] = &fakeVAO{attribs: map[uint32]fakeAttrib{}, enabled: map[uint32]bool{}}
		}
	}
}

func (f *fakeGL) BindVertexArray(array uint32) {
	f.boundVAO = array
}

func (f *fakeGL) DeleteVertexArrays(n int32, arrays *uint32) {
	for _, name := range unsafe.Slice(arrays, n) {
		if name != 0 {
			delete(f.vaos, name)
			f.deletedVAOs = append(f.deletedVAOs, name)
		}
	}
}

func (f *fakeGL) GenBuffers(n int32, buffers *uint32) {
	for _, name := range f.gen(n, buffers) {
		if name != 0 {
			f.buffers[name] = nil
		}
	}
}

func (f *fakeGL) BindBuffer(target uint32, buffer uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		f.boundArray = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		if vao, ok := f.vaos[f.boundVAO]; ok {
			vao.element = buffer
		}
	}
}

func (f *fakeGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.maybeFail("BufferData")
	var contents []byte
	if size > 0 && data != nil {
		contents = append(contents, unsafe.Slice((*byte)(data), size)...)
	}
	switch target {
	case gl.ARRAY_BUFFER:
		f.buffers[f.boundArray] = contents
	case gl.ELEMENT_ARRAY_BUFFER:
		if vao, ok := f.vaos[f.boundVAO]; ok {
			f.buffers[vao.element] = contents
		}
	}
}

func (f *fakeGL) DeleteBuffers(n int32, buffers *uint32) {
	for _, name := range unsafe.Slice(buffers, n) {
		if name != 0 {
			delete(f.buffers, name)
			f.deletedBuffers = append(f.deletedBuffers, name)
		}
	}
}

func (f *fakeGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, pointer unsafe.Pointer) {
	if vao, ok := f.vaos[f.boundVAO]; ok {
		vao.attribs[index] = fakeAttrib{buffer: f.boundArray, size: size, xtype: xtype}
	}
}

func (f *fakeGL) EnableVertexAttribArray(index uint32) {
	if vao, ok := f.vaos[f.boundVAO]; ok {
		vao.enabled[index] = true
	}
}

func (f *fakeGL) PolygonMode(face uint32, mode uint32) {
	f.polygonModes = append(f.polygonModes, mode)
}

func (f *fakeGL) DrawElements(mode uint32, count int32, xtype uint32, indices unsafe.Pointer) {
	f.maybeFail("DrawElements")
	f.draws = append(f.draws, fakeDraw{vao: f.boundVAO, count: count})
}

func (f *fakeGL) GetError() uint32 {
	if len(f.errs) == 0 {
		return gl.NO_ERROR
	}
	code := f.errs[0]
	f.errs = f.errs[1:]
	return code
}
