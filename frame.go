package xsnow

// DrawCommand places one image in a frame.
type DrawCommand struct {
	Layer Layer
	Image ImageHandle
	X, Y  float64
	Alpha float64 // 0 transparent, 1 opaque
}

// Frame is a self-contained snapshot of what to draw for one tick. Renderers
// only ever see a Frame, never the scene's live slices, so a frame being drawn
// cannot tear against the next tick.
type Frame struct {
	Tick     uint64
	Viewport Viewport
	Commands []DrawCommand

	// SleighLaunched is set on the tick the sleigh started a run.
	SleighLaunched bool
}

// Reset empties the frame while keeping the command buffer.
func (f *Frame) Reset() {
	f.Tick = 0
	f.Viewport = Viewport{}
	f.Commands = f.Commands[:0]
	f.SleighLaunched = false
}

// Count returns the number of commands on the given layer.
func (f *Frame) Count(layer Layer) int {
	n := 0
	for i := range f.Commands {
		if f.Commands[i].Layer == layer {
			n++
		}
	}
	return n
}
