// Command primdemo demonstrates the prim primitive-assembly library.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/prim"
	"github.com/gogpu/prim/tess"
	"github.com/gogpu/prim/wide"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "prims.png", "output file")
		verbose = flag.Bool("v", false, "log assembler activity")
	)
	flag.Parse()

	if *verbose {
		prim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	c := newCanvas(*width, *height)

	// One draw per assembler variant.
	if err := drawArcs(c); err != nil {
		log.Fatalf("Arc draw failed: %v", err)
	}
	if err := drawStar(c); err != nil {
		log.Fatalf("Star draw failed: %v", err)
	}
	if err := drawRibbon(c); err != nil {
		log.Fatalf("Ribbon draw failed: %v", err)
	}

	if err := c.savePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// drawRibbon pushes a sine ribbon through the stream assembler as one plain
// triangle strip. The producer synthesizes positions on demand, the way a
// vertex shader stage would feed the assembler.
func drawRibbon(c *canvas) error {
	const segs = 48
	numVerts := 2 * (segs + 1)

	w := float32(c.w)
	mid := float32(c.h) * 0.76
	thick := float32(c.h) * 0.09

	produce := func(base int, rec []wide.Vec4x8, cuts *wide.Mask8) {
		*cuts = 0
		for lane := 0; lane < prim.LaneWidth; lane++ {
			i := base + lane
			t := float32(i/2) / segs
			y := mid + thick*float32(i%2) + thick*float32(math.Sin(float64(t)*4*math.Pi))
			rec[0].SetLane(lane, wide.Vec4{w * (0.05 + 0.9*t), y, 0, 1})
		}
	}

	f := prim.GetFactory()
	defer prim.PutFactory(f)
	pa, err := f.Init(prim.DrawState{
		Topology: prim.TopologyTriangleStrip,
		NumVerts: numVerts,
		NumAttrs: 1,
	})
	if err != nil {
		return err
	}
	return prim.Pump(pa, 0, produce, c.fill(204))
}

// drawArcs pushes two annulus arcs through the cut assembler as a single
// indexed triangle strip split by a restart sentinel.
func drawArcs(c *canvas) error {
	const segs = 40
	cx, cy := float64(c.w)*0.28, float64(c.h)*0.34
	outer, inner := float64(c.h)*0.24, float64(c.h)*0.15

	// Vertex pairs around the full circle, even indices on the outer rim.
	verts := make([]wide.Vec4, 0, 2*(segs+1))
	for i := 0; i <= segs; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / segs)
		verts = append(verts,
			wide.Vec4{float32(cx + outer*cos), float32(cy + outer*sin), 0, 1},
			wide.Vec4{float32(cx + inner*cos), float32(cy + inner*sin), 0, 1},
		)
	}

	// One strip per arc, a restart between them. Each arc stops short of the
	// half circle so the two stay visually separate.
	const gap = segs / 10
	indices := make([]uint16, 0, 2*(segs+2))
	for i := 0; i <= segs/2-gap; i++ {
		indices = append(indices, uint16(2*i), uint16(2*i+1))
	}
	indices = append(indices, 0xFFFF)
	for i := segs / 2; i <= segs-gap; i++ {
		indices = append(indices, uint16(2*i), uint16(2*i+1))
	}

	sentinel, err := prim.RestartSentinel(gputypes.IndexFormatUint16)
	if err != nil {
		return err
	}
	masks := prim.MarkRestarts(indices, sentinel)

	produce := func(base int, rec []wide.Vec4x8, cuts *wide.Mask8) {
		for lane := 0; lane < prim.LaneWidth; lane++ {
			var v wide.Vec4
			if i := base + lane; i < len(indices) && uint32(indices[i]) != sentinel {
				v = verts[indices[i]]
			}
			rec[0].SetLane(lane, v)
		}
		if r := base / prim.LaneWidth; r < len(masks) {
			*cuts = masks[r]
		} else {
			*cuts = 0
		}
	}

	f := prim.GetFactory()
	defer prim.PutFactory(f)
	pa, err := f.Init(prim.DrawState{
		Topology:    prim.TopologyTriangleStrip,
		Indexed:     true,
		IndexFormat: gputypes.IndexFormatUint16,
		NumVerts:    len(indices),
		NumAttrs:    1,
	})
	if err != nil {
		return err
	}
	return prim.Pump(pa, 0, produce, c.fill(16))
}

// drawStar triangulates a five-point star with a round hole and pushes the
// mesh through the array assembler.
func drawStar(c *canvas) error {
	cx, cy := float64(c.w)*0.72, float64(c.h)*0.34
	outerR := float64(c.h) * 0.26
	innerR := outerR * 0.45

	const points = 5
	star := make([][2]float64, 0, points*2)
	for i := 0; i < points*2; i++ {
		angle := float64(i) * math.Pi / points
		r := outerR
		if i%2 == 1 {
			r = innerR
		}
		star = append(star, [2]float64{
			cx + r*math.Cos(angle-math.Pi/2),
			cy + r*math.Sin(angle-math.Pi/2),
		})
	}

	const holeSegs = 24
	holeR := innerR * 0.5
	hole := make([][2]float64, 0, holeSegs)
	for i := 0; i < holeSegs; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / holeSegs)
		hole = append(hole, [2]float64{cx + holeR*cos, cy + holeR*sin})
	}

	mesh, err := tess.Triangulate([][][2]float64{star, hole})
	if err != nil {
		return err
	}
	pa, err := mesh.Assembler()
	if err != nil {
		return err
	}
	return prim.PumpArray(pa, 0, c.fill(46))
}

// canvas rasterizes assembled triangle batches onto an RGBA image.
type canvas struct {
	dst  *image.RGBA
	ras  *vector.Rasterizer
	w, h int
}

func newCanvas(w, h int) *canvas {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := image.NewUniform(color.RGBA{R: 18, G: 22, B: 30, A: 255})
	draw.Draw(dst, dst.Bounds(), bg, image.Point{}, draw.Src)
	return &canvas{dst: dst, ras: vector.NewRasterizer(w, h), w: w, h: h}
}

// fill returns a consumer that fills every valid triangle lane of each batch,
// shaded by primitive ID so the assembly order stays visible.
func (c *canvas) fill(hue float64) prim.PrimConsumer {
	return func(pa prim.Assembler, batch *prim.PrimBatch) error {
		for lane := 0; lane < batch.NumPrims; lane++ {
			c.ras.Reset(c.w, c.h)
			v := batch.Verts[0].Lane(lane)
			c.ras.MoveTo(v[0], v[1])
			for i := 1; i < batch.VertsPerPrim; i++ {
				v = batch.Verts[i].Lane(lane)
				c.ras.LineTo(v[0], v[1])
			}
			c.ras.ClosePath()
			src := image.NewUniform(shade(hue, batch.PrimIDs[lane]))
			c.ras.Draw(c.dst, c.dst.Bounds(), src, image.Point{})
		}
		return nil
	}
}

func (c *canvas) savePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, c.dst)
}

// shade alternates lightness by primitive ID so adjacent triangles in a
// strip or mesh stay distinguishable.
func shade(hue float64, id int32) color.RGBA {
	l := 0.42
	if id%2 == 0 {
		l = 0.56
	}
	return hsl(hue, 0.68, l)
}

// hsl converts an HSL triple (hue in degrees) to an opaque RGBA color.
func hsl(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}
