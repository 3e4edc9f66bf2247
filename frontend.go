package prim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/prim/wide"
)

// VertexProducer fills one lane batch of vertex records. base is the draw
// index of the record's first vertex; the producer writes one vector per
// attribute slot into rec and assigns the record's restart bits to cuts.
// Assign cuts outright, never accumulate: ring records are reused and carry
// stale bits.
//
// A producer can be asked for vertices past the end of the draw while the
// final primitives assemble. Whatever it writes there lands in lanes the
// assembler never hands out.
type VertexProducer func(base int, rec []wide.Vec4x8, cuts *wide.Mask8)

// PrimConsumer receives each assembled batch. Verts holds the position
// slot; consumers needing more attributes call pa.Assemble with the other
// slots, or pa.AssembleSingle for one primitive, before returning. A
// non-nil error stops the pump.
type PrimConsumer func(pa Assembler, batch *PrimBatch) error

// PrimBatch is one batch of assembled primitives. Verts is reused between
// batches; consumers keeping data past the callback must copy it out.
type PrimBatch struct {
	Verts        []wide.Vec4x8 // position slot, one vector per primitive vertex
	VertsPerPrim int
	NumPrims     int        // valid lanes, counted from lane 0
	PrimIDs      wide.I32x8 // per-lane primitive IDs
}

// positionSlot is the attribute slot the pump assembles for every batch.
const positionSlot = 0

// Pump drives one draw through an assembler: it interleaves vertex
// production with primitive assembly until the draw is exhausted, handing
// each completed batch to consume. startID seeds the primitive IDs.
//
// The loop shape keeps both assembler variants honest. Production pauses
// while the vertex ring is full; each produced record is assembled
// immediately, so restart bits are honored before the ring reuses them; and
// batches keep draining as long as NextPrim reports more can be extracted
// without new vertices.
func Pump(pa Assembler, startID int32, produce VertexProducer, consume PrimConsumer) error {
	verts := make([]wide.Vec4x8, pa.VertsPerPrim())
	batch := PrimBatch{VertsPerPrim: pa.VertsPerPrim()}
	base := 0

	emit := func() error {
		batch.NumPrims = pa.NumPrims()
		if batch.NumPrims == 0 {
			return nil
		}
		batch.Verts = verts
		batch.PrimIDs = pa.PrimID(startID)
		return consume(pa, &batch)
	}

	for pa.HasWork() {
		// drain completed batches before producing into a full ring
		for pa.IsVertexStoreFull() {
			if pa.Assemble(positionSlot, verts) {
				if err := emit(); err != nil {
					return err
				}
			}
			pa.NextPrim()
			if pa.IsVertexStoreFull() {
				return fmt.Errorf("%w: %s draw after vertex %d", ErrStoreStalled, pa.Topology(), base)
			}
		}

		// restart bits pair with the record behind them: fetch before the
		// write cursor moves
		cuts := pa.NextVsIndices()
		rec := pa.NextVsOutput()
		produce(base, rec, cuts)
		base += LaneWidth

		for {
			if pa.Assemble(positionSlot, verts) {
				if err := emit(); err != nil {
					return err
				}
			}
			if !pa.NextPrim() {
				break
			}
		}
	}

	return nil
}

// PumpStream replays an already-materialized vertex stream through an
// assembler built by NewStreamingAssembler. There is nothing to produce:
// the stream cursor advances over the data in place.
func PumpStream(pa Assembler, startID int32, consume PrimConsumer) error {
	verts := make([]wide.Vec4x8, pa.VertsPerPrim())
	batch := PrimBatch{VertsPerPrim: pa.VertsPerPrim()}

	emit := func() error {
		batch.NumPrims = pa.NumPrims()
		if batch.NumPrims == 0 {
			return nil
		}
		batch.Verts = verts
		batch.PrimIDs = pa.PrimID(startID)
		return consume(pa, &batch)
	}

	for pa.HasWork() {
		pa.NextStreamOutput()

		for {
			if pa.Assemble(positionSlot, verts) {
				if err := emit(); err != nil {
					return err
				}
			}
			if !pa.NextPrim() {
				break
			}
		}
	}

	return nil
}

// PumpArray drains an ArrayAssembler: the index arrays name every primitive
// up front, so each pass gathers one batch and slides past it.
func PumpArray(pa Assembler, startID int32, consume PrimConsumer) error {
	verts := make([]wide.Vec4x8, pa.VertsPerPrim())
	batch := PrimBatch{VertsPerPrim: pa.VertsPerPrim()}

	for pa.HasWork() {
		if !pa.Assemble(positionSlot, verts) {
			break
		}
		batch.NumPrims = pa.NumPrims()
		batch.Verts = verts
		batch.PrimIDs = pa.PrimID(startID)
		if err := consume(pa, &batch); err != nil {
			return err
		}
		pa.NextPrim()
	}

	return nil
}

// Draw binds one draw's state to its producer and consumer for RunDraws.
type Draw struct {
	State   DrawState
	StartID int32
	Produce VertexProducer
	Consume PrimConsumer
}

// RunDraws pumps draws concurrently, at most workers at a time; workers <= 0
// means GOMAXPROCS. Each worker leases its own factory from the default
// pool, so draws never share assembler state. Consumers run on the worker
// goroutines and synchronize their own output. The first error cancels the
// remaining draws.
func RunDraws(ctx context.Context, draws []Draw, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range draws {
		d := &draws[i]
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			f := GetFactory()
			defer PutFactory(f)

			pa, err := f.Init(d.State)
			if err != nil {
				return fmt.Errorf("draw %d: %w", i, err)
			}
			if err := Pump(pa, d.StartID, d.Produce, d.Consume); err != nil {
				return fmt.Errorf("draw %d: %w", i, err)
			}
			return nil
		})
	}

	return eg.Wait()
}
