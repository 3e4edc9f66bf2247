package prim

import "sync"

// Factory owns a vertex arena and binds the right assembler over it for
// each draw. The fast-path stream assembler serves non-indexed draws
// without adjacency; everything else needs per-vertex tracking:
//
//   - indexed draws, because only an index stream can carry restart
//     sentinels, and
//   - adjacency topologies, which the fixed permutations do not cover.
//
// A Factory serves one draw at a time and is not safe for concurrent use;
// run one per worker, or lease them from a FactoryPool.
type Factory struct {
	store    *vertexStore
	pa       Assembler
	cutPA    bool
	topology Topology
}

// NewFactory allocates a factory and its vertex arena.
func NewFactory() *Factory {
	return &Factory{store: newVertexStore()}
}

// needsCutPA reports whether the draw must route to the per-vertex tracker.
func needsCutPA(state DrawState) bool {
	return state.Indexed || state.Topology.HasAdjacency()
}

// Init rebinds the factory for a draw and returns the selected assembler.
// The arena's restart bits are cleared; record data is left for the
// producer to overwrite. With the nocutpa build tag every draw routes to
// the stream assembler, so indexed adjacency draws fail to bind.
func (f *Factory) Init(state DrawState) (Assembler, error) {
	if err := state.validate(); err != nil {
		return nil, err
	}

	f.topology = state.Topology
	f.store.reset()

	if enableCutAwarePA && needsCutPA(state) {
		pa, err := newCutAssembler(f.store, state.Topology, state.NumVerts, state.NumAttrs,
			state.GSEnabled, state.ProcessCutVerts)
		if err != nil {
			return nil, err
		}
		f.pa, f.cutPA = pa, true
	} else {
		pa, err := newStreamAssembler(f.store.data, state.NumAttrs, storeRecords,
			state.Topology, state.Topology.PrimCount(state.NumVerts), false)
		if err != nil {
			return nil, err
		}
		f.pa, f.cutPA = pa, false
	}

	Logger().Debug("assembler bound",
		"topology", state.Topology.String(),
		"cutAware", f.cutPA,
		"verts", state.NumVerts,
		"attrs", state.NumAttrs)

	return f.pa, nil
}

// PA returns the assembler bound by the last Init, or nil before any draw.
func (f *Factory) PA() Assembler {
	return f.pa
}

// CutAware reports whether the bound assembler tracks restart sentinels.
func (f *Factory) CutAware() bool {
	return f.cutPA
}

// Topology returns the topology of the bound draw.
func (f *Factory) Topology() Topology {
	return f.topology
}

// FactoryPool manages a pool of reusable factories, so per-draw setup does
// not re-allocate vertex arenas.
//
// Usage:
//
//	pool := NewFactoryPool()
//	f := pool.Get()
//	defer pool.Put(f)
//	// bind draws with f.Init...
type FactoryPool struct {
	pool sync.Pool
}

// NewFactoryPool creates a new factory pool.
func NewFactoryPool() *FactoryPool {
	return &FactoryPool{
		pool: sync.Pool{
			New: func() any {
				return NewFactory()
			},
		},
	}
}

// Get retrieves a factory from the pool. Bind a draw with Init before use.
func (p *FactoryPool) Get() *Factory {
	return p.pool.Get().(*Factory)
}

// Put returns a factory to the pool for reuse.
func (p *FactoryPool) Put(f *Factory) {
	if f == nil {
		return
	}
	p.pool.Put(f)
}

// Warmup pre-allocates factories to avoid allocation during critical paths.
// Call this during initialization if allocation-free operation is required.
func (p *FactoryPool) Warmup(count int) {
	factories := make([]*Factory, count)
	for i := 0; i < count; i++ {
		factories[i] = p.Get()
	}
	for i := 0; i < count; i++ {
		p.Put(factories[i])
	}
}

// DefaultPool is a global factory pool for convenience.
// For performance-critical code, consider creating dedicated pools.
var DefaultPool = NewFactoryPool()

// GetFactory retrieves a factory from the default pool.
func GetFactory() *Factory {
	return DefaultPool.Get()
}

// PutFactory returns a factory to the default pool.
func PutFactory(f *Factory) {
	DefaultPool.Put(f)
}
