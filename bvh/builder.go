package bvh

import (
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/threedslider/appleseed/log"
)

// A callback invoked when the builder turns the items in [begin, end) into a leaf.
type LeafCallback func(begin, end, depth int)

// A callback invoked when the builder splits [begin, end) at pivot along axis.
type SplitCallback func(begin, pivot, end, axis, depth int)

// BuildOptions configure a Builder.
type BuildOptions struct {
	// The number of goroutines partitioning ranges. Values < 1 are treated as 1.
	Workers int

	// Optional decision callbacks. When Workers > 1 they may be invoked
	// concurrently.
	OnLeaf  LeafCallback
	OnSplit SplitCallback
}

// A pending range.
type buildTask struct {
	begin, end int
	depth      int
}

// Builder drives a partitioner over shrinking ranges until every item
// belongs to a leaf range. It only reports decisions; allocating and laying
// out tree nodes is left to the callbacks.
type Builder[S Scalar, B any, PB Box[S, B]] struct {
	logger      log.Logger
	partitioner *SAHPartitioner[S, B, PB]
	opts        BuildOptions

	boxes    []B
	rootArea float64

	// Pending ranges and the number of ranges currently being processed.
	mu       sync.Mutex
	cond     *sync.Cond
	pending  *queue.Queue
	inFlight int
}

// Create a builder for a partitioner.
func NewBuilder[S Scalar, B any, PB Box[S, B]](partitioner *SAHPartitioner[S, B, PB], opts BuildOptions) *Builder[S, B, PB] {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	b := &Builder[S, B, PB]{
		logger:      log.New("bvh builder"),
		partitioner: partitioner,
		opts:        opts,
	}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Partition boxes and return the build statistics. The partitioner is
// re-initialized for len(boxes) items; once Build returns, its item ordering
// lists the items of each reported leaf contiguously.
func (b *Builder[S, B, PB]) Build(boxes []B) Stats {
	start := time.Now()

	b.partitioner.Initialize(len(boxes))
	stats := Stats{Items: len(boxes), Workers: b.opts.Workers}
	if len(boxes) == 0 {
		return stats
	}

	rootBox := b.partitioner.ComputeBBox(boxes, 0, len(boxes))
	b.boxes = boxes
	b.rootArea = float64(PB(&rootBox).HalfSurfaceArea())
	b.pending = queue.New()
	b.pending.Add(buildTask{begin: 0, end: len(boxes)})

	workerStats := make([]Stats, b.opts.Workers)
	var wg sync.WaitGroup
	for w := range workerStats {
		wg.Add(1)
		go func(ws *Stats) {
			defer wg.Done()
			b.work(ws)
		}(&workerStats[w])
	}
	wg.Wait()

	for _, ws := range workerStats {
		stats.merge(ws)
	}
	stats.BuildTime = time.Since(start)
	b.boxes = nil

	b.logger.Debugf(
		"BVH build time: %d ms, workers: %d, maxDepth: %d, nodes: %d, leafs: %d",
		stats.BuildTime.Nanoseconds()/1e6, stats.Workers,
		stats.MaxDepth, stats.Nodes, stats.Leafs,
	)
	return stats
}

// Process ranges until no work is left.
func (b *Builder[S, B, PB]) work(stats *Stats) {
	scratch := NewScratch[S](0)
	for {
		task, ok := b.next()
		if !ok {
			return
		}
		b.process(scratch, task, stats)
		b.finish()
	}
}

// Partition a single range and enqueue its children.
func (b *Builder[S, B, PB]) process(scratch *Scratch[S], task buildTask, stats *Stats) {
	if task.depth > stats.MaxDepth {
		stats.MaxDepth = task.depth
	}

	cfg := b.partitioner.Config()
	bbox := b.partitioner.ComputeBBox(b.boxes, task.begin, task.end)
	areaRatio := b.areaRatio(PB(&bbox).HalfSurfaceArea())

	count := task.end - task.begin
	split := Split[S]{Pivot: task.end, Axis: NoAxis, Reason: LeafBySize}
	if count > 1 {
		split = b.partitioner.PartitionWith(scratch, b.boxes, task.begin, task.end, &bbox)
	}

	if split.IsLeaf() {
		stats.Leafs++
		stats.LeafReasons[split.Reason]++
		stats.MaxLeafItems = max(stats.MaxLeafItems, count)
		stats.SAHCost += float64(count) * float64(cfg.IntersectionCost) * areaRatio
		if b.opts.OnLeaf != nil {
			b.opts.OnLeaf(task.begin, task.end, task.depth)
		}
		return
	}

	stats.Nodes++
	stats.SAHCost += float64(cfg.InteriorTraversalCost) * areaRatio
	if b.opts.OnSplit != nil {
		b.opts.OnSplit(task.begin, split.Pivot, task.end, split.Axis, task.depth)
	}

	b.push(
		buildTask{begin: task.begin, end: split.Pivot, depth: task.depth + 1},
		buildTask{begin: split.Pivot, end: task.end, depth: task.depth + 1},
	)
}

// The probability of a ray hitting the root also hitting a box of this area.
func (b *Builder[S, B, PB]) areaRatio(area S) float64 {
	if b.rootArea <= 0 {
		return 0
	}
	return float64(area) / b.rootArea
}

func (b *Builder[S, B, PB]) push(tasks ...buildTask) {
	b.mu.Lock()
	for _, task := range tasks {
		b.pending.Add(task)
	}
	b.mu.Unlock()
	b.cond.Broadcast()
}

// Dequeue the next range. Returns false when the queue is drained and no
// range is being processed.
func (b *Builder[S, B, PB]) next() (buildTask, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.pending.Length() == 0 && b.inFlight > 0 {
		b.cond.Wait()
	}
	if b.pending.Length() == 0 {
		return buildTask{}, false
	}

	b.inFlight++
	return b.pending.Remove().(buildTask), true
}

func (b *Builder[S, B, PB]) finish() {
	b.mu.Lock()
	b.inFlight--
	done := b.inFlight == 0 && b.pending.Length() == 0
	b.mu.Unlock()

	if done {
		b.cond.Broadcast()
	}
}
