package rsf

import (
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// indexedPoint pairs a point with its position in the original stream, so a
// distributed protocol can report anomalies as indices into the caller's
// input rather than bare coordinates.
type indexedPoint struct {
	index int
	point []float32
}

// distribute partitions points into cfg.NMachines contiguous shards of a
// randomly shuffled index space: it draws n_machines-1 uniform split points,
// sorts them, and slices the (index, point) pairs at those boundaries.
// n_machines=1 degenerates to a single shard holding every point in
// original order.
func distribute(points [][]float32, nMachines int, rng interface{ Intn(int) int }) [][]indexedPoint {
	n := len(points)
	indexed := make([]indexedPoint, n)
	for i, p := range points {
		indexed[i] = indexedPoint{index: i, point: p}
	}
	if nMachines <= 1 {
		return [][]indexedPoint{indexed}
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indexed[i], indexed[j] = indexed[j], indexed[i]
	}

	splits := make([]int, 0, nMachines+1)
	splits = append(splits, 0, n)
	for i := 0; i < nMachines-1; i++ {
		splits = append(splits, rng.Intn(n+1))
	}
	sort.Ints(splits)

	shards := make([][]indexedPoint, 0, nMachines)
	for i := 0; i+1 < len(splits); i++ {
		from, to := splits[i], splits[i+1]
		shards = append(shards, indexed[from:to])
	}
	return shards
}

// retain keeps only the n1 lowest-scoring entries of ps, matching their
// positions against scores index for index.
func retain(ps []indexedPoint, scores []float32, n1 int) []indexedPoint {
	keep := kSmallest(scores, n1)
	out := make([]indexedPoint, len(keep))
	for i, k := range keep {
		out[i] = ps[k]
	}
	return out
}

// OneWayCoordinator implements the single-pass distributed protocol: every
// shard independently builds a partial forest, scores its own points,
// retains its n1 most anomalous candidates, and sketches its forest; the
// coordinator merges every shard's sketch into one forest by re-inserting
// (Forest.Extend), rescoring the union of candidates against the merged
// forest, and retaining the global n1 most anomalous.
func OneWayCoordinator(points [][]float32, cfg *Config, n1 int, logger *zap.Logger) (*Forest, []int, error) {
	logger = nonNilLogger(logger)
	sampleSize := cfg.NPoints / cfg.NMachines
	shards := distribute(points, cfg.NMachines, cfg.Rng())
	logger.Info("distributed one-way: sharded input", zap.Int("shards", len(shards)), zap.Int("sample_size", sampleSize))

	sketches := make([]*Forest, len(shards))
	candidateShards := make([][]indexedPoint, len(shards))

	var g errgroup.Group
	for i, shard := range shards {
		i, shard := i, shard
		g.Go(func() error {
			f, err := NewForest(cfg)
			if err != nil {
				return err
			}
			rng := cfg.Rng()
			for t := 0; t < f.NTrees(); t++ {
				sample := sampleWithoutReplacement(shard, sampleSize, rng)
				for _, ip := range sample {
					f.Tree(t).Insert(ip.point)
				}
			}
			scores := make([]float32, len(shard))
			for j, ip := range shard {
				scores[j] = f.Score(ip.point)
			}
			candidateShards[i] = retain(shard, scores, n1)
			f.Sketch()
			sketches[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	candidates := lo.Flatten(candidateShards)

	merged, err := NewForest(cfg)
	if err != nil {
		return nil, nil, err
	}
	for _, sketch := range sketches {
		merged.Extend(sketch)
	}

	scores := make([]float32, len(candidates))
	for i, ip := range candidates {
		scores[i] = merged.Score(ip.point)
	}
	final := retain(candidates, scores, n1)
	anomalies := make([]int, len(final))
	for i, ip := range final {
		anomalies[i] = ip.index
	}
	logger.Info("distributed one-way: done", zap.Int("candidates", len(candidates)), zap.Int("anomalies", len(anomalies)))
	return merged, anomalies, nil
}

// TwoWayParStreams implements the two-pass distributed protocol: pass one
// streams every shard's points (in shard order) through a shared
// ParStreamSampler to build one globally-representative sample, which
// seeds a single forest; pass two scores every shard's points against that
// forest in parallel, keeping each shard's local top-n1 before a final
// global top-n1 merge.
func TwoWayParStreams(points [][]float32, cfg *Config, n1 int, logger *zap.Logger) (*Forest, []int, error) {
	logger = nonNilLogger(logger)
	shards := distribute(points, cfg.NMachines, cfg.Rng())

	sampler := NewParStreamSampler(cfg)
	for m, shard := range shards {
		for _, ip := range shard {
			sampler.Insert(m, ip.point)
		}
	}
	sample := sampler.Query()
	logger.Info("distributed two-way: pass one done", zap.Int("sample_size", len(sample)))

	f, err := NewForest(cfg)
	if err != nil {
		return nil, nil, err
	}
	f.BatchInsert(sample)
	f.Sketch()

	type scored struct {
		indexedPoint
		score float32
	}
	shardCandidates := make([][]scored, len(shards))
	var g errgroup.Group
	for i, shard := range shards {
		i, shard := i, shard
		g.Go(func() error {
			local := make([]scored, len(shard))
			for j, ip := range shard {
				local[j] = scored{indexedPoint: ip, score: f.Score(ip.point)}
			}
			sort.Slice(local, func(a, b int) bool { return local[a].score < local[b].score })
			if len(local) > n1 {
				local = local[:n1]
			}
			shardCandidates[i] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	all := make([]scored, 0, len(shards)*n1)
	for _, sc := range shardCandidates {
		all = append(all, sc...)
	}
	sort.Slice(all, func(a, b int) bool { return all[a].score < all[b].score })
	if len(all) > n1 {
		all = all[:n1]
	}
	anomalies := make([]int, len(all))
	for i, sc := range all {
		anomalies[i] = sc.index
	}
	logger.Info("distributed two-way: done", zap.Int("anomalies", len(anomalies)))
	return f, anomalies, nil
}

func nonNilLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// sampleWithoutReplacement picks up to n distinct entries from shard,
// matching rand::seq::choose_multiple's behavior of returning the whole
// shard if it's smaller than n.
func sampleWithoutReplacement(shard []indexedPoint, n int, rng interface{ Perm(int) []int }) []indexedPoint {
	if n >= len(shard) {
		return shard
	}
	perm := rng.Perm(len(shard))
	out := make([]indexedPoint, n)
	for i := 0; i < n; i++ {
		out[i] = shard[perm[i]]
	}
	return out
}
