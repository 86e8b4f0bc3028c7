package engine

import (
	"math/rand"
	"sort"

	"github.com/cargostow/loadengine/internal/model"
)

// GeneticConfig holds parameters for the genetic box-ordering optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// gene is a single instance placement decision: which instance goes
// next, plus a floor-rotation flag. The flag is randomized and mutated
// with the ordering, but decode does not read it: bestCandidate picks
// each instance's orientation on its own.
type gene struct {
	instanceIdx int
	rotated     bool
}

// chromosome is a candidate ordering of box instances.
type chromosome struct {
	genes   []gene
	fitness float64
}

// geneticBoxOptimizer searches orderings of box instances, decoding
// each chromosome through the same free-block packer used by the
// default strategy, to find an ordering that beats the greedy
// height-descending heuristic on volumetric fill. It is an optional
// alternate strategy: the default orchestrator path uses the greedy
// sort directly.
type geneticBoxOptimizer struct {
	container  volumeBox
	instances  []boxInstance
	objectGap  float64
	wallMargin float64
	config     GeneticConfig
	rng        *rand.Rand
}

// volumeBox is the subset of model.Dimensions the optimizer needs to
// build fresh packers per candidate without importing model directly
// into every helper signature.
type volumeBox struct {
	width, length, height float64
}

func newGeneticBoxOptimizer(container volumeBox, instances []boxInstance, objectGap, wallMargin float64, config GeneticConfig, seed int64) *geneticBoxOptimizer {
	return &geneticBoxOptimizer{
		container:  container,
		instances:  instances,
		objectGap:  objectGap,
		wallMargin: wallMargin,
		config:     config,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// optimize runs the genetic algorithm and returns the best decoded
// result: placed items plus whichever instances still didn't fit.
func (g *geneticBoxOptimizer) optimize() (placed []placement, unplaced []boxInstance) {
	n := len(g.instances)
	if n == 0 {
		return nil, nil
	}

	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := g.config.EliteCount
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)
			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)
			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})

	return g.decode(population[0])
}

func (g *geneticBoxOptimizer) initPopulation() []chromosome {
	n := len(g.instances)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			canRotate := g.instances[perm[j]].source.AllowedRotation.Y
			genes[j] = gene{
				instanceIdx: perm[j],
				rotated:     canRotate && g.rng.Float64() < 0.5,
			}
		}
		population[i] = chromosome{genes: genes}
	}

	if g.config.PopulationSize > 0 {
		population[0] = g.greedyChromosome()
	}
	return population
}

// greedyChromosome seeds the population with the descending
// (height, volume) order used by the default strategy, so the GA
// never does worse than the greedy baseline.
func (g *geneticBoxOptimizer) greedyChromosome() chromosome {
	n := len(g.instances)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(i, j int) bool {
		di, dj := g.instances[indices[i]].source.Dimensions, g.instances[indices[j]].source.Dimensions
		if di.Height != dj.Height {
			return di.Height > dj.Height
		}
		return di.Volume() > dj.Volume()
	})

	genes := make([]gene, n)
	for i, idx := range indices {
		genes[i] = gene{instanceIdx: idx, rotated: false}
	}
	return chromosome{genes: genes}
}

// evaluate decodes a chromosome and scores it on volumetric fill,
// penalizing unplaced instances.
func (g *geneticBoxOptimizer) evaluate(c chromosome) float64 {
	placedItems, unplacedItems := g.decode(c)

	var usedVol float64
	for _, p := range placedItems {
		usedVol += p.dims.Volume()
	}
	containerVol := g.container.width * g.container.length * g.container.height
	if containerVol == 0 {
		return 0
	}

	fill := usedVol / containerVol
	penalty := float64(len(unplacedItems)) * 0.1
	fitness := fill - penalty
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// decode runs the chromosome's ordering through a fresh boxPacker.
func (g *geneticBoxOptimizer) decode(c chromosome) (placed []placement, unplaced []boxInstance) {
	bp := &boxPacker{
		free: []block3D{{
			x: g.wallMargin, y: g.wallMargin, z: 0,
			w: g.container.width - 2*g.wallMargin,
			l: g.container.length - 2*g.wallMargin,
			h: g.container.height - g.wallMargin,
		}},
		margin: g.wallMargin,
	}

	for _, gn := range c.genes {
		inst := g.instances[gn.instanceIdx]
		cand, ok := bp.bestCandidate(inst.source, g.objectGap)
		if !ok {
			unplaced = append(unplaced, inst)
			continue
		}
		blk := bp.free[cand.blockIdx]
		pos := model.Vector3{X: blk.x, Y: blk.y, Z: blk.z}
		bp.split(cand.blockIdx, cand.w, cand.l, cand.h)

		d := inst.source.Dimensions
		dims := model.Dimensions{Width: d.Width, Length: d.Length, Height: d.Height}
		rotation := model.Vector3{}
		if cand.rotated {
			dims = d.Swapped()
			rotation.Y = halfPi
		}
		placed = append(placed, placement{
			source:   inst.source,
			position: pos,
			dims:     dims,
			rotation: rotation,
		})
	}
	return placed, unplaced
}

func (g *geneticBoxOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
func (g *geneticBoxOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}
	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].instanceIdx] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.instanceIdx] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}
	return child
}

func (g *geneticBoxOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		if g.instances[c.genes[i].instanceIdx].source.AllowedRotation.Y {
			c.genes[i].rotated = !c.genes[i].rotated
		}
	}

	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

func (g *geneticBoxOptimizer) copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// scaledGeneticConfig grows population/generation counts for larger
// manifests, trading runtime for solution quality as the problem grows.
func scaledGeneticConfig(n int) GeneticConfig {
	config := DefaultGeneticConfig()
	if n > 20 {
		config.Generations = 150
	}
	if n > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}
	return config
}
