// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package themes

import (
	"math"
	"math/rand/v2"
)

const (
	// DefaultSeed fixes k-means++ seeding so identical input gives identical themes.
	DefaultSeed = 42
	// DefaultRestarts is the number of independent seedings tried.
	DefaultRestarts = 10
	// DefaultMaxIterations bounds Lloyd iterations per restart.
	DefaultMaxIterations = 300
)

// clustering is the result of one k-means run.
type clustering struct {
	labels  []int
	inertia float64
}

// kmeans partitions points into k clusters and returns the lowest-inertia
// labeling over restarts runs. All restarts draw from one seeded source.
func kmeans(points [][]float64, k, restarts, maxIter int, seed uint64) clustering {
	rng := rand.New(rand.NewPCG(seed, 0))

	best := clustering{inertia: math.Inf(1)}
	for r := 0; r < restarts; r++ {
		centers := seedPlusPlus(points, k, rng)
		result := lloyd(points, centers, maxIter)
		// Strict comparison keeps the earliest restart on ties
		if result.inertia < best.inertia {
			best = result
		}
	}
	return best
}

// seedPlusPlus picks k initial centers: the first uniformly, each next one
// with probability proportional to its squared distance from the nearest
// chosen center.
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centers := make([][]float64, 0, k)
	centers = append(centers, points[rng.IntN(n)])

	nearest := make([]float64, n)
	for i, p := range points {
		nearest[i] = squaredDistance(p, centers[0])
	}

	for len(centers) < k {
		var total float64
		for _, d := range nearest {
			total += d
		}

		next := 0
		if total == 0 {
			// Every point coincides with a center
			next = rng.IntN(n)
		} else {
			target := rng.Float64() * total
			for i, d := range nearest {
				if d == 0 {
					continue
				}
				next = i
				target -= d
				if target <= 0 {
					break
				}
			}
		}

		center := points[next]
		centers = append(centers, center)
		for i, p := range points {
			if d := squaredDistance(p, center); d < nearest[i] {
				nearest[i] = d
			}
		}
	}

	// Copy so Lloyd updates never alias input points
	out := make([][]float64, k)
	for i, c := range centers {
		out[i] = append([]float64(nil), c...)
	}
	return out
}

// lloyd alternates assignment and update steps until labels stop changing.
func lloyd(points [][]float64, centers [][]float64, maxIter int) clustering {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			label := nearestCenter(p, centers)
			if label != labels[i] {
				labels[i] = label
				changed = true
			}
		}
		if !changed {
			break
		}

		members := make([][]int, len(centers))
		for i, label := range labels {
			members[label] = append(members[label], i)
		}
		for c := range centers {
			// An empty cluster keeps its previous center
			if len(members[c]) > 0 {
				centers[c] = centroid(points, members[c])
			}
		}
	}

	var inertia float64
	for i, p := range points {
		inertia += squaredDistance(p, centers[labels[i]])
	}
	return clustering{labels: labels, inertia: inertia}
}

// nearestCenter returns the index of the closest center, lowest index on ties.
func nearestCenter(p []float64, centers [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		if d := squaredDistance(p, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
