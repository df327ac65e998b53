package themes

import "math"

// toFloat64 widens an embedding so accumulation does not lose precision.
func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func magnitude(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

// cosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector has zero magnitude.
func cosineSimilarity(a, b []float64) float64 {
	ma, mb := magnitude(a), magnitude(b)
	if ma == 0 || mb == 0 {
		return 0
	}
	return dot(a, b) / (ma * mb)
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// centroid returns the coordinate-wise mean of the selected points.
func centroid(points [][]float64, members []int) []float64 {
	if len(members) == 0 {
		return nil
	}
	mean := make([]float64, len(points[members[0]]))
	for _, idx := range members {
		for d, x := range points[idx] {
			mean[d] += x
		}
	}
	n := float64(len(members))
	for d := range mean {
		mean[d] /= n
	}
	return mean
}
