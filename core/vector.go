package core

import "math"

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// DotProduct calculates the dot product of two vectors.
// For unit vectors this equals cosine similarity.
func DotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// CosineSimilarity calculates the cosine similarity of two vectors,
// normalizing on the fly. Returns 0 when either vector has zero magnitude.
func CosineSimilarity(a, b []float32) float32 {
	dot := DotProduct(a, b)

	var magA, magB float32
	for _, v := range a {
		magA += v * v
	}
	for _, v := range b {
		magB += v * v
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(magA))) * float32(math.Sqrt(float64(magB))))
}
