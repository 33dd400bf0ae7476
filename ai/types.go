package ai

// ComplexityLevel grades how difficult an order is to fulfill.
type ComplexityLevel string

const (
	// ComplexitySimple - standard stock items, no special processing.
	ComplexitySimple ComplexityLevel = "simple"
	// ComplexityModerate - some custom dimensions or substitutions likely.
	ComplexityModerate ComplexityLevel = "moderate"
	// ComplexityComplex - exotic materials, tight tolerances, or
	// certifications; expect engineering review.
	ComplexityComplex ComplexityLevel = "complex"
)

// ComplexityLevels lists the valid levels in increasing order of difficulty.
var ComplexityLevels = []ComplexityLevel{ComplexitySimple, ComplexityModerate, ComplexityComplex}

// ValidComplexityLevel reports whether the level is one of the known values.
func ValidComplexityLevel(level ComplexityLevel) bool {
	for _, l := range ComplexityLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Forms lists the stock forms the extractor is asked to normalize to.
// Free-form values are still accepted from source documents.
var Forms = []string{
	"bar",
	"rod",
	"sheet",
	"plate",
	"tube",
	"pipe",
	"angle",
	"channel",
	"beam",
	"wire",
	"coil",
	"fitting",
	"fastener",
}
