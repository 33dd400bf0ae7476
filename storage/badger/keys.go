package badger

// Key prefixes for different data types
const (
	partPrefix = "part"
)

// makePartKey generates a key for a part record by part number.
func makePartKey(partNumber string) []byte {
	return []byte(partPrefix + ":" + partNumber)
}

// partNumberFromKey recovers the part number from a part record key.
func partNumberFromKey(key []byte) string {
	return string(key[len(partPrefix)+1:])
}
