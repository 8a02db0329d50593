package domain

// KeyPrefix namespaces every key the service writes to the store.
const KeyPrefix = "scholarmatch:"

// VectorConfig holds the embedding dimensionality contract.
type VectorConfig struct {
	Dimensions int
}

// DefaultVectorConfig returns the default embedding dimensionality.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{Dimensions: 1024}
}
