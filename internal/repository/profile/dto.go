package profile

import (
	"encoding/binary"
	"encoding/json"
	"math"

	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
)

// Reserved hash field names. Interests are JSON-encoded so tag values may
// contain any separator character.
const (
	fieldName        = "__name"
	fieldAffiliation = "__affiliation"
	fieldInterests   = "__interests"
	fieldVector      = "__vector"
)

// buildHashFields converts a domain Profile into a flat map[string]string for HSET.
func buildHashFields(p *domprof.Profile) map[string]string {
	m := map[string]string{
		fieldName:        p.Name(),
		fieldAffiliation: p.Affiliation(),
		fieldVector:      vectorToBytes(p.Embedding()),
	}
	if len(p.Interests()) > 0 {
		if data, err := json.Marshal(p.Interests()); err == nil {
			m[fieldInterests] = string(data)
		}
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Profile.
func parseHashFields(id string, m map[string]string) domprof.Profile {
	var interests []string
	if raw := m[fieldInterests]; raw != "" {
		// A corrupt field degrades to no interests, never to a failure.
		_ = json.Unmarshal([]byte(raw), &interests)
	}
	return domprof.New(
		id,
		m[fieldName],
		m[fieldAffiliation],
		interests,
		bytesToVector(m[fieldVector]),
	)
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
// A truncated value yields nil, which scores as similarity 0 downstream.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
