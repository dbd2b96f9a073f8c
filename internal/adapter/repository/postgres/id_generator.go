package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ReferencePrefix marks external references created by this service.
const ReferencePrefix = "splt_"

// ULIDGenerator generates ULID-based external references for provider payments.
type ULIDGenerator struct {
	prefix string
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{prefix: ReferencePrefix}
}

// Generate returns a sortable, prefixed reference.
func (g *ULIDGenerator) Generate() string {
	return g.prefix + ulid.Make().String()
}
