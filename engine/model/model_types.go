package model

// --- Import Types ---

// ImportedModel represents a 4-D model decoded from a model file.
// This is the universal format that loader backends produce.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Vertices are the mesh vertices in file order.
	Vertices []GPUVertex4D

	// Indices are the vertex indices, grouped by the mesh topology.
	Indices []uint32
}
