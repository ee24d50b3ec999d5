package model

// HypercubeVertexCount is the number of corners of a tesseract.
const HypercubeVertexCount = 16

// HypercubeTetrahedra is the number of tetrahedra the tesseract surface is split into.
const HypercubeTetrahedra = 58

// hypercubeIndices tessellates the boundary cells of the tesseract into tetrahedra, four indices
// per tetrahedron. Corner i has bit 3 on x, bit 2 on y, bit 1 on z and bit 0 on w.
var hypercubeIndices = [HypercubeTetrahedra * 4]uint32{
	9, 13, 14, 15,
	12, 9, 13, 14,
	9, 11, 13, 15,
	11, 9, 14, 15,
	9, 10, 11, 14,
	12, 9, 14, 8,
	9, 12, 13, 8,
	9, 10, 14, 8,
	10, 9, 11, 8,
	6, 2, 4, 0,
	6, 4, 8, 0,
	2, 6, 8, 0,
	6, 10, 14, 2,
	12, 6, 14, 4,
	12, 6, 4, 8,
	6, 12, 14, 8,
	6, 10, 2, 8,
	10, 6, 14, 8,
	4, 5, 8, 0,
	1, 5, 4, 0,
	5, 1, 8, 0,
	9, 5, 13, 1,
	5, 12, 4, 8,
	12, 5, 13, 8,
	9, 5, 1, 8,
	5, 9, 13, 8,
	13, 5, 14, 15,
	7, 5, 13, 15,
	5, 12, 13, 14,
	5, 7, 14, 15,
	6, 5, 7, 14,
	5, 12, 14, 4,
	6, 5, 14, 4,
	5, 6, 7, 4,
	3, 2, 8, 0,
	1, 3, 8, 0,
	10, 3, 2, 8,
	3, 10, 11, 8,
	3, 9, 1, 8,
	9, 3, 11, 8,
	2, 3, 4, 0,
	3, 1, 4, 0,
	3, 6, 2, 4,
	6, 3, 7, 4,
	5, 3, 1, 4,
	3, 5, 7, 4,
	3, 11, 14, 15,
	7, 3, 14, 15,
	10, 3, 11, 14,
	3, 6, 7, 14,
	10, 3, 14, 2,
	3, 6, 14, 2,
	11, 3, 13, 15,
	3, 7, 13, 15,
	3, 9, 11, 13,
	5, 3, 7, 13,
	3, 9, 13, 1,
	5, 3, 13, 1,
}

// Hypercube builds an axis-aligned tesseract centered on the origin with the given edge length.
// Each corner carries a 3-D texture coordinate taken from its y, z and w bits. The x-positive
// half complements those bits, mirroring the x-negative half, so that opposite corners sample
// opposite texels.
//
// Parameters:
//   - size: the edge length
//
// Returns:
//   - Model: the tesseract, indexed for the tetrahedra topology
func Hypercube(size float32) Model {
	half := size / 2
	vertices := make([]GPUVertex4D, HypercubeVertexCount)
	for i := range vertices {
		for axis := range 4 {
			if i>>(3-axis)&1 == 1 {
				vertices[i].Position[axis] = half
			} else {
				vertices[i].Position[axis] = -half
			}
		}

		tex := i
		if i >= 8 {
			tex = 15 - i
		}
		for axis := range 3 {
			vertices[i].TexCoord[axis] = float32(tex >> (2 - axis) & 1)
		}
	}

	indices := make([]uint32, len(hypercubeIndices))
	copy(indices, hypercubeIndices[:])

	return NewModel(
		WithName("hypercube"),
		WithVertices(vertices),
		WithIndices(indices),
	)
}
