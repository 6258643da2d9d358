package meshing

// Face is one of the six axis-aligned directions a unit quad can face.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

func (f Face) String() string {
	switch f {
	case FacePosX:
		return "+X"
	case FaceNegX:
		return "-X"
	case FacePosY:
		return "+Y"
	case FaceNegY:
		return "-Y"
	case FacePosZ:
		return "+Z"
	case FaceNegZ:
		return "-Z"
	default:
		return "?"
	}
}

type faceDef struct {
	normal  [3]int
	corners [4][3]int // offsets from the voxel's minimum corner
}

// faceTable lists the neighbour offset and corner order of every face, in
// the order faces are emitted for a voxel.
var faceTable = [6]faceDef{
	FacePosX: {normal: [3]int{1, 0, 0}, corners: [4][3]int{{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {1, 1, 0}}},
	FaceNegX: {normal: [3]int{-1, 0, 0}, corners: [4][3]int{{0, 0, 1}, {0, 0, 0}, {0, 1, 0}, {0, 1, 1}}},
	FacePosY: {normal: [3]int{0, 1, 0}, corners: [4][3]int{{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}}},
	FaceNegY: {normal: [3]int{0, -1, 0}, corners: [4][3]int{{0, 0, 1}, {1, 0, 1}, {1, 0, 0}, {0, 0, 0}}},
	FacePosZ: {normal: [3]int{0, 0, 1}, corners: [4][3]int{{1, 0, 1}, {0, 0, 1}, {0, 1, 1}, {1, 1, 1}}},
	FaceNegZ: {normal: [3]int{0, 0, -1}, corners: [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}},
}

// quadTriangles indexes a face's four corners as two triangles.
var quadTriangles = [6]uint32{0, 2, 1, 0, 3, 2}

// Normal returns the outward unit normal of f.
func (f Face) Normal() [3]int {
	return faceTable[f].normal
}
