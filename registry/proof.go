package registry

import (
	"fmt"

	mt "github.com/txaty/go-merkletree"
)

// InclusionProof is a Merkle path: siblings from the leaf up and one path bit
// per level. Path bits follow go-merkletree: 1 when the node is a left child,
// so they are the complement of the entry index bits.
type InclusionProof struct {
	Siblings []Hash
	Path     []uint8
}

func getNativeInclusionProof(mtProof *mt.Proof) InclusionProof {
	siblings := make([]Hash, len(mtProof.Siblings))
	path := make([]uint8, len(mtProof.Siblings))
	pathBin := mtProof.Path
	for i := 0; i < len(mtProof.Siblings); i++ {
		siblings[i] = mtProof.Siblings[i]
		path[i] = uint8(pathBin & 1)
		pathBin >>= 1
	}
	return InclusionProof{
		Siblings: siblings,
		Path:     path,
	}
}

func (p *InclusionProof) mtProof() (*mt.Proof, error) {
	if len(p.Siblings) != len(p.Path) {
		return nil, fmt.Errorf("%d siblings but %d path bits", len(p.Siblings), len(p.Path))
	}
	if len(p.Path) > 32 {
		return nil, fmt.Errorf("path of %d levels is too deep", len(p.Path))
	}
	out := &mt.Proof{Siblings: make([][]byte, len(p.Siblings))}
	for i := range p.Siblings {
		out.Siblings[i] = p.Siblings[i]
		if p.Path[i] > 1 {
			return nil, fmt.Errorf("path bit %d is %d", i, p.Path[i])
		}
		out.Path |= uint32(p.Path[i]) << i
	}
	return out, nil
}

// Verify checks that entry is committed under root. It needs no registry
// state.
func Verify(root []byte, entry Entry, p *InclusionProof) (bool, error) {
	if p == nil {
		return false, fmt.Errorf("nil proof")
	}
	mtProof, err := p.mtProof()
	if err != nil {
		return false, err
	}
	return mt.Verify(entry.leaf(), mtProof, root, treeConfig())
}
