// Package layout computes the size, alignment, and stride a type would
// occupy in a uniform or storage buffer.
//
// The SPIR-V backend treats this as a pre-computed fact of the incoming
// IR: struct member offsets and array strides already live on
// ir.StructMember.Offset and ir.ArrayType.Stride, filled in by whatever
// front-end built the module. The backend uses StdLayouter only for the
// MatrixStride of matrix struct members, which the IR does not carry;
// ArrayStride and Offset come from the IR fields above.
package layout

import "github.com/shaderforge/spirvgen/ir"

// Layout reports the size and alignment requirements of a type under the
// std430-like rules SPIR-V storage-class layouts are built from.
type Layout struct {
	Size      uint32
	Alignment uint32
}

// Layouter resolves size/alignment/stride facts about IR types.
type Layouter interface {
	// Resolve returns the layout of the type named by handle.
	Resolve(handle ir.TypeHandle) (Layout, error)
	// Pad returns the number of padding bytes needed after offset to
	// reach the next multiple of align.
	Pad(offset, align uint32) uint32
}

// StdLayouter computes layout using WGSL's std430-derived rules: scalars
// are sized by their width, vectors are size-of-scalar times element
// count (rounded up to the next power-of-two vector width for
// alignment), and matrices are laid out as an array of column vectors.
type StdLayouter struct {
	module *ir.Module
}

// NewStdLayouter builds a Layouter over the given module's type arena.
func NewStdLayouter(module *ir.Module) *StdLayouter {
	return &StdLayouter{module: module}
}

func (l *StdLayouter) Resolve(handle ir.TypeHandle) (Layout, error) {
	return l.resolveInner(l.module.Types[handle].Inner)
}

func (l *StdLayouter) resolveInner(inner ir.TypeInner) (Layout, error) {
	switch t := inner.(type) {
	case ir.ScalarType:
		w := uint32(t.Width)
		return Layout{Size: w, Alignment: w}, nil

	case ir.VectorType:
		scalarWidth := uint32(t.Scalar.Width)
		size := scalarWidth * uint32(t.Size)
		return Layout{Size: size, Alignment: vectorAlignment(t.Size, scalarWidth)}, nil

	case ir.MatrixType:
		// A matrix is laid out as Columns column vectors of Rows
		// components; each column's alignment is a vec-of-Rows alignment,
		// rounded to a vec4 boundary as SPIR-V's MatrixStride requires.
		colWidth := uint32(t.Scalar.Width)
		colAlign := vectorAlignment(t.Rows, colWidth)
		stride := roundUp(colAlign, 16)
		return Layout{Size: stride * uint32(t.Columns), Alignment: stride}, nil

	case ir.ArrayType:
		elem, err := l.Resolve(t.Base)
		if err != nil {
			return Layout{}, err
		}
		stride := t.Stride
		if stride == 0 {
			stride = roundUp(elem.Size, 16)
		}
		count := uint32(1)
		if t.Size.Constant != nil {
			count = *t.Size.Constant
		}
		return Layout{Size: stride * count, Alignment: roundUp(elem.Alignment, 16)}, nil

	case ir.StructType:
		var maxAlign uint32 = 1
		for _, m := range t.Members {
			ml, err := l.Resolve(m.Type)
			if err != nil {
				return Layout{}, err
			}
			if ml.Alignment > maxAlign {
				maxAlign = ml.Alignment
			}
		}
		span := t.Span
		if span == 0 {
			span = roundUp(span, maxAlign)
		}
		return Layout{Size: span, Alignment: roundUp(maxAlign, 16)}, nil

	case ir.PointerType:
		return Layout{Size: 4, Alignment: 4}, nil

	default:
		return Layout{Size: 0, Alignment: 1}, nil
	}
}

func (l *StdLayouter) Pad(offset, align uint32) uint32 {
	return roundUp(offset, align) - offset
}

// vectorAlignment applies the layout rule the specification calls out
// explicitly: a 2-component vector aligns to twice its scalar width, while
// 3- and 4-component vectors both align to four times the scalar width
// (a vec3 occupies the same 16-byte-aligned slot a vec4 would; SPIR-V's
// std430 rules never give vec3 a tighter alignment than vec4).
func vectorAlignment(size ir.VectorSize, scalarWidth uint32) uint32 {
	if size == ir.Vec2 {
		return 2 * scalarWidth
	}
	return 4 * scalarWidth
}

func roundUp(value, align uint32) uint32 {
	if align == 0 {
		return value
	}
	return (value + align - 1) / align * align
}
