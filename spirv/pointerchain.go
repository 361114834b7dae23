package spirv

import (
	"github.com/pkg/errors"

	"github.com/shaderforge/spirvgen/ir"
)

// pointerChain describes a fully-walked place expression: a root storage
// location plus the sequence of indices needed to reach the addressed
// element, in root-to-leaf order.
type pointerChain struct {
	rootID       uint32
	storageClass StorageClass
	indexIDs     []uint32
	pointeeType  ir.TypeResolution
}

// resolvePointerChain walks an Access/AccessIndex chain rooted at a
// GlobalVariable or LocalVariable expression and returns a description
// of the single OpAccessChain it lowers to (emitted later by
// emitPointerChainAccess). The walk recurses to the root first and
// appends each level's index on the way back out, so indices naturally
// accumulate in root-to-leaf order without a separate reversal pass.
//
// ok is false when expr is not rooted at a variable (e.g. a pure value
// expression such as a vector produced by OpCompositeConstruct); callers
// must fall back to value-based extraction in that case.
func (e *ExpressionEmitter) resolvePointerChain(expr ir.ExpressionHandle) (*pointerChain, bool, error) {
	return e.walkPointerChain(expr)
}

func (e *ExpressionEmitter) walkPointerChain(expr ir.ExpressionHandle) (*pointerChain, bool, error) {
	kind := e.function.Expressions[expr].Kind

	switch k := kind.(type) {
	case ir.ExprGlobalVariable:
		global := e.backend.module.GlobalVariables[k.Variable]
		id, ok := e.backend.globalIDs[k.Variable]
		if !ok {
			return nil, false, errors.Errorf("pointer chain: global variable %d has no allocated id", k.Variable)
		}
		h := global.Type
		return &pointerChain{
			rootID:       id,
			storageClass: addressSpaceToStorageClass(global.Space),
			pointeeType:  ir.TypeResolution{Handle: &h},
		}, true, nil

	case ir.ExprLocalVariable:
		if int(k.Variable) >= len(e.localVarIDs) {
			return nil, false, errors.Errorf("pointer chain: local variable index %d out of range", k.Variable)
		}
		local := e.function.LocalVars[k.Variable]
		h := local.Type
		return &pointerChain{
			rootID:       e.localVarIDs[k.Variable],
			storageClass: StorageClassFunction,
			pointeeType:  ir.TypeResolution{Handle: &h},
		}, true, nil

	case ir.ExprFunctionArgument:
		// Function arguments are plain values unless the argument type is
		// itself a pointer (not modeled here); treat as non-place.
		return nil, false, nil

	case ir.ExprAccess:
		base, ok, err := e.walkPointerChain(k.Base)
		if err != nil || !ok {
			return nil, ok, err
		}
		indexID, err := e.emitExpression(k.Index)
		if err != nil {
			return nil, false, err
		}
		elemType, err := e.chainElementType(base.pointeeType)
		if err != nil {
			return nil, false, err
		}
		base.indexIDs = append(base.indexIDs, indexID)
		base.pointeeType = elemType
		return base, true, nil

	case ir.ExprAccessIndex:
		base, ok, err := e.walkPointerChain(k.Base)
		if err != nil || !ok {
			return nil, ok, err
		}
		elemType, err := e.chainMemberType(base.pointeeType, k.Index)
		if err != nil {
			return nil, false, err
		}
		u32Type := e.backend.emitScalarType(ir.ScalarType{Kind: ir.ScalarUint, Width: 4})
		indexID := e.backend.builder.AddConstant(u32Type, k.Index)
		base.indexIDs = append(base.indexIDs, indexID)
		base.pointeeType = elemType
		return base, true, nil

	default:
		return nil, false, nil
	}
}

// chainElementType resolves the element type reached by a dynamically
// indexed array/vector/matrix step of a pointer chain.
func (e *ExpressionEmitter) chainElementType(t ir.TypeResolution) (ir.TypeResolution, error) {
	inner := e.innerOf(t)
	switch v := inner.(type) {
	case ir.ArrayType:
		h := v.Base
		return ir.TypeResolution{Handle: &h}, nil
	case ir.VectorType:
		return ir.TypeResolution{Value: v.Scalar}, nil
	case ir.MatrixType:
		return ir.TypeResolution{Value: ir.VectorType{Size: v.Rows, Scalar: v.Scalar}}, nil
	default:
		return ir.TypeResolution{}, errors.Errorf("pointer chain: cannot dynamically index into %T", inner)
	}
}

// chainMemberType resolves the element type reached by a statically
// indexed array/vector/matrix/struct step of a pointer chain.
func (e *ExpressionEmitter) chainMemberType(t ir.TypeResolution, index uint32) (ir.TypeResolution, error) {
	inner := e.innerOf(t)
	switch v := inner.(type) {
	case ir.ArrayType:
		h := v.Base
		return ir.TypeResolution{Handle: &h}, nil
	case ir.VectorType:
		return ir.TypeResolution{Value: v.Scalar}, nil
	case ir.MatrixType:
		return ir.TypeResolution{Value: ir.VectorType{Size: v.Rows, Scalar: v.Scalar}}, nil
	case ir.StructType:
		if int(index) >= len(v.Members) {
			return ir.TypeResolution{}, errors.Errorf("pointer chain: struct member index %d out of range", index)
		}
		h := v.Members[index].Type
		return ir.TypeResolution{Handle: &h}, nil
	default:
		return ir.TypeResolution{}, errors.Errorf("pointer chain: cannot index into %T", inner)
	}
}

func (e *ExpressionEmitter) innerOf(t ir.TypeResolution) ir.TypeInner {
	if t.Handle != nil {
		return e.backend.module.Types[*t.Handle].Inner
	}
	return t.Value
}

// emitPointer evaluates expr as a place expression, returning the id of the
// pointer it designates rather than a loaded value. Used by statements
// (Store, and the pointer operand of atomics) whose operand must stay a
// pointer rather than collapse through the usual value-emitting path.
func (e *ExpressionEmitter) emitPointer(expr ir.ExpressionHandle) (uint32, error) {
	chain, ok, err := e.resolvePointerChain(expr)
	if err != nil {
		return 0, err
	}
	if ok {
		ptrID, _ := e.emitPointerChainAccess(chain)
		return ptrID, nil
	}
	// Not rooted at a variable (root variables themselves take the chain
	// path above): evaluate through the ordinary expression cache.
	return e.emitExpression(expr)
}

// emitPointerChainAccess lowers the chain to a single OpAccessChain and returns the
// resulting pointer id together with the SPIR-V id of its pointee type.
func (e *ExpressionEmitter) emitPointerChainAccess(chain *pointerChain) (ptrID uint32, pointeeTypeID uint32) {
	pointeeTypeID = e.backend.resolveTypeResolution(chain.pointeeType)
	if len(chain.indexIDs) == 0 {
		return chain.rootID, pointeeTypeID
	}
	ptrType := e.backend.builder.AddTypePointer(chain.storageClass, pointeeTypeID)
	ptrID = e.backend.builder.AddAccessChain(ptrType, chain.rootID, chain.indexIDs...)
	return ptrID, pointeeTypeID
}
