package spirv

import (
	"encoding/binary"
	"testing"

	"github.com/shaderforge/spirvgen/ir"
)

// scanOpcodes walks the instruction stream of a compiled module (skipping the
// 20-byte header) and returns every opcode it finds, in order. Mirrors the
// word layout written by writer.go's ModuleBuilder.Build.
func scanOpcodes(t *testing.T, module []byte) []OpCode {
	t.Helper()
	if len(module) < 20 {
		t.Fatalf("module too short: %d bytes", len(module))
	}

	var opcodes []OpCode
	offset := 20
	for offset < len(module) {
		word := binary.LittleEndian.Uint32(module[offset:])
		wordCount := word >> 16
		opcode := OpCode(word & 0xffff)
		if wordCount == 0 {
			t.Fatalf("zero word count decoding instruction at offset %d", offset)
		}
		opcodes = append(opcodes, opcode)
		offset += int(wordCount) * 4
	}
	return opcodes
}

func containsOpcode(opcodes []OpCode, want OpCode) bool {
	for _, op := range opcodes {
		if op == want {
			return true
		}
	}
	return false
}

// TestBackendSwitchStatement exercises emitSwitch: a compute entry point
// switches on its local-invocation-index builtin and stores a different
// constant into a workgroup-shared result depending on which case fires,
// including a fallthrough case and the default case.
func TestBackendSwitchStatement(t *testing.T) {
	backend := NewBackend(DefaultOptions())

	u32Type := ir.Type{Name: "u32", Inner: ir.ScalarType{Kind: ir.ScalarUint, Width: 4}}

	tenConst := ir.Constant{Name: "ten", Type: 0, Value: ir.ScalarValue{Kind: ir.ScalarUint, Bits: 10}}
	twentyConst := ir.Constant{Name: "twenty", Type: 0, Value: ir.ScalarValue{Kind: ir.ScalarUint, Bits: 20}}
	ninetyNineConst := ir.Constant{Name: "ninetyNine", Type: 0, Value: ir.ScalarValue{Kind: ir.ScalarUint, Bits: 99}}

	resultGlobal := ir.GlobalVariable{
		Name:  "result",
		Space: ir.SpaceWorkGroup,
		Type:  0, // u32
	}

	indexBinding := ir.Binding(ir.BuiltinBinding{Builtin: ir.BuiltinLocalInvocationIndex})

	mainFunc := ir.Function{
		Name: "main",
		Arguments: []ir.FunctionArgument{
			{Name: "index", Type: 0, Binding: &indexBinding},
		},
		Expressions: []ir.Expression{
			{Kind: ir.ExprFunctionArgument{Index: 0}},  // 0: selector
			{Kind: ir.ExprGlobalVariable{Variable: 0}}, // 1: &result
			{Kind: ir.ExprConstant{Constant: 0}},       // 2: ten
			{Kind: ir.ExprConstant{Constant: 1}},       // 3: twenty
			{Kind: ir.ExprConstant{Constant: 2}},       // 4: ninetyNine
		},
		Body: []ir.Statement{
			{Kind: ir.StmtEmit{Range: ir.Range{Start: 0, End: 5}}},
			{Kind: ir.StmtSwitch{
				Selector: 0,
				Cases: []ir.SwitchCase{
					{
						Value:       ir.SwitchValueU32(0),
						Body:        ir.Block{{Kind: ir.StmtStore{Pointer: 1, Value: 2}}},
						FallThrough: true,
					},
					{
						Value: ir.SwitchValueU32(1),
						Body:  ir.Block{{Kind: ir.StmtStore{Pointer: 1, Value: 3}}},
					},
					{
						Value: ir.SwitchValueDefault{},
						Body:  ir.Block{{Kind: ir.StmtStore{Pointer: 1, Value: 4}}},
					},
				},
			}},
			{Kind: ir.StmtReturn{}},
		},
	}

	module := &ir.Module{
		Types:           []ir.Type{u32Type},
		Constants:       []ir.Constant{tenConst, twentyConst, ninetyNineConst},
		GlobalVariables: []ir.GlobalVariable{resultGlobal},
		Functions:       []ir.Function{mainFunc},
		EntryPoints: []ir.EntryPoint{
			{Name: "main", Stage: ir.StageCompute, Function: 0, Workgroup: [3]uint32{1, 1, 1}},
		},
	}

	compiled, err := backend.Compile(module)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	opcodes := scanOpcodes(t, compiled)
	if !containsOpcode(opcodes, OpSwitch) {
		t.Error("expected OpSwitch in compiled module")
	}
	if !containsOpcode(opcodes, OpSelectionMerge) {
		t.Error("expected OpSelectionMerge in compiled module")
	}
}

// TestBackendFunctionCall exercises emitCall: main calls a helper function
// and stores the result, verifying OpFunctionCall is emitted and both
// functions receive a function ID.
func TestBackendFunctionCall(t *testing.T) {
	backend := NewBackend(DefaultOptions())

	u32Type := ir.Type{Name: "u32", Inner: ir.ScalarType{Kind: ir.ScalarUint, Width: 4}}

	resultGlobal := ir.GlobalVariable{
		Name:  "result",
		Space: ir.SpaceWorkGroup,
		Type:  0, // u32
	}

	// Helper function: identity(x: u32) -> u32 { return x; }
	identityFunc := ir.Function{
		Name: "identity",
		Arguments: []ir.FunctionArgument{
			{Name: "x", Type: 0},
		},
		Result: &ir.FunctionResult{Type: 0},
		Expressions: []ir.Expression{
			{Kind: ir.ExprFunctionArgument{Index: 0}},
		},
		Body: []ir.Statement{
			{Kind: ir.StmtEmit{Range: ir.Range{Start: 0, End: 1}}},
			{Kind: ir.StmtReturn{Value: ptrExprHandle(0)}},
		},
	}

	indexBinding := ir.Binding(ir.BuiltinBinding{Builtin: ir.BuiltinLocalInvocationIndex})

	mainFunc := ir.Function{
		Name: "main",
		Arguments: []ir.FunctionArgument{
			{Name: "index", Type: 0, Binding: &indexBinding},
		},
		Expressions: []ir.Expression{
			{Kind: ir.ExprFunctionArgument{Index: 0}},  // 0: index
			{Kind: ir.ExprCallResult{Function: 0}},     // 1: identity(index)
			{Kind: ir.ExprGlobalVariable{Variable: 0}}, // 2: &result
		},
		Body: []ir.Statement{
			{Kind: ir.StmtCall{Function: 0, Arguments: []ir.ExpressionHandle{0}, Result: ptrExprHandle(1)}},
			{Kind: ir.StmtStore{Pointer: 2, Value: 1}},
			{Kind: ir.StmtReturn{}},
		},
	}

	module := &ir.Module{
		Types:           []ir.Type{u32Type},
		GlobalVariables: []ir.GlobalVariable{resultGlobal},
		Functions:       []ir.Function{identityFunc, mainFunc},
		EntryPoints: []ir.EntryPoint{
			{Name: "main", Stage: ir.StageCompute, Function: 1, Workgroup: [3]uint32{1, 1, 1}},
		},
	}

	compiled, err := backend.Compile(module)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	opcodes := scanOpcodes(t, compiled)
	if !containsOpcode(opcodes, OpFunctionCall) {
		t.Error("expected OpFunctionCall in compiled module")
	}
	if len(backend.functionIDs) != 2 {
		t.Errorf("expected 2 function IDs, got %d", len(backend.functionIDs))
	}
}

// TestBackendImageStore exercises emitImageStore: a compute entry point
// writes a constant color into a storage image at a fixed coordinate.
func TestBackendImageStore(t *testing.T) {
	backend := NewBackend(DefaultOptions())

	u32Type := ir.Type{Name: "u32", Inner: ir.ScalarType{Kind: ir.ScalarUint, Width: 4}}
	f32Type := ir.Type{Name: "f32", Inner: ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}}
	vec2uType := ir.Type{Name: "vec2u", Inner: ir.VectorType{Size: ir.Vec2, Scalar: ir.ScalarType{Kind: ir.ScalarUint, Width: 4}}}
	vec4fType := ir.Type{Name: "vec4f", Inner: ir.VectorType{Size: ir.Vec4, Scalar: ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}}}
	imageType := ir.Type{
		Name: "tex",
		Inner: ir.ImageType{
			Dim:   ir.Dim2D,
			Class: ir.ImageClassStorage,
		},
	}

	imageGlobal := ir.GlobalVariable{
		Name:  "tex",
		Space: ir.SpaceHandle,
		Type:  4, // imageType
	}

	zeroU := ir.Constant{Name: "zeroU", Type: 0, Value: ir.ScalarValue{Kind: ir.ScalarUint, Bits: 0}}
	coordConst := ir.Constant{
		Name: "coord",
		Type: 2, // vec2u
		Value: ir.CompositeValue{
			Components: []ir.ConstantHandle{0, 0},
		},
	}
	oneF := ir.Constant{Name: "oneF", Type: 1, Value: ir.ScalarValue{Kind: ir.ScalarFloat, Bits: 0x3f800000}}
	colorConst := ir.Constant{
		Name: "color",
		Type: 3, // vec4f
		Value: ir.CompositeValue{
			Components: []ir.ConstantHandle{2, 2, 2, 2},
		},
	}

	mainFunc := ir.Function{
		Name: "main",
		Expressions: []ir.Expression{
			{Kind: ir.ExprGlobalVariable{Variable: 0}}, // 0: tex
			{Kind: ir.ExprConstant{Constant: 1}},       // 1: coord
			{Kind: ir.ExprConstant{Constant: 3}},       // 2: color
		},
		Body: []ir.Statement{
			{Kind: ir.StmtEmit{Range: ir.Range{Start: 0, End: 3}}},
			{Kind: ir.StmtImageStore{Image: 0, Coordinate: 1, Value: 2}},
			{Kind: ir.StmtReturn{}},
		},
	}

	module := &ir.Module{
		Types:           []ir.Type{u32Type, f32Type, vec2uType, vec4fType, imageType},
		Constants:       []ir.Constant{zeroU, coordConst, oneF, colorConst},
		GlobalVariables: []ir.GlobalVariable{imageGlobal},
		Functions:       []ir.Function{mainFunc},
		EntryPoints: []ir.EntryPoint{
			{Name: "main", Stage: ir.StageCompute, Function: 0, Workgroup: [3]uint32{1, 1, 1}},
		},
	}

	compiled, err := backend.Compile(module)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	opcodes := scanOpcodes(t, compiled)
	if !containsOpcode(opcodes, OpImageWrite) {
		t.Error("expected OpImageWrite in compiled module")
	}
}

// TestBackendRelationalFunctions exercises emitRelational for all/any over a
// vec4<bool> local and isNan over a scalar f32 local, covering both the
// reduction form and the componentwise form of the opcode.
func TestBackendRelationalFunctions(t *testing.T) {
	backend := NewBackend(DefaultOptions())

	boolType := ir.Type{Name: "bool", Inner: ir.ScalarType{Kind: ir.ScalarBool}}
	vec4bType := ir.Type{Name: "vec4b", Inner: ir.VectorType{Size: ir.Vec4, Scalar: ir.ScalarType{Kind: ir.ScalarBool}}}
	f32Type := ir.Type{Name: "f32", Inner: ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}}
	u32Type := ir.Type{Name: "u32", Inner: ir.ScalarType{Kind: ir.ScalarUint, Width: 4}}

	resultGlobal := ir.GlobalVariable{
		Name:  "result",
		Space: ir.SpaceWorkGroup,
		Type:  3, // u32
	}

	mainFunc := ir.Function{
		Name: "main",
		LocalVars: []ir.LocalVariable{
			{Name: "mask", Type: 1},  // vec4b
			{Name: "value", Type: 2}, // f32
		},
		Expressions: []ir.Expression{
			{Kind: ir.ExprLocalVariable{Variable: 0}},                       // 0: &mask
			{Kind: ir.ExprLoad{Pointer: 0}},                                 // 1: load mask
			{Kind: ir.ExprRelational{Fun: ir.RelationalAny, Argument: 1}},   // 2: any(mask)
			{Kind: ir.ExprRelational{Fun: ir.RelationalAll, Argument: 1}},   // 3: all(mask)
			{Kind: ir.ExprLocalVariable{Variable: 1}},                       // 4: &value
			{Kind: ir.ExprLoad{Pointer: 4}},                                 // 5: load value
			{Kind: ir.ExprRelational{Fun: ir.RelationalIsNan, Argument: 5}}, // 6: isNan(value)
		},
		Body: []ir.Statement{
			{Kind: ir.StmtEmit{Range: ir.Range{Start: 1, End: 7}}},
			{Kind: ir.StmtReturn{}},
		},
	}

	module := &ir.Module{
		Types:           []ir.Type{boolType, vec4bType, f32Type, u32Type},
		GlobalVariables: []ir.GlobalVariable{resultGlobal},
		Functions:       []ir.Function{mainFunc},
		EntryPoints: []ir.EntryPoint{
			{Name: "main", Stage: ir.StageCompute, Function: 0, Workgroup: [3]uint32{1, 1, 1}},
		},
	}

	compiled, err := backend.Compile(module)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	opcodes := scanOpcodes(t, compiled)
	if !containsOpcode(opcodes, OpAny) {
		t.Error("expected OpAny in compiled module")
	}
	if !containsOpcode(opcodes, OpAll) {
		t.Error("expected OpAll in compiled module")
	}
	if !containsOpcode(opcodes, OpIsNan) {
		t.Error("expected OpIsNan in compiled module")
	}
}
