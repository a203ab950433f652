package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typegraph/internal/ir"
)

func newGenericEdge(t *testing.T, reg *Registry) *ir.ObjectDef {
	t.Helper()
	edge, err := reg.Generic("Edge", []string{"T"},
		ir.NewField("cursor", ir.ScalarOf(ir.ScalarID)),
		ir.NewField("node", ir.Param("T")),
	)
	require.NoError(t, err)
	return edge
}

func TestSpecializeDerivedNames(t *testing.T) {
	tests := []struct {
		name string
		arg  ir.Expr
		want string
	}{
		{"string", ir.ScalarOf(ir.ScalarString), "StrEdge"},
		{"int", ir.ScalarOf(ir.ScalarInt), "IntEdge"},
		{"boolean", ir.ScalarOf(ir.ScalarBoolean), "BoolEdge"},
		{"id", ir.ScalarOf(ir.ScalarID), "IDEdge"},
		{"list_of_string", ir.ListOf(ir.ScalarOf(ir.ScalarString)), "StrListEdge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newTestRegistry(t)
			edge := newGenericEdge(t, reg)

			spec, err := Specialize(reg, edge, []ir.Expr{tt.arg})
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Name)
			assert.False(t, spec.IsGeneric)
			assert.Empty(t, spec.TypeParams)
		})
	}
}

func TestSpecializeObjectArgument(t *testing.T) {
	reg := newTestRegistry(t)
	edge := newGenericEdge(t, reg)
	user := mustObject(t, reg, "User", ir.NewField("name", ir.ScalarOf(ir.ScalarString)))

	spec, err := Specialize(reg, edge, []ir.Expr{ir.Ref(user)})
	require.NoError(t, err)
	assert.Equal(t, "UserEdge", spec.Name)

	// The substituted field annotation references the bound argument.
	node, ok := spec.FieldNamed("node")
	require.True(t, ok)
	assert.Equal(t, "User", ir.ExprKey(node.Type))
}

func TestSpecializationIsCached(t *testing.T) {
	reg := newTestRegistry(t)
	edge := newGenericEdge(t, reg)

	first, err := Specialize(reg, edge, []ir.Expr{ir.ScalarOf(ir.ScalarString)})
	require.NoError(t, err)
	second, err := Specialize(reg, edge, []ir.Expr{ir.ScalarOf(ir.ScalarString)})
	require.NoError(t, err)

	assert.Same(t, first, second, "identical arguments never allocate a second definition")

	other, err := Specialize(reg, edge, []ir.Expr{ir.ScalarOf(ir.ScalarInt)})
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.NotEqual(t, first.Name, other.Name)
}

func TestSpecializedDefinitionIsRegistered(t *testing.T) {
	reg := newTestRegistry(t)
	edge := newGenericEdge(t, reg)

	spec, err := Specialize(reg, edge, []ir.Expr{ir.ScalarOf(ir.ScalarString)})
	require.NoError(t, err)

	got, ok := reg.Lookup("StrEdge")
	require.True(t, ok)
	assert.Same(t, spec, got)
	assert.True(t, reg.Contains(spec), "specializations participate in the schema")
}

func TestSpecializeArityMismatch(t *testing.T) {
	reg := newTestRegistry(t)
	pair, err := reg.Generic("Pair", []string{"L", "R"},
		ir.NewField("left", ir.Param("L")),
		ir.NewField("right", ir.Param("R")),
	)
	require.NoError(t, err)

	_, err = Specialize(reg, pair, []ir.Expr{ir.ScalarOf(ir.ScalarInt)})
	require.Error(t, err)
	assert.True(t, IsMissingTypeArguments(err))
	assert.Contains(t, err.Error(), "expects 2 type argument(s), got 1")
}

func TestSpecializeNonGenericPassthrough(t *testing.T) {
	reg := newTestRegistry(t)
	user := mustObject(t, reg, "User", ir.NewField("name", ir.ScalarOf(ir.ScalarString)))

	spec, err := Specialize(reg, user, nil)
	require.NoError(t, err)
	assert.Same(t, user, spec)
}

func TestSpecializeSubstitutesThroughComposites(t *testing.T) {
	reg := newTestRegistry(t)
	conn, err := reg.Generic("Connection", []string{"T"},
		ir.NewField("nodes", ir.ListOf(ir.Param("T"))),
		ir.NewField("first", ir.OptionalOf(ir.Param("T"))),
	)
	require.NoError(t, err)

	spec, err := Specialize(reg, conn, []ir.Expr{ir.ScalarOf(ir.ScalarString)})
	require.NoError(t, err)
	assert.Equal(t, "StrConnection", spec.Name)

	nodes, ok := spec.FieldNamed("nodes")
	require.True(t, ok)
	assert.Equal(t, "[String]", ir.ExprKey(nodes.Type))

	first, ok := spec.FieldNamed("first")
	require.True(t, ok)
	assert.Equal(t, "String?", ir.ExprKey(first.Type))

	// The specialized definition resolves cleanly.
	node, err := Resolve(reg, ir.Ref(spec))
	require.NoError(t, err)
	assert.Equal(t, spec, node.(ir.ObjectRef).Definition)
}

func TestSpecializeNestedGeneric(t *testing.T) {
	reg := newTestRegistry(t)
	edge := newGenericEdge(t, reg)
	wrapper, err := reg.Generic("Wrapper", []string{"T"},
		ir.NewField("inner", ir.ApplyName("Edge", ir.Param("T"))),
	)
	require.NoError(t, err)
	_ = edge

	spec, err := Specialize(reg, wrapper, []ir.Expr{ir.ScalarOf(ir.ScalarString)})
	require.NoError(t, err)
	assert.Equal(t, "StrWrapper", spec.Name)

	// Resolving the substituted field specializes the inner generic.
	inner, ok := spec.FieldNamed("inner")
	require.True(t, ok)
	node, err := Resolve(reg, inner.Type)
	require.NoError(t, err)
	assert.Equal(t, "StrEdge", node.(ir.ObjectRef).Definition.Name)
}

func TestSpecializeRecordsProvenance(t *testing.T) {
	reg := newTestRegistry(t)
	edge := newGenericEdge(t, reg)

	spec, err := Specialize(reg, edge, []ir.Expr{ir.ScalarOf(ir.ScalarString)})
	require.NoError(t, err)
	assert.Same(t, edge, spec.Origin)
	require.Len(t, spec.TypeArgs, 1)
	assert.Equal(t, "String", ir.ExprKey(spec.TypeArgs[0]))
}
