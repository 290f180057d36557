package java

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/classgraph/pkg/errors"
	"github.com/matzehuels/classgraph/pkg/model"
)

const testSources = "testdata/src"

func load(t *testing.T) *model.Universe {
	t.Helper()
	u, err := New([]string{testSources}, nil).Load(context.Background())
	require.NoError(t, err)
	return u
}

func field(t *testing.T, c *model.Class, name string) model.Field {
	t.Helper()
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("%s has no field %s", c.Name, name)
	return model.Field{}
}

func method(t *testing.T, c *model.Class, name string) model.Method {
	t.Helper()
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("%s has no method %s", c.Name, name)
	return model.Method{}
}

func TestLoadOrder(t *testing.T) {
	u := load(t)
	var names []string
	for _, c := range u.Classes() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"com.acme.shapes.Circle",
		"com.acme.shapes.Color",
		"com.acme.shapes.Drawable",
		"com.acme.shapes.Drawable.Canvas",
		"com.acme.shapes.Shape",
		"com.acme.shapes.Shape.Corner",
		"com.acme.util.Point",
		"com.acme.util.Registry",
		"com.acme.util.Visitor",
	}, names)
	assert.Len(t, u.Included(), u.Len())
	assert.Equal(t, []string{"com.acme.shapes", "com.acme.util"}, u.Packages())
}

func TestAbstractClass(t *testing.T) {
	shape := load(t).Lookup("com.acme.shapes.Shape")
	require.NotNil(t, shape)

	assert.Equal(t, model.KindClass, shape.Kind)
	assert.Equal(t, "com.acme.shapes", shape.Package)
	assert.Equal(t, model.Modifiers{Visibility: model.Public, Abstract: true}, shape.Modifiers)
	assert.Equal(t, []string{"java.util.List", "com.acme.util.*"}, shape.Imports)
	assert.Nil(t, shape.Super)
	assert.Equal(t, []model.TypeRef{{Name: "com.acme.shapes.Drawable"}}, shape.Interfaces)

	assert.Equal(t, "Base of all shapes.\nSecond line.", shape.Doc.Body)
	assert.Equal(t, []model.Tag{
		{Name: "opt", Text: "attributes"},
		{Name: "note", Text: "shapes are\nimmutable"},
		{Name: "stereotype", Text: "entity"},
	}, shape.Doc.Tags)

	require.Len(t, shape.TypeParams, 1)
	assert.Equal(t, model.TypeParam{
		Name: "T",
		Bounds: []model.TypeRef{{
			Name: "java.lang.Comparable",
			Args: []model.TypeRef{{Name: "T", TypeVar: true}},
		}},
	}, shape.TypeParams[0])
}

func TestFields(t *testing.T) {
	shape := load(t).Lookup("com.acme.shapes.Shape")
	require.NotNil(t, shape)

	tests := []struct {
		name string
		typ  model.TypeRef
		mods model.Modifiers
	}{
		{"name", model.TypeRef{Name: "java.lang.String"}, model.Modifiers{Visibility: model.Private}},
		{"points", model.TypeRef{Name: "java.util.List", Args: []model.TypeRef{{Name: "com.acme.util.Point"}}}, model.Modifiers{Visibility: model.Protected}},
		{"weights", model.TypeRef{Name: "int", Primitive: true, Dims: 1}, model.Modifiers{Visibility: model.Package}},
		{"extra", model.TypeRef{Name: "int", Primitive: true, Dims: 2}, model.Modifiers{Visibility: model.Package}},
		{"SIDES", model.TypeRef{Name: "int", Primitive: true}, model.Modifiers{Visibility: model.Public, Static: true, Final: true}},
		{"mystery", model.TypeRef{Name: "Unknown", Unresolved: true}, model.Modifiers{Visibility: model.Package}},
		{"registry", model.TypeRef{Name: "com.acme.util.Registry", Args: []model.TypeRef{{Name: "T", TypeVar: true}}}, model.Modifiers{Visibility: model.Private}},
	}
	require.Len(t, shape.Fields, len(tests))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := field(t, shape, tt.name)
			assert.Equal(t, tt.typ, f.Type)
			assert.Equal(t, tt.mods, f.Modifiers)
		})
	}
	assert.Equal(t, "The name.", field(t, shape, "name").Doc.Body)
	assert.Empty(t, field(t, shape, "points").Doc.Body)
}

func TestMethodsAndConstructors(t *testing.T) {
	shape := load(t).Lookup("com.acme.shapes.Shape")
	require.NotNil(t, shape)

	require.Len(t, shape.Constructors, 1)
	ctor := shape.Constructors[0]
	assert.Equal(t, "Shape", ctor.Name)
	assert.Equal(t, model.Protected, ctor.Modifiers.Visibility)
	assert.Equal(t, model.TypeRef{}, ctor.Return)
	assert.Equal(t, []model.Param{
		{Name: "name", Type: model.TypeRef{Name: "java.lang.String"}},
		{Name: "corners", Type: model.TypeRef{Name: "com.acme.util.Point", Dims: 1}},
	}, ctor.Params)

	area := method(t, shape, "area")
	assert.Equal(t, model.Modifiers{Visibility: model.Public, Abstract: true}, area.Modifiers)
	assert.Equal(t, model.TypeRef{Name: "double", Primitive: true}, area.Return)

	accept := method(t, shape, "accept")
	assert.Equal(t, []model.TypeParam{{Name: "R"}}, accept.TypeParams)
	assert.Equal(t, model.TypeRef{Name: "R", TypeVar: true}, accept.Return)
	assert.Equal(t, []model.Param{{Name: "v", Type: model.TypeRef{
		Name: "com.acme.util.Visitor",
		Args: []model.TypeRef{{Name: "R", TypeVar: true}},
	}}}, accept.Params)
}

func TestNestedClass(t *testing.T) {
	corner := load(t).Lookup("com.acme.shapes.Shape.Corner")
	require.NotNil(t, corner)

	assert.Equal(t, "com.acme.shapes.Shape", corner.Outer)
	assert.Equal(t, "com.acme.shapes", corner.Package)
	assert.Equal(t, "Shape.Corner", corner.SimpleName())
	assert.Equal(t, model.Modifiers{Visibility: model.Public, Static: true}, corner.Modifiers)
	assert.Equal(t, "Inner kinds.", corner.Doc.Body)
	assert.Equal(t, model.TypeRef{Name: "com.acme.util.Point"}, field(t, corner, "at").Type)
	assert.Equal(t, []model.Method{{Name: "Corner", Modifiers: model.Modifiers{Visibility: model.Public}}}, corner.Constructors)
}

func TestSuperclassAndQualifiedTypes(t *testing.T) {
	circle := load(t).Lookup("com.acme.shapes.Circle")
	require.NotNil(t, circle)

	require.NotNil(t, circle.Super)
	assert.Equal(t, model.TypeRef{
		Name: "com.acme.shapes.Shape",
		Args: []model.TypeRef{{Name: "com.acme.shapes.Circle"}},
	}, *circle.Super)
	assert.Equal(t, model.TypeRef{Name: "com.acme.shapes.Color"}, field(t, circle, "color").Type)
	assert.Equal(t, model.TypeRef{
		Name: "java.util.Map",
		Args: []model.TypeRef{
			{Name: "java.lang.String"},
			{Name: "?", Wildcard: true, Bounds: []model.TypeRef{{Name: "com.acme.shapes.Shape"}}},
		},
	}, field(t, circle, "byName").Type)

	require.Len(t, circle.Constructors, 1, "implicit default constructor")
	assert.Equal(t, model.Public, circle.Constructors[0].Modifiers.Visibility)
}

func TestInterface(t *testing.T) {
	u := load(t)
	d := u.Lookup("com.acme.shapes.Drawable")
	require.NotNil(t, d)

	assert.Equal(t, model.KindInterface, d.Kind)
	assert.Equal(t, []model.TypeRef{{
		Name: "java.lang.Comparable",
		Args: []model.TypeRef{{Name: "com.acme.shapes.Drawable"}},
	}}, d.Interfaces)
	assert.Empty(t, d.Constructors)
	assert.Equal(t, model.Modifiers{Visibility: model.Public, Static: true, Final: true}, field(t, d, "LAYERS").Modifiers)

	draw := method(t, d, "draw")
	assert.Equal(t, model.Modifiers{Visibility: model.Public, Abstract: true}, draw.Modifiers)
	assert.Equal(t, []model.Param{{Name: "canvas", Type: model.TypeRef{Name: "com.acme.shapes.Drawable.Canvas"}}}, draw.Params)
	assert.False(t, method(t, d, "clear").Modifiers.Abstract, "default method")
	assert.Equal(t, model.Modifiers{Visibility: model.Public, Static: true}, method(t, d, "empty").Modifiers)

	canvas := u.Lookup("com.acme.shapes.Drawable.Canvas")
	require.NotNil(t, canvas)
	assert.Equal(t, model.KindInterface, canvas.Kind)
	assert.Equal(t, model.Modifiers{Visibility: model.Public, Static: true}, canvas.Modifiers)
}

func TestEnum(t *testing.T) {
	color := load(t).Lookup("com.acme.shapes.Color")
	require.NotNil(t, color)

	assert.Equal(t, model.KindEnum, color.Kind)
	assert.Equal(t, "Palette.", color.Doc.Body)
	assert.Equal(t, []model.EnumConstant{
		{Name: "RED", Doc: model.Doc{Body: "Warm."}},
		{Name: "GREEN"},
		{Name: "BLUE"},
	}, color.Constants)
	assert.Equal(t, model.Modifiers{Visibility: model.Private, Final: true}, field(t, color, "rgb").Modifiers)
	require.Len(t, color.Constructors, 1)
	assert.Equal(t, model.Private, color.Constructors[0].Modifiers.Visibility)
	assert.Equal(t, model.TypeRef{Name: "int", Primitive: true}, method(t, color, "rgb").Return)
}

func TestRecord(t *testing.T) {
	point := load(t).Lookup("com.acme.util.Point")
	require.NotNil(t, point)

	assert.Equal(t, model.KindClass, point.Kind)
	assert.True(t, point.Modifiers.Final)
	assert.Equal(t, []model.Field{
		{Name: "x", Type: model.TypeRef{Name: "int", Primitive: true}, Modifiers: model.Modifiers{Visibility: model.Private, Final: true}},
		{Name: "y", Type: model.TypeRef{Name: "int", Primitive: true}, Modifiers: model.Modifiers{Visibility: model.Private, Final: true}},
	}, point.Fields)
}

func TestTypeVariableScope(t *testing.T) {
	visitor := load(t).Lookup("com.acme.util.Visitor")
	require.NotNil(t, visitor)

	visit := method(t, visitor, "visit")
	assert.Equal(t, model.TypeRef{Name: "R", TypeVar: true}, visit.Return)
	assert.Equal(t, model.TypeRef{Name: "java.lang.Object"}, visit.Params[0].Type)
}

func TestFiles(t *testing.T) {
	files, err := Files([]string{testSources, filepath.Join(testSources, "com/acme/util/Point.java")})
	require.NoError(t, err)
	assert.Len(t, files, 7, "hidden directories, module-info and duplicates are skipped")
	for _, f := range files {
		assert.NotContains(t, f, ".hidden")
	}

	_, err = Files([]string{"testdata/missing"})
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestDefaultPackageAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	src := "class Lone { Lone next; String s; }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte(src), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.java"), []byte(src), 0o644))

	u, err := New([]string{dir}, nil).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, u.Len())

	lone := u.Lookup("Lone")
	require.NotNil(t, lone)
	assert.Empty(t, lone.Package)
	assert.Equal(t, model.Package, lone.Modifiers.Visibility)
	assert.Equal(t, model.TypeRef{Name: "Lone"}, field(t, lone, "next").Type)
	assert.Equal(t, model.TypeRef{Name: "java.lang.String"}, field(t, lone, "s").Type)
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New([]string{testSources}, nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadWorkerCountStable(t *testing.T) {
	names := func(workers int) []string {
		p := New([]string{testSources}, nil)
		p.Workers = workers
		u, err := p.Load(context.Background())
		require.NoError(t, err)
		var out []string
		for _, c := range u.Classes() {
			out = append(out, c.Name)
		}
		return out
	}
	assert.Equal(t, names(1), names(4))
}
