package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsArrayType(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"uint8[]", true},
		{"float64[9]", true},
		{"geometry_msgs/Point[]", true},
		{"uint8", false},
		{"[]", false},
		{"int32[x]", false},
		{"std_msgs/Header", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, IsArrayType(tt.token))
		})
	}
}

func TestElementType(t *testing.T) {
	assert.Equal(t, "float64", ElementType("float64[9]"))
	assert.Equal(t, "geometry_msgs/Point", ElementType("geometry_msgs/Point[]"))
	assert.Equal(t, "string", ElementType("string"))
}

func TestIsStructType(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"uint32", false},
		{"string[]", false},
		{"time", false},
		{"duration", false},
		{"char", false},
		{"std_msgs/Header", true},
		{"Point", true},
		{"geometry_msgs/Vector3[]", true},
		{"float128", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStructType(tt.token))
		})
	}
}

func TestDefaultFor(t *testing.T) {
	assert.Equal(t, EmptySequence(), DefaultFor("int8[]"))
	assert.Equal(t, EmptySequence(), DefaultFor("std_msgs/String[4]"))
	assert.Equal(t, Absent(), DefaultFor("int8"))
	assert.Equal(t, Absent(), DefaultFor("std_msgs/String"))
	assert.NotEqual(t, DefaultFor("int8[]"), DefaultFor("int8"))
}

func TestQualifyType(t *testing.T) {
	tests := []struct {
		name  string
		token string
		pkg   string
		want  string
	}{
		{"qualified stays", "geometry_msgs/Point", "nav_msgs", "geometry_msgs/Point"},
		{"bare name gets package", "Point", "geometry_msgs", "geometry_msgs/Point"},
		{"array suffix dropped", "Point[]", "geometry_msgs", "geometry_msgs/Point"},
		{"header canonical", "Header", "geometry_msgs", HeaderType},
		{"no package", "Point", "", "Point"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QualifyType(tt.token, tt.pkg))
		})
	}
}

func TestPackageOfAndShortName(t *testing.T) {
	assert.Equal(t, "geometry_msgs", PackageOf("geometry_msgs/Twist"))
	assert.Equal(t, "", PackageOf("Twist"))
	assert.Equal(t, "Twist", ShortName("geometry_msgs/Twist"))
	assert.Equal(t, "Twist", ShortName("Twist"))
}

func TestDefinitionAccessors(t *testing.T) {
	child := &Definition{TypeName: "geometry_msgs/Vector3", Fields: []FieldSpec{{Name: "x", Type: "float64"}}}
	def := &Definition{
		TypeName: "geometry_msgs/Twist",
		Fields: []FieldSpec{
			{Name: "linear", Type: "geometry_msgs/Vector3"},
			{Name: "angular", Type: "geometry_msgs/Vector3"},
			{Name: "tags", Type: "string[]", Default: EmptySequence()},
		},
		StructFields: map[string]*Definition{"linear": child},
	}

	assert.Equal(t, []string{"linear", "angular", "tags"}, def.FieldNames())
	assert.Equal(t, []string{"linear", "angular"}, def.StructFieldNames())
	assert.Equal(t, "string[]", def.FieldTypes()["tags"])
	assert.Equal(t, EmptySequence(), def.DefaultValue("tags"))
	assert.Equal(t, Absent(), def.DefaultValue("missing"))
	assert.False(t, def.IsComplete())

	def.StructFields["angular"] = child
	assert.True(t, def.IsComplete())
}
