package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosjs/msggen/internal/core"
	oerrors "github.com/rosjs/msggen/internal/errors"
)

// fakeSource is an in-memory schema source that counts queries and can delay
// or fail individual types.
type fakeSource struct {
	mu       sync.Mutex
	packages map[string][]string
	texts    map[string]string
	delays   map[string]time.Duration
	failText map[string]error

	textCalls        map[string]int
	fingerprintCalls map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		packages:         map[string][]string{},
		texts:            map[string]string{},
		delays:           map[string]time.Duration{},
		failText:         map[string]error{},
		textCalls:        map[string]int{},
		fingerprintCalls: map[string]int{},
	}
}

func (s *fakeSource) ListTypes(_ context.Context, pkg string) ([]string, error) {
	types, ok := s.packages[pkg]
	if !ok {
		return nil, &core.PackageNotFoundError{Package: pkg}
	}
	return types, nil
}

func (s *fakeSource) DefinitionText(ctx context.Context, typeName string) (string, error) {
	s.mu.Lock()
	s.textCalls[typeName]++
	delay := s.delays[typeName]
	failErr := s.failText[typeName]
	text, ok := s.texts[typeName]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if failErr != nil {
		return "", failErr
	}
	if !ok {
		return "", &core.DefinitionNotFoundError{TypeName: typeName}
	}
	return text, nil
}

func (s *fakeSource) Fingerprint(_ context.Context, typeName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fingerprintCalls[typeName]++
	if _, ok := s.texts[typeName]; !ok {
		return "", &core.DefinitionNotFoundError{TypeName: typeName}
	}
	return "md5:" + typeName, nil
}

// barrierSource holds every gated DefinitionText call until all of them are
// in flight at once. A resolver that fetches them one at a time never gets
// past the first one.
type barrierSource struct {
	*fakeSource
	gated   map[string]bool
	mu      sync.Mutex
	arrived int
	release chan struct{}
}

func newBarrierSource(src *fakeSource, gated ...string) *barrierSource {
	b := &barrierSource{
		fakeSource: src,
		gated:      map[string]bool{},
		release:    make(chan struct{}),
	}
	for _, typeName := range gated {
		b.gated[typeName] = true
	}
	return b
}

func (b *barrierSource) DefinitionText(ctx context.Context, typeName string) (string, error) {
	if b.gated[typeName] {
		b.mu.Lock()
		b.arrived++
		if b.arrived == len(b.gated) {
			close(b.release)
		}
		b.mu.Unlock()

		select {
		case <-b.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return b.fakeSource.DefinitionText(ctx, typeName)
}

func geometrySource() *fakeSource {
	src := newFakeSource()
	src.texts["std_msgs/Header"] = "uint32 seq\ntime stamp\nstring frame_id"
	src.texts["geometry_msgs/Vector3"] = "float64 x\nfloat64 y\nfloat64 z"
	src.texts["geometry_msgs/Point"] = "float64 x\nfloat64 y\nfloat64 z"
	src.texts["geometry_msgs/Twist"] = "geometry_msgs/Vector3 linear\ngeometry_msgs/Vector3 angular"
	src.texts["geometry_msgs/TwistStamped"] = "Header header\ngeometry_msgs/Twist twist"
	src.texts["geometry_msgs/Polygon"] = "Point[] points"
	src.packages["geometry_msgs"] = []string{
		"geometry_msgs/Point",
		"geometry_msgs/Polygon",
		"geometry_msgs/Twist",
		"geometry_msgs/TwistStamped",
		"geometry_msgs/Vector3",
	}
	return src
}

func TestResolve_NoStructFields(t *testing.T) {
	src := geometrySource()
	r := New(src)

	def, err := r.Resolve(context.Background(), "geometry_msgs/Vector3")
	require.NoError(t, err)

	assert.Equal(t, "geometry_msgs/Vector3", def.TypeName)
	assert.Equal(t, "md5:geometry_msgs/Vector3", def.Fingerprint)
	assert.Equal(t, []string{"x", "y", "z"}, def.FieldNames())
	assert.Empty(t, def.StructFields)
	assert.Equal(t, 1, src.textCalls["geometry_msgs/Vector3"])
	assert.Equal(t, 1, src.fingerprintCalls["geometry_msgs/Vector3"])
}

func TestResolve_HeaderAndQualifiedStruct(t *testing.T) {
	src := geometrySource()
	src.texts["test_msgs/Stamped"] = "Header header\ngeometry_msgs/Vector3 linear\n"

	def, err := New(src).Resolve(context.Background(), "test_msgs/Stamped")
	require.NoError(t, err)

	require.Contains(t, def.StructFields, "header")
	require.Contains(t, def.StructFields, "linear")
	assert.Equal(t, "std_msgs/Header", def.StructFields["header"].TypeName)
	assert.Equal(t, []string{"seq", "stamp", "frame_id"}, def.StructFields["header"].FieldNames())
	assert.Equal(t, "geometry_msgs/Vector3", def.StructFields["linear"].TypeName)
	assert.True(t, def.IsComplete())
}

func TestResolve_NestedTree(t *testing.T) {
	def, err := New(geometrySource()).Resolve(context.Background(), "geometry_msgs/TwistStamped")
	require.NoError(t, err)

	twist := def.StructFields["twist"]
	require.NotNil(t, twist)
	assert.Equal(t, "geometry_msgs/Twist", twist.TypeName)
	assert.Equal(t, "geometry_msgs/Vector3", twist.StructFields["linear"].TypeName)
	assert.Equal(t, "geometry_msgs/Vector3", twist.StructFields["angular"].TypeName)
	assert.True(t, def.IsComplete())
}

func TestResolve_SiblingsResolvedIndependently(t *testing.T) {
	src := geometrySource()
	def, err := New(src).Resolve(context.Background(), "geometry_msgs/Twist")
	require.NoError(t, err)

	linear := def.StructFields["linear"]
	angular := def.StructFields["angular"]
	assert.Equal(t, linear, angular)
	assert.NotSame(t, linear, angular)
	assert.Equal(t, 2, src.textCalls["geometry_msgs/Vector3"])
}

func TestResolve_ArrayOfStructUsesPackageRelativeName(t *testing.T) {
	def, err := New(geometrySource()).Resolve(context.Background(), "geometry_msgs/Polygon")
	require.NoError(t, err)

	field, ok := def.Field("points")
	require.True(t, ok)
	assert.Equal(t, "Point[]", field.Type)
	assert.Equal(t, core.DefaultEmptySequence, field.Default.Kind)
	assert.Equal(t, "geometry_msgs/Point", def.StructFields["points"].TypeName)
}

func TestResolve_CompletionOrderDoesNotMatter(t *testing.T) {
	src := newFakeSource()
	src.texts["a/Slow"] = "int8 s"
	src.texts["a/Fast"] = "int8 f"
	src.texts["a/Both"] = "a/Slow first\na/Fast second"
	src.delays["a/Slow"] = 30 * time.Millisecond

	def, err := New(src).Resolve(context.Background(), "a/Both")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, def.FieldNames())
	assert.Equal(t, "a/Slow", def.StructFields["first"].TypeName)
	assert.Equal(t, "a/Fast", def.StructFields["second"].TypeName)
}

func TestResolve_StructFieldsFetchedConcurrently(t *testing.T) {
	src := newFakeSource()
	src.texts["pair_msgs/Left"] = "int8 l"
	src.texts["pair_msgs/Right"] = "int8 r"
	src.texts["pair_msgs/Pair"] = "pair_msgs/Left left\npair_msgs/Right right"
	gated := newBarrierSource(src, "pair_msgs/Left", "pair_msgs/Right")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	def, err := New(gated).Resolve(ctx, "pair_msgs/Pair")
	require.NoError(t, err, "sibling fields must be fetched in parallel")
	assert.Equal(t, "pair_msgs/Left", def.StructFields["left"].TypeName)
	assert.Equal(t, "pair_msgs/Right", def.StructFields["right"].TypeName)
}

func TestResolve_NotFound(t *testing.T) {
	_, err := New(geometrySource()).Resolve(context.Background(), "nope_msgs/Missing")
	require.Error(t, err)

	var dnf *core.DefinitionNotFoundError
	require.True(t, errors.As(err, &dnf))
	assert.Equal(t, "nope_msgs/Missing", dnf.TypeName)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))

	var re *core.ResolutionError
	assert.False(t, errors.As(err, &re), "top-level failure is not a nested resolution error")
}

func TestResolve_NestedFailureIsResolutionError(t *testing.T) {
	src := geometrySource()
	src.texts["test_msgs/Broken"] = "geometry_msgs/Vector3 ok\nmissing_msgs/Gone gone"

	def, err := New(src).Resolve(context.Background(), "test_msgs/Broken")
	require.Error(t, err)
	assert.Nil(t, def)

	var re *core.ResolutionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "test_msgs/Broken", re.TypeName)
	assert.Equal(t, "gone", re.Field)
	assert.Equal(t, "missing_msgs/Gone", re.FieldType)

	var dnf *core.DefinitionNotFoundError
	require.True(t, errors.As(err, &dnf))
	assert.Equal(t, "missing_msgs/Gone", dnf.TypeName)
}

func TestResolve_MalformedDefault(t *testing.T) {
	src := newFakeSource()
	src.texts["a/Bad"] = "uint8 level=high"

	_, err := New(src).Resolve(context.Background(), "a/Bad")
	require.Error(t, err)

	var mde *core.MalformedDefaultError
	require.True(t, errors.As(err, &mde))
	assert.Equal(t, "level", mde.Field)
}

func TestResolve_SourceFailureWrapped(t *testing.T) {
	src := geometrySource()
	boom := errors.New("rosmsg crashed")
	src.failText["geometry_msgs/Vector3"] = boom

	_, err := New(src).Resolve(context.Background(), "geometry_msgs/Twist")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetching geometry_msgs/Vector3")
}

func TestResolve_CycleDetected(t *testing.T) {
	src := newFakeSource()
	src.texts["loop/A"] = "loop/B b"
	src.texts["loop/B"] = "loop/A a"

	_, err := New(src).Resolve(context.Background(), "loop/A")
	require.Error(t, err)

	var cyc *core.CyclicDefinitionError
	require.True(t, errors.As(err, &cyc))
	assert.Equal(t, []string{"loop/A", "loop/B", "loop/A"}, cyc.Chain)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func TestResolveAll_PreservesListingOrder(t *testing.T) {
	src := geometrySource()
	src.delays["geometry_msgs/Point"] = 40 * time.Millisecond
	src.delays["geometry_msgs/Polygon"] = 20 * time.Millisecond

	defs, err := New(src).ResolveAll(context.Background(), "geometry_msgs")
	require.NoError(t, err)

	got := make([]string, len(defs))
	for i, d := range defs {
		got[i] = d.TypeName
	}
	assert.Equal(t, src.packages["geometry_msgs"], got)
}

func TestResolveAll_TypesResolvedConcurrently(t *testing.T) {
	src := newFakeSource()
	src.texts["pair_msgs/Left"] = "int8 l"
	src.texts["pair_msgs/Right"] = "int8 r"
	src.packages["pair_msgs"] = []string{"pair_msgs/Left", "pair_msgs/Right"}
	gated := newBarrierSource(src, "pair_msgs/Left", "pair_msgs/Right")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	defs, err := New(gated).ResolveAll(ctx, "pair_msgs")
	require.NoError(t, err, "package types must be resolved in parallel")
	require.Len(t, defs, 2)
	assert.Equal(t, "pair_msgs/Left", defs[0].TypeName)
	assert.Equal(t, "pair_msgs/Right", defs[1].TypeName)
}

func TestResolveAll_WithConcurrencyLimit(t *testing.T) {
	src := geometrySource()

	defs, err := New(src, WithConcurrency(1)).ResolveAll(context.Background(), "geometry_msgs")
	require.NoError(t, err)
	assert.Len(t, defs, 5)
}

func TestResolveAll_UnknownPackage(t *testing.T) {
	_, err := New(geometrySource()).ResolveAll(context.Background(), "unknown_msgs")

	var pnf *core.PackageNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, "unknown_msgs", pnf.Package)
}

func TestResolveAll_EmptyPackage(t *testing.T) {
	src := newFakeSource()
	src.packages["empty_msgs"] = nil

	_, err := New(src).ResolveAll(context.Background(), "empty_msgs")

	var pnf *core.PackageNotFoundError
	require.True(t, errors.As(err, &pnf))
}

func TestResolveAll_FailureAbortsWholePackage(t *testing.T) {
	src := geometrySource()
	src.texts["geometry_msgs/Polygon"] = "Missing[] points"

	defs, err := New(src).ResolveAll(context.Background(), "geometry_msgs")
	require.Error(t, err)
	assert.Nil(t, defs)

	var re *core.ResolutionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "geometry_msgs/Missing", re.FieldType)
}

func TestResolveTypes_ExplicitList(t *testing.T) {
	defs, err := New(geometrySource()).ResolveTypes(context.Background(), []string{"geometry_msgs/Twist", "Header"})
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "geometry_msgs/Twist", defs[0].TypeName)
	assert.Equal(t, "std_msgs/Header", defs[1].TypeName)
}
