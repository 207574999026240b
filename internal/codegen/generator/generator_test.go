package generator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protosmith/protosmith/internal/codegen/generator"
	"github.com/protosmith/protosmith/internal/codegen/layout"
	"github.com/protosmith/protosmith/internal/codegen/meta"
	th "github.com/protosmith/protosmith/internal/testing"
)

type fakeRenderer struct {
	calls []string
	fail  map[string]error
}

func (f *fakeRenderer) Render(id string, ctx *meta.Context) (string, error) {
	f.calls = append(f.calls, id)
	if err := f.fail[id]; err != nil {
		return "", err
	}
	return "// " + id + " " + ctx.Module + "\n", nil
}

type memWriter struct {
	files    map[string]string
	existing map[string]bool
	err      error
}

func newMemWriter() *memWriter {
	return &memWriter{files: map[string]string{}, existing: map[string]bool{}}
}

func (w *memWriter) write(path, content string) (bool, error) {
	if w.err != nil {
		return false, w.err
	}
	if w.existing[path] {
		return false, nil
	}
	w.files[path] = content
	return true, nil
}

func newContext(layers ...meta.Layer) *meta.Context {
	return &meta.Context{
		Module:    "customer",
		Structure: meta.StructureClean,
		Schema:    meta.ServiceSchema{Name: "CustomerService"},
		Paths:     layout.ResolvePaths(layout.Input{OutDir: "src", Module: "customer"}),
		Layers:    layers,
	}
}

func TestGenerateAllLayersInCanonicalOrder(t *testing.T) {
	r := &fakeRenderer{}
	w := newMemWriter()
	ctx := newContext(meta.LayerViewModel, meta.LayerTransport, meta.LayerService, meta.LayerContract, meta.LayerRepository)

	written, err := generator.New(th.Logger(), r, w.write).Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"transport", "contract", "repository", "service", "view-model"}, r.calls)
	assert.Equal(t, []string{
		"src/transport/gateway/gRPC/requests/customer.requests.ts",
		"src/domain/customer/customer.contract.ts",
		"src/repository/customer/customer.grpc.repo.ts",
		"src/service/customer/customer.service.ts",
		"src/presentation/customer/customer.view-model.ts",
	}, written)
	assert.Equal(t, "// contract customer\n", w.files["src/domain/customer/customer.contract.ts"])
}

func TestGenerateSubset(t *testing.T) {
	r := &fakeRenderer{}
	w := newMemWriter()

	written, err := generator.New(th.Logger(), r, w.write).Generate(newContext(meta.LayerService))
	require.NoError(t, err)
	assert.Equal(t, []string{"service"}, r.calls)
	assert.Equal(t, []string{"src/service/customer/customer.service.ts"}, written)
}

func TestGenerateSkipsExistingFiles(t *testing.T) {
	w := newMemWriter()
	w.existing["src/domain/customer/customer.contract.ts"] = true

	written, err := generator.New(th.Logger(), &fakeRenderer{}, w.write).Generate(newContext(meta.LayerContract, meta.LayerRepository))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/repository/customer/customer.grpc.repo.ts"}, written)
}

func TestGenerateStopsOnRenderFailure(t *testing.T) {
	r := &fakeRenderer{fail: map[string]error{"repository": errors.New("boom")}}
	w := newMemWriter()

	written, err := generator.New(th.Logger(), r, w.write).Generate(newContext(meta.Layers...))
	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrRenderFailure)
	assert.Equal(t, []string{"transport", "contract", "repository"}, r.calls)
	assert.Len(t, written, 2)
	assert.NotContains(t, w.files, "src/service/customer/customer.service.ts")
}

func TestGenerateKeepsTemplateNotFound(t *testing.T) {
	r := &fakeRenderer{fail: map[string]error{"transport": generator.ErrTemplateNotFound}}

	_, err := generator.New(th.Logger(), r, newMemWriter().write).Generate(newContext(meta.LayerTransport))
	assert.ErrorIs(t, err, generator.ErrTemplateNotFound)
	assert.NotErrorIs(t, err, generator.ErrRenderFailure)
}

func TestGenerateStopsOnWriteFailure(t *testing.T) {
	w := newMemWriter()
	w.err = errors.New("disk full")
	r := &fakeRenderer{}

	written, err := generator.New(th.Logger(), r, w.write).Generate(newContext(meta.Layers...))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, written)
	assert.Equal(t, []string{"transport"}, r.calls)
}

func TestGenerateNoLayers(t *testing.T) {
	r := &fakeRenderer{}
	written, err := generator.New(th.Logger(), r, newMemWriter().write).Generate(newContext())
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Empty(t, r.calls)
}

func TestParseLayers(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []meta.Layer
	}{
		{name: "none selects all", names: nil, want: meta.Layers},
		{name: "blank selects all", names: []string{""}, want: meta.Layers},
		{name: "canonical order", names: []string{"service", "transport"}, want: []meta.Layer{meta.LayerTransport, meta.LayerService}},
		{name: "aliases and duplicates", names: []string{"view-model", "repo", "ViewModel"}, want: []meta.Layer{meta.LayerRepository, meta.LayerViewModel}},
		{name: "unknown ignored", names: []string{"presenter", "contract"}, want: []meta.Layer{meta.LayerContract}},
		{name: "only unknown", names: []string{"presenter"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generator.ParseLayers(th.Logger(), tt.names))
		})
	}
}
