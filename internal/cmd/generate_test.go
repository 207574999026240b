package cmd_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protosmith/protosmith/internal/cmd"
	"github.com/protosmith/protosmith/internal/codegen/scanner"
	"github.com/protosmith/protosmith/internal/prompt"
	th "github.com/protosmith/protosmith/internal/testing"
)

// setupProject lays out a compiled stub directory in a fresh working directory.
func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Chdir(root)
	th.WriteCustomerStubs(t, filepath.Join(root, "stubs"), true)
	th.WriteDescriptorSet(t, filepath.Join(root, "stubs"), "customer.binpb", th.CustomerDescriptorSet())
	return root
}

func TestGenerateExecute(t *testing.T) {
	root := setupProject(t)
	g := &cmd.Generate{
		Service:    "CustomerService",
		Descriptor: "stubs/customer.ts",
		Out:        "src",
		Structure:  "clean",
	}

	written, err := g.Execute(th.Logger(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/transport/gateway/gRPC/requests/customer.requests.ts",
		"src/domain/customer/customer.contract.ts",
		"src/repository/customer/customer.grpc.repo.ts",
		"src/service/customer/customer.service.ts",
		"src/presentation/customer/customer.view-model.ts",
	}, written)

	data, err := os.ReadFile(filepath.Join(root, "src", "repository", "customer", "customer.grpc.repo.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "from '../../../stubs/types';")
	assert.Contains(t, string(data), "from '../../domain/customer/customer.contract';")

	// a second run leaves every file alone
	written, err = g.Execute(th.Logger(), nil)
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestGenerateDetectsDescriptorInProtoDir(t *testing.T) {
	setupProject(t)
	g := &cmd.Generate{
		Service:   "acme.v1.CustomerService",
		ProtoDir:  ".",
		Module:    "clients",
		Out:       "app",
		Structure: "flat",
		Layers:    []string{"contract", "unknown"},
		Paths:     cmd.PathOverrides{Contract: "app/contracts/clients.ts"},
	}

	written, err := g.Execute(th.Logger(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"app/contracts/clients.ts"}, written)
}

func TestGenerateErrors(t *testing.T) {
	setupProject(t)

	_, err := (&cmd.Generate{Descriptor: "stubs/customer.binpb"}).Execute(th.Logger(), nil)
	assert.ErrorIs(t, err, cmd.ErrMissingService)

	_, err = (&cmd.Generate{Service: "CustomerService"}).Execute(th.Logger(), nil)
	assert.ErrorIs(t, err, cmd.ErrMissingDescriptor)

	_, err = (&cmd.Generate{Service: "OrderService", ProtoDir: "."}).Execute(th.Logger(), nil)
	assert.ErrorIs(t, err, scanner.ErrServiceNotFound)

	_, err = (&cmd.Generate{Service: "Customer", Descriptor: "stubs/customer.binpb", Out: "src"}).Execute(th.Logger(), nil)
	assert.ErrorIs(t, err, scanner.ErrInvalidServiceShape)
}

func TestGenerateInteractive(t *testing.T) {
	setupProject(t)
	answers := strings.Join([]string{
		"1",                 // descriptor set
		"",                  // service: the only one
		"",                  // module: derived default
		"",                  // output root: src
		"modules",           // structure
		"contract, service", // layers
	}, "\n") + "\n"

	g := &cmd.Generate{Out: "src", Structure: "clean"}
	written, err := g.Execute(th.Logger(), prompt.New(strings.NewReader(answers), io.Discard))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("stubs", "customer.binpb"), g.Descriptor)
	assert.Equal(t, "CustomerService", g.Service)
	assert.Equal(t, "customer", g.Module)
	assert.Equal(t, []string{
		"src/modules/customer/contracts/customer.contract.ts",
		"src/modules/customer/services/customer.service.ts",
	}, written)
}

func TestGenerateInteractiveWithoutDescriptors(t *testing.T) {
	t.Chdir(t.TempDir())
	g := &cmd.Generate{Out: "src", Structure: "clean"}

	_, err := g.Execute(th.Logger(), prompt.New(strings.NewReader("1\n"), io.Discard))
	assert.ErrorIs(t, err, scanner.ErrDescriptorNotLoadable)
}
