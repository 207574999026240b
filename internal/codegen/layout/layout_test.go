package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protosmith/protosmith/internal/codegen/layout"
	"github.com/protosmith/protosmith/internal/codegen/meta"
)

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name string
		in   layout.Input
		want meta.OutputLayout
	}{
		{
			name: "clean",
			in:   layout.Input{OutDir: "src", Module: "customer", Structure: meta.StructureClean},
			want: meta.OutputLayout{
				Transport:  "src/transport/gateway/gRPC/requests/customer.requests.ts",
				Contract:   "src/domain/customer/customer.contract.ts",
				Repository: "src/repository/customer/customer.grpc.repo.ts",
				Service:    "src/service/customer/customer.service.ts",
				ViewModel:  "src/presentation/customer/customer.view-model.ts",
			},
		},
		{
			name: "modules",
			in:   layout.Input{OutDir: "out", Module: "customer", Structure: meta.StructureModules},
			want: meta.OutputLayout{
				Transport:  "out/modules/customer/requests/customer.requests.ts",
				Contract:   "out/modules/customer/contracts/customer.contract.ts",
				Repository: "out/modules/customer/repos/customer.repo.ts",
				Service:    "out/modules/customer/services/customer.service.ts",
				ViewModel:  "out/modules/customer/view-models/customer.view-model.ts",
			},
		},
		{
			name: "modules root is not doubled",
			in:   layout.Input{OutDir: "out/modules/", Module: "customer", Structure: meta.StructureModules},
			want: meta.OutputLayout{
				Transport:  "out/modules/customer/requests/customer.requests.ts",
				Contract:   "out/modules/customer/contracts/customer.contract.ts",
				Repository: "out/modules/customer/repos/customer.repo.ts",
				Service:    "out/modules/customer/services/customer.service.ts",
				ViewModel:  "out/modules/customer/view-models/customer.view-model.ts",
			},
		},
		{
			name: "flat",
			in:   layout.Input{OutDir: "app/", Module: "billing", Structure: meta.StructureFlat},
			want: meta.OutputLayout{
				Transport:  "app/modules/billing/billing.requests.ts",
				Contract:   "app/modules/billing/billing.contract.ts",
				Repository: "app/modules/billing/billing.repo.ts",
				Service:    "app/modules/billing/billing.service.ts",
				ViewModel:  "app/modules/billing/billing.view-model.ts",
			},
		},
		{
			name: "flat under nested modules segment",
			in:   layout.Input{OutDir: `src\modules\shop`, Module: "cart", Structure: meta.StructureFlat},
			want: meta.OutputLayout{
				Transport:  `src\modules\shop/cart/cart.requests.ts`,
				Contract:   `src\modules\shop/cart/cart.contract.ts`,
				Repository: `src\modules\shop/cart/cart.repo.ts`,
				Service:    `src\modules\shop/cart/cart.service.ts`,
				ViewModel:  `src\modules\shop/cart/cart.view-model.ts`,
			},
		},
		{
			name: "overrides replace only their layer",
			in: layout.Input{
				OutDir: "src", Module: "customer", Structure: meta.StructureClean,
				Overrides: meta.LayoutOverrides{Repository: "lib/repo.ts"},
			},
			want: meta.OutputLayout{
				Transport:  "src/transport/gateway/gRPC/requests/customer.requests.ts",
				Contract:   "src/domain/customer/customer.contract.ts",
				Repository: "lib/repo.ts",
				Service:    "src/service/customer/customer.service.ts",
				ViewModel:  "src/presentation/customer/customer.view-model.ts",
			},
		},
		{
			name: "unknown structure falls back to clean",
			in:   layout.Input{OutDir: "src", Module: "x", Structure: "hexagonal"},
			want: meta.OutputLayout{
				Transport:  "src/transport/gateway/gRPC/requests/x.requests.ts",
				Contract:   "src/domain/x/x.contract.ts",
				Repository: "src/repository/x/x.grpc.repo.ts",
				Service:    "src/service/x/x.service.ts",
				ViewModel:  "src/presentation/x/x.view-model.ts",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layout.ResolvePaths(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, layout.ResolvePaths(tt.in), "must be idempotent")
		})
	}
}

func TestResolvePathsDegenerateInputs(t *testing.T) {
	for _, s := range []meta.Structure{meta.StructureClean, meta.StructureModules, meta.StructureFlat} {
		got := layout.ResolvePaths(layout.Input{Structure: s})
		for _, l := range meta.Layers {
			assert.NotEmpty(t, got.Path(l), "%s/%s", s, l)
		}
	}
}
