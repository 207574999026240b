package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelAndPascal(t *testing.T) {
	tests := []struct {
		in     string
		camel  string
		pascal string
	}{
		{in: "", camel: "", pascal: ""},
		{in: "GetCustomer", camel: "getCustomer", pascal: "GetCustomer"},
		{in: "getCustomer", camel: "getCustomer", pascal: "GetCustomer"},
		{in: "X", camel: "x", pascal: "X"},
		{in: "ÄpfelListe", camel: "äpfelListe", pascal: "ÄpfelListe"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.camel, Camel(tt.in))
			assert.Equal(t, tt.pascal, Pascal(tt.in))
		})
	}
}

func TestWordCasing(t *testing.T) {
	tests := []struct {
		in     string
		pascal string
		camel  string
		kebab  string
	}{
		{in: "customer", pascal: "Customer", camel: "customer", kebab: "customer"},
		{in: "order_items", pascal: "OrderItems", camel: "orderItems", kebab: "order-items"},
		{in: "order-items", pascal: "OrderItems", camel: "orderItems", kebab: "order-items"},
		{in: "user profile", pascal: "UserProfile", camel: "userProfile", kebab: "user-profile"},
		{in: "CustomerOrder", pascal: "CustomerOrder", camel: "customerOrder", kebab: "customer-order"},
		{in: "XMLParser", pascal: "XMLParser", camel: "xMLParser", kebab: "xml-parser"},
		{in: "v2Api", pascal: "V2Api", camel: "v2Api", kebab: "v2-api"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, ToPascalCase(tt.in))
			assert.Equal(t, tt.camel, ToCamelCase(tt.in))
			assert.Equal(t, tt.kebab, ToKebabCase(tt.in))
		})
	}
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "Customer", Identifier("customer"))
	assert.Equal(t, "Num3dPrinter", Identifier("3d-printer"))
	assert.Equal(t, "", Identifier(""))
}
