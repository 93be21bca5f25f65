package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestRegisterRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      RegisterRequest
		wantMsgs int
	}{
		{name: "valid", req: RegisterRequest{Email: "a@b.com", Password: "password1"}, wantMsgs: 0},
		{name: "valid admin", req: RegisterRequest{Email: "a@b.com", Password: "password1", Role: "admin"}, wantMsgs: 0},
		{name: "empty email", req: RegisterRequest{Password: "password1"}, wantMsgs: 1},
		{name: "bad email", req: RegisterRequest{Email: "not-an-email", Password: "password1"}, wantMsgs: 1},
		{name: "short password", req: RegisterRequest{Email: "a@b.com", Password: "short"}, wantMsgs: 1},
		{name: "bad role", req: RegisterRequest{Email: "a@b.com", Password: "password1", Role: "root"}, wantMsgs: 1},
		{name: "everything wrong", req: RegisterRequest{Email: "", Password: "", Role: "root"}, wantMsgs: 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, tt.req.Validate(), tt.wantMsgs)
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Parallel()

	assert.Empty(t, (&LoginRequest{Email: "a@b.com", Password: "x"}).Validate())
	assert.Len(t, (&LoginRequest{}).Validate(), 2)
}

func TestCreateProductRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      CreateProductRequest
		wantMsgs int
	}{
		{name: "valid", req: CreateProductRequest{Name: "keyboard", Price: floatPtr(10)}, wantMsgs: 0},
		{name: "zero price is fine", req: CreateProductRequest{Name: "freebie", Price: floatPtr(0)}, wantMsgs: 0},
		{name: "missing name", req: CreateProductRequest{Price: floatPtr(10)}, wantMsgs: 1},
		{name: "missing price", req: CreateProductRequest{Name: "keyboard"}, wantMsgs: 1},
		{name: "negative price", req: CreateProductRequest{Name: "keyboard", Price: floatPtr(-1)}, wantMsgs: 1},
		{name: "negative stock", req: CreateProductRequest{Name: "keyboard", Price: floatPtr(1), Stock: intPtr(-5)}, wantMsgs: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, tt.req.Validate(), tt.wantMsgs)
		})
	}
}

func TestUpdateProductRequest_Validate(t *testing.T) {
	t.Parallel()

	assert.Empty(t, (&UpdateProductRequest{}).Validate())
	assert.Empty(t, (&UpdateProductRequest{Price: floatPtr(5)}).Validate())
	assert.Len(t, (&UpdateProductRequest{Name: strPtr("")}).Validate(), 1)
	assert.Len(t, (&UpdateProductRequest{Price: floatPtr(-2), Stock: intPtr(-1)}).Validate(), 2)
}
