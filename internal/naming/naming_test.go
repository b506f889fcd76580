package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelConversions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in         string
		upperCamel string
		lowerCamel string
	}{
		{"snake_case", "SnakeCase", "snakeCase"},
		{"name", "Name", "name"},
		{"pet_owner_id", "PetOwnerId", "petOwnerId"},
		{"already_Camel", "AlreadyCamel", "alreadyCamel"},
		{"trailing_", "Trailing", "trailing"},
		{"__double", "Double", "double"},
		{"", "", ""},
		{"élan_vital", "ÉlanVital", "élanVital"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.upperCamel, ToUpperCamel(tt.in))
			assert.Equal(t, tt.lowerCamel, ToLowerCamel(tt.in))
			assert.Equal(t, ToLowerCamel(tt.in), ToLowerCamel(ToUpperCamel(tt.in)))
		})
	}
}

func TestSplitOnCustomSeparator(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "applicationJson", SplitToLowerCamel("application/json", '/'))
	assert.Equal(t, "TextPlain", SplitToUpperCamel("text/plain", '/'))
}

func TestIsSnakeCase(t *testing.T) {
	t.Parallel()
	assert.True(t, IsSnakeCase("snake_case"))
	assert.True(t, IsSnakeCase("_"))
	assert.False(t, IsSnakeCase("camelCase"))
	assert.False(t, IsSnakeCase(""))
}

func TestUpperLowerFirst(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Users", UpperFirst("users"))
	assert.Equal(t, "uSERS", LowerFirst("USERS"))
	assert.Equal(t, "", UpperFirst(""))
	assert.Equal(t, "{id}", UpperFirst("{id}"))
}

func TestInflectionRoundTrip(t *testing.T) {
	t.Parallel()
	singulars := []string{"user", "order", "category", "box", "bus", "address", "person", "child", "mouse", "policy", "status"}
	for _, w := range singulars {
		assert.Equal(t, w, Singularize(Pluralize(w)), "singularize(pluralize(%q))", w)
	}
	plurals := []string{"users", "orders", "categories", "boxes", "addresses", "people", "children", "mice", "policies"}
	for _, w := range plurals {
		assert.Equal(t, w, Pluralize(Singularize(w)), "pluralize(singularize(%q))", w)
	}
}

func TestInflectionForms(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "categories", Pluralize("category"))
	assert.Equal(t, "category", Singularize("categories"))
	assert.Equal(t, "user", Singularize("users"))
	assert.Equal(t, "user", Singularize("user"))
	assert.Equal(t, "person", Singularize("people"))
	assert.Equal(t, "", Singularize(""))
	assert.Equal(t, "", Pluralize(""))
}

func TestModelClassName(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"pet":                 "PetDto",
		"Pet":                 "PetDto",
		"pet_owner":           "PetOwnerDto",
		"login_response":      "LoginResponse",
		"LoginRequest":        "LoginRequest",
		"create_user_REQUEST": "CreateUserREQUEST",
		"response":            "Response",
		"responses":           "ResponsesDto",
		"requestor":           "RequestorDto",
	}
	for in, want := range tests {
		assert.Equal(t, want, ModelClassName(in), "ModelClassName(%q)", in)
	}
}

func TestVariantNames(t *testing.T) {
	t.Parallel()
	assert.True(t, IsResponseName("UserResponse"))
	assert.True(t, IsResponseName("userresponse"))
	assert.False(t, IsResponseName("Responses"))
	assert.True(t, IsRequestName("LOGIN_REQUEST"))
	assert.False(t, IsRequestName("req"))
}
