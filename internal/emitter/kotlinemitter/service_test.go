package kotlinemitter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/speakeasy-api/openapi/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	genspec "github.com/mark3labs/swagger2retrofit/internal/spec"
)

func TestPathSegments(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"users", "{id}", "orders"}, PathSegments("/v1/users/{id}/orders"))
	assert.Equal(t, []string{"v1beta", "users"}, PathSegments("/v1beta/users/"))
	assert.Empty(t, PathSegments("/v2/"))
}

func TestResourceKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "users", ResourceKey("/v1/users"))
	assert.Equal(t, "users", ResourceKey("/v1/users/{id}"))
	assert.Equal(t, "orders", ResourceKey("orders/{id}"))
	assert.Equal(t, DefaultResource, ResourceKey("/"))
	assert.Equal(t, DefaultResource, ResourceKey("/v3"))
}

func TestFunctionName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		method genspec.HttpMethod
		path   string
		want   string
	}{
		{genspec.GET, "/v1/users/{id}/orders", "getUserOrders"},
		{genspec.GET, "/v1/users", "getUsers"},
		{genspec.GET, "/v1/users/{id}", "getUser"},
		{genspec.DELETE, "/users/{userId}/orders/{orderId}", "deleteUserOrder"},
		{genspec.POST, "/categories/{id}/sub-categories", "postCategorySubCategories"},
		{genspec.PUT, "/v2/settings", "putSettings"},
		{genspec.GET, "/", "get"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FunctionName(tt.method, tt.path))
		})
	}
}

func TestServiceName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "UserService", ServiceName("users"))
	assert.Equal(t, "CategoryService", ServiceName("categories"))
	assert.Equal(t, "ApiService", ServiceName(DefaultResource))
	assert.Equal(t, "Order_itemService", ServiceName("order_items"))
}

func TestGroupPaths(t *testing.T) {
	t.Parallel()
	paths := sequencedmap.New[string, *genspec.PathItem]()
	for _, p := range []string{"/v1/users", "/v1/orders", "/v1/users/{id}", "/"} {
		paths.Set(p, &genspec.PathItem{})
	}
	got := GroupPaths(paths)
	want := []ServiceGroup{
		{Resource: "users", Paths: []string{"/v1/users", "/v1/users/{id}"}},
		{Resource: "orders", Paths: []string{"/v1/orders"}},
		{Resource: "api", Paths: []string{"/"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderParameter(t *testing.T) {
	t.Parallel()
	var m TypeMapper
	assert.Equal(t, `@Path("id") id: Int`, m.RenderParameter(genspec.Parameter{Name: "id", In: genspec.InPath, Required: true, Schema: typed(genspec.TypeInteger)}))
	assert.Equal(t, `@Query("page_size") pageSize: Int? = null`, m.RenderParameter(genspec.Parameter{Name: "page_size", In: genspec.InQuery, Schema: typed(genspec.TypeInteger)}))
	assert.Equal(t, `@Header("X-Trace") xTrace: String`, m.RenderParameter(genspec.Parameter{Name: "X-Trace", In: genspec.InHeader, Required: true, Schema: typed(genspec.TypeString)}))
	assert.Equal(t, `@Cookie("session") session: Any? = null`, m.RenderParameter(genspec.Parameter{Name: "session", In: genspec.InCookie}))
	assert.Equal(t, `filter: Any`, m.RenderParameter(genspec.Parameter{Name: "filter", Required: true}))
}

func responses(entries ...any) *sequencedmap.Map[string, *genspec.Response] {
	out := sequencedmap.New[string, *genspec.Response]()
	for i := 0; i+1 < len(entries); i += 2 {
		resp := &genspec.Response{Content: sequencedmap.New[string, *genspec.MediaType]()}
		if s, ok := entries[i+1].(*genspec.Schema); ok && s != nil {
			resp.Content.Set(genspec.JSONMediaType, &genspec.MediaType{Schema: s})
		}
		out.Set(entries[i].(string), resp)
	}
	return out
}

func TestReturnType(t *testing.T) {
	t.Parallel()
	var m TypeMapper
	op := &genspec.Operation{Responses: responses("201", ref("User"), "404", ref("Error"))}
	assert.Equal(t, "Response<User>", m.ReturnType(op))

	onlyError := &genspec.Operation{Responses: responses("404", ref("Error"))}
	assert.Equal(t, "Response<Any>", m.ReturnType(onlyError))

	list := &genspec.Operation{Responses: responses("200", &genspec.Schema{Type: genspec.TypeArray, Items: ref("User")})}
	assert.Equal(t, "Response<List<User>>", m.ReturnType(list))

	noContent := &genspec.Operation{Responses: responses("204", nil)}
	assert.Equal(t, "Response<Any>", m.ReturnType(noContent))
}

func TestRenderCall(t *testing.T) {
	t.Parallel()
	var m TypeMapper
	body := sequencedmap.New[string, *genspec.MediaType]()
	body.Set(genspec.JSONMediaType, &genspec.MediaType{Schema: ref("UpdateUserRequest")})
	op := &genspec.Operation{
		Summary:    "Update a user",
		Deprecated: true,
		Parameters: []genspec.Parameter{
			{Name: "id", In: genspec.InPath, Required: true, Schema: typed(genspec.TypeInteger)},
			{Name: "dry_run", In: genspec.InQuery, Schema: typed(genspec.TypeBoolean)},
		},
		RequestBody: &genspec.RequestBody{Required: true, Content: body},
		Responses:   responses("200", ref("User")),
	}

	want := `    /**
     * Update a user
     */
    @Deprecated("Deprecated by the API")
    @PUT("/v1/users/{id}")
    suspend fun putUser(@Path("id") id: Int, @Query("dry_run") dryRun: Boolean? = null, @Body body: UpdateUserRequest): Response<User>`
	if diff := cmp.Diff(want, m.RenderCall(genspec.PUT, "/v1/users/{id}", op)); diff != "" {
		t.Errorf("RenderCall mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCall_OperationIDAndTags(t *testing.T) {
	t.Parallel()
	var m TypeMapper
	op := &genspec.Operation{
		OperationID: "listPets",
		Summary:     "List pets",
		Tags:        []string{"pets", "public"},
		Responses:   responses("200", ref("Pet")),
	}

	want := `    /**
     * List pets
     *
     * operationId: listPets
     * tags: pets, public
     */
    @GET("/pets")
    suspend fun getPets(): Response<Pet>`
	if diff := cmp.Diff(want, m.RenderCall(genspec.GET, "/pets", op)); diff != "" {
		t.Errorf("RenderCall mismatch (-want +got):\n%s", diff)
	}

	bare := &genspec.Operation{OperationID: "getPet", Responses: responses("200", ref("Pet"))}
	assert.True(t, strings.HasPrefix(m.RenderCall(genspec.GET, "/pets/{id}", bare),
		"    /**\n     * operationId: getPet\n     */\n"))
}

func TestRenderService_MethodOrder(t *testing.T) {
	t.Parallel()
	var m TypeMapper
	ok := func() *genspec.Operation {
		return &genspec.Operation{Responses: responses("200", ref("User"))}
	}
	paths := sequencedmap.New[string, *genspec.PathItem]()
	paths.Set("/v1/users", &genspec.PathItem{Post: ok(), Get: ok()})
	paths.Set("/v1/users/{id}", &genspec.PathItem{Delete: ok(), Put: ok(), Get: ok()})

	groups := GroupPaths(paths)
	require.Len(t, groups, 1)

	want := `import retrofit2.Response
import retrofit2.http.*

interface UserService {

    @GET("/v1/users")
    suspend fun getUsers(): Response<User>

    @POST("/v1/users")
    suspend fun postUsers(): Response<User>

    @GET("/v1/users/{id}")
    suspend fun getUser(): Response<User>

    @PUT("/v1/users/{id}")
    suspend fun putUser(): Response<User>

    @DELETE("/v1/users/{id}")
    suspend fun deleteUser(): Response<User>

}
`
	if diff := cmp.Diff(want, m.RenderService(ServiceName(groups[0].Resource), groups[0], paths)); diff != "" {
		t.Errorf("RenderService mismatch (-want +got):\n%s", diff)
	}
}
