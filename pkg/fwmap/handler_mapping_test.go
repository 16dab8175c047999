package fwmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingTable_Register_Ambiguous(t *testing.T) {
	table := NewRequestMappingTable()

	require.NoError(t, table.Register(route("GET", "/users/{id}", "GetUser")))
	require.NoError(t, table.Register(route("POST", "/users/{id}", "UpdateUser")))
	require.NoError(t, table.Register(route("GET", "/users/{id:int}", "GetUserByID")))

	err := table.Register(route("GET", "/users/{name}", "GetUserByName"))
	var ambiguous *AmbiguousMappingError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, RequestMappingName, ambiguous.Table)
	assert.Equal(t, "GET", ambiguous.Method)
	assert.Equal(t, "example.com/app.Controller.GetUser", ambiguous.Existing)
	assert.Equal(t, "example.com/app.Controller.GetUserByName", ambiguous.Handler)
	assert.Contains(t, err.Error(), "ambiguous mapping in request_mapping")

	assert.Len(t, table.Routes(), 3)
}

func TestMappingTable_Register_NilHandler(t *testing.T) {
	table := NewFrameworkMappingTable()
	r := route("GET", "/", "Index")
	r.Handler = nil

	assert.True(t, errors.Is(table.Register(r), ErrInvalidMapping))
}

func TestMappingTable_Lookup(t *testing.T) {
	table := NewFrameworkMappingTable()
	require.NoError(t, table.Register(route("GET", "/users/{id}", "GetUser")))
	require.NoError(t, table.Register(route("GET", "/users/new", "NewUser")))
	require.NoError(t, table.Register(route("GET", "/users/{id:int}", "GetUserByID")))
	require.NoError(t, table.Register(route("GET", "/{*}", "Fallback")))
	require.NoError(t, table.Register(route("DELETE", "/items/{id}", "DeleteItem")))

	tests := []struct {
		path    string
		handler string
		params  map[string]string
	}{
		{"/users/new", "NewUser", map[string]string{}},
		{"/users/42", "GetUserByID", map[string]string{"id": "42"}},
		{"/users/bob", "GetUser", map[string]string{"id": "bob"}},
		{"/somewhere/else", "Fallback", map[string]string{"*": "somewhere/else"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			match, err := table.Lookup("GET", tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.handler, match.Route.HandlerName)
			assert.Equal(t, tt.params, match.Params)
			assert.Equal(t, FrameworkMappingName, match.Mapping)
		})
	}

	// the GET fallback also matches /items/1
	_, err := table.Lookup("POST", "/items/1")
	var mna *MethodNotAllowedError
	require.True(t, errors.As(err, &mna))
	assert.Equal(t, []string{"DELETE", "GET"}, mna.Allowed)

	_, err = table.Lookup("GET", "/")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestMappingTable_Lookup_MethodNotAllowed(t *testing.T) {
	table := NewRequestMappingTable()
	require.NoError(t, table.Register(route("DELETE", "/items/{id}", "DeleteItem")))
	require.NoError(t, table.Register(route("PUT", "/items/{id:int}", "ReplaceItem")))

	_, err := table.Lookup("POST", "/items/1")
	var mna *MethodNotAllowedError
	require.True(t, errors.As(err, &mna))
	assert.Equal(t, []string{"DELETE", "PUT"}, mna.Allowed)

	_, err = table.Lookup("POST", "/items/abc")
	require.True(t, errors.As(err, &mna))
	assert.Equal(t, []string{"DELETE"}, mna.Allowed)
}

func TestMappingTable_Order(t *testing.T) {
	assert.Equal(t, 0, NewRequestMappingTable().Order())
	assert.Equal(t, 10, NewFrameworkMappingTable().Order())
	assert.Less(t, NewRequestMappingTable().Order(), NewFrameworkMappingTable().Order())
}
