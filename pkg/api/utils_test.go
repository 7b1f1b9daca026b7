package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseURLAPI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "leading slash", in: "/agent/agent/index", want: "/api/agent/agent/index"},
		{name: "no leading slash", in: "agent/agent/index", want: "/api/agent/agent/index"},
		{name: "empty", in: "", want: "/api/"},
		{name: "only one slash trimmed", in: "//x", want: "/api//x"},
		{name: "root", in: "/", want: "/api/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseURLAPI(tt.in))
		})
	}
}

func TestBaseURLAPI_SameResultWithOrWithoutSlash(t *testing.T) {
	for _, p := range []string{"login/login", "game/product/index", "general/config/save"} {
		assert.Equal(t, BaseURLAPI(p), BaseURLAPI("/"+p))
	}
}
