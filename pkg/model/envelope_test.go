package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_DecodesStringAndNumberPaging(t *testing.T) {
	raw := `{"code":0,"msg":"ok","data":{"total":12,"pages":2,"pageNumber":"1","pageSize":10,"rows":[{"id":1}]}}`

	var env Envelope[Page[struct {
		ID int `json:"id"`
	}]]
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	assert.True(t, env.OK())
	assert.Equal(t, FlexInt(12), env.Data.Total)
	assert.Equal(t, 1, env.Data.PageNumber.Int())
	assert.Equal(t, 10, env.Data.PageSize.Int())
	require.Len(t, env.Data.Rows, 1)
	assert.Equal(t, 1, env.Data.Rows[0].ID)
}

func TestFlexInt_Unmarshal(t *testing.T) {
	cases := map[string]FlexInt{
		`5`:     5,
		`"7"`:   7,
		`""`:    0,
		`null`:  0,
		`"3.0"`: 3,
	}
	for in, want := range cases {
		var n FlexInt
		require.NoError(t, json.Unmarshal([]byte(in), &n), in)
		assert.Equal(t, want, n, in)
	}

	var bad FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestFlexString_Unmarshal(t *testing.T) {
	var v struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"normal","b":1700000000,"c":null}`), &v))
	assert.Equal(t, "normal", v.A.String())
	assert.Equal(t, "1700000000", v.B.String())
	assert.Empty(t, v.C)
}

func TestEnvelope_Err(t *testing.T) {
	ok := &Envelope[any]{Code: 0}
	assert.NoError(t, ok.Err())

	failed := &Envelope[any]{Code: 1, Msg: "密码错误"}
	err := failed.Err()
	var be *BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 1, be.Code)
	assert.Contains(t, err.Error(), "密码错误")

	var missing *Envelope[any]
	assert.False(t, missing.OK())
	assert.Error(t, missing.Err())
}
