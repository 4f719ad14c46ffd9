// Copyright 2026 The Seqmux Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seqmux

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRequestPathStripsQuery tests query-string stripping
func TestRequestPathStripsQuery(t *testing.T) {
	t.Parallel()
	req := NewRequest(httptest.NewRequest(http.MethodGet, "/a/b?x=1", nil))
	assert.Equal(t, "/a/b", req.Path())
	assert.Equal(t, http.MethodGet, req.Method())
}

// TestParamPrecedence tests the lookup order across sources: named
// wins, then cookie, then form body, then query
func TestParamPrecedence(t *testing.T) {
	t.Parallel()

	raw := httptest.NewRequest(http.MethodPost, "/x?key=query&only_query=q",
		strings.NewReader("key=form&only_form=f"))
	raw.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	raw.AddCookie(&http.Cookie{Name: "key", Value: "cookie"})
	raw.AddCookie(&http.Cookie{Name: "only_cookie", Value: "c"})

	req := NewRequest(raw)
	req.MergeParams(map[string]string{"key": "named"})

	assert.Equal(t, "named", req.Param("key"))
	assert.Equal(t, "c", req.Param("only_cookie"))
	assert.Equal(t, "f", req.Param("only_form"))
	assert.Equal(t, "q", req.Param("only_query"))
	assert.Empty(t, req.Param("absent"))
	assert.Equal(t, "fallback", req.ParamDefault("absent", "fallback"))
}

// TestMergeParamsOverwrites tests merge-by-key into the named sink
func TestMergeParamsOverwrites(t *testing.T) {
	t.Parallel()
	req := NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))

	req.MergeParams(map[string]string{"a": "1", "b": "2"})
	req.MergeParams(map[string]string{"b": "3"})

	named := req.ParamsNamed()
	require.Len(t, named, 2)
	assert.Equal(t, "1", named["a"])
	assert.Equal(t, "3", named["b"])
}
