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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResponseBodyComposition tests body set, append, and prepend
func TestResponseBodyComposition(t *testing.T) {
	t.Parallel()
	res := NewResponse(nil)

	require.NoError(t, res.SetBody("middle"))
	require.NoError(t, res.Append("-end"))
	require.NoError(t, res.Prepend("start-"))
	assert.Equal(t, "start-middle-end", res.Body())
}

// TestResponseLock tests that every mutation on a locked response
// fails with ErrResponseLocked until unlocked
func TestResponseLock(t *testing.T) {
	t.Parallel()
	res := NewResponse(httptest.NewRecorder())
	res.Lock()

	assert.ErrorIs(t, res.SetStatus(http.StatusTeapot), ErrResponseLocked)
	assert.ErrorIs(t, res.SetBody("x"), ErrResponseLocked)
	assert.ErrorIs(t, res.Append("x"), ErrResponseLocked)
	assert.ErrorIs(t, res.Prepend("x"), ErrResponseLocked)
	assert.ErrorIs(t, res.SetHeader("X-Test", "1"), ErrResponseLocked)
	assert.ErrorIs(t, res.Redirect("/away", http.StatusFound), ErrResponseLocked)
	assert.True(t, res.Locked())

	res.Unlock()
	require.NoError(t, res.SetBody("x"))
	assert.Equal(t, http.StatusOK, res.Status())
}

// TestResponseSend tests transport write and the double-send guard
func TestResponseSend(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	res := NewResponse(rec)

	require.NoError(t, res.SetStatus(http.StatusCreated))
	require.NoError(t, res.SetHeader("X-Test", "1"))
	require.NoError(t, res.SetBody("payload"))
	require.NoError(t, res.Send())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Test"))
	assert.Equal(t, "payload", rec.Body.String())
	assert.True(t, res.Sent())
	assert.True(t, res.Locked())

	assert.ErrorIs(t, res.Send(), ErrResponseAlreadySent)
}

// TestResponseRedirect tests the Location header and status
func TestResponseRedirect(t *testing.T) {
	t.Parallel()
	res := NewResponse(httptest.NewRecorder())

	require.NoError(t, res.Redirect("/elsewhere", http.StatusSeeOther))
	assert.Equal(t, "/elsewhere", res.Header().Get("Location"))
	assert.Equal(t, http.StatusSeeOther, res.Status())
}

// TestDataBag tests the explicit key/value accessors
func TestDataBag(t *testing.T) {
	t.Parallel()
	bag := NewDataBag()

	assert.Nil(t, bag.Get("missing"))
	assert.False(t, bag.Has("missing"))

	bag.Set("k", 42)
	assert.Equal(t, 42, bag.Get("k"))
	v, ok := bag.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, bag.Len())
	assert.Equal(t, []string{"k"}, bag.Keys())

	bag.Delete("k")
	assert.False(t, bag.Has("k"))
	assert.Equal(t, 0, bag.Len())
}
