/*
 * Copyright (c) 2021 ugradid community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugradid/ugradid-period/core"
	"github.com/ugradid/ugradid-period/db"
	"github.com/ugradid/ugradid-period/period"
	"github.com/ugradid/ugradid-period/reporting"
)

type apiCtx struct {
	echo    *echo.Echo
	wrapper *Wrapper
}

func newAPICtx(t *testing.T) apiCtx {
	t.Helper()
	cfg := core.NewServerConfig()
	cfg.Datadir = t.TempDir()

	database := db.NewDatabaseInstance()
	require.NoError(t, database.Configure(*cfg))
	t.Cleanup(func() {
		_ = database.Shutdown()
	})
	instance := reporting.NewReportingInstance(database)
	require.NoError(t, instance.Configure(*cfg))
	require.NoError(t, instance.Start())

	wrapper := &Wrapper{Service: instance, Registry: instance}
	e := echo.New()
	wrapper.Routes(e)
	return apiCtx{echo: e, wrapper: wrapper}
}

// serve runs a request through the router and returns the recorder and the handler error
func (a apiCtx) serve(method, target, body string) (*httptest.ResponseRecorder, error) {
	var handlerErr error
	a.echo.HTTPErrorHandler = func(err error, c echo.Context) {
		handlerErr = err
		code := a.wrapper.ResolveStatusCode(err)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
		}
		if code == 0 {
			code = http.StatusInternalServerError
		}
		c.Response().WriteHeader(code)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec, handlerErr
}

func TestWrapper_Describe(t *testing.T) {
	ctx := newAPICtx(t)

	t.Run("ok", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodGet, "/internal/period/v1/describe?from=2015-3Q", "")

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		var desc PeriodDescription
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
		assert.Equal(t, "2015-3Q", desc.Period)
		assert.Equal(t, "2015-07-01", desc.First)
		assert.Equal(t, "2015-09-30", desc.Last)
		assert.Equal(t, 92, desc.Days)
		assert.Equal(t, "quarter", desc.Chunk)
		assert.Equal(t, "Quarter", desc.ChunkName)
		assert.Nil(t, desc.Name)
	})
	t.Run("ok - from and to", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodGet, "/internal/period/v1/describe?from=2015-07-04&to=2015-08-01", "")

		require.NoError(t, err)
		var desc PeriodDescription
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
		assert.Equal(t, "2015-07-04 to 2015-08-01", desc.Period)
		assert.Equal(t, 29, desc.Days)
	})
	t.Run("error - missing from", func(t *testing.T) {
		_, err := ctx.serve(http.MethodGet, "/internal/period/v1/describe", "")

		var httpErr *echo.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
	t.Run("error - inverted range", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodGet, "/internal/period/v1/describe?from=2015-08-01&to=2015-07-04", "")

		assert.ErrorIs(t, err, period.ErrInvalidRange)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWrapper_Chunks(t *testing.T) {
	ctx := newAPICtx(t)

	t.Run("ok - configured policy", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPost, "/internal/period/v1/chunks",
			`{"period": "2015-11-15 to 2016-02-10", "size": "month"}`)

		require.NoError(t, err)
		assert.JSONEq(t, `["2015-12", "2016-01"]`, rec.Body.String())
	})
	t.Run("ok - policy override", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPost, "/internal/period/v1/chunks",
			`{"period": "2015-11-15 to 2016-02-10", "size": "month", "partialFirst": true, "partialLast": true}`)

		require.NoError(t, err)
		assert.JSONEq(t, `["2015-11-15 to 2015-11-30", "2015-12", "2016-01", "2016-02-01 to 2016-02-10"]`, rec.Body.String())
	})
	t.Run("error - strict", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPost, "/internal/period/v1/chunks",
			`{"period": "2015-11-15 to 2015-11-20", "size": "year", "strict": true}`)

		assert.ErrorIs(t, err, period.ErrChunkTooLarge)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
	t.Run("error - unknown size", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPost, "/internal/period/v1/chunks",
			`{"period": "2015", "size": "fortnight"}`)

		assert.ErrorIs(t, err, period.ErrInvalidChunk)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("error - invalid period", func(t *testing.T) {
		_, err := ctx.serve(http.MethodPost, "/internal/period/v1/chunks",
			`{"period": "someday", "size": "month"}`)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid period 'someday'")
	})
}

func TestWrapper_Combine(t *testing.T) {
	ctx := newAPICtx(t)

	t.Run("ok", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPost, "/internal/period/v1/combine",
			`{"op": "difference", "a": "2015-1Q", "b": "2015-02"}`)

		require.NoError(t, err)
		assert.JSONEq(t, `["2015-01", "2015-03"]`, rec.Body.String())
	})
	t.Run("ok - absent result", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPost, "/internal/period/v1/combine",
			`{"op": "union", "a": "2015-01", "b": "2015-03"}`)

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
	t.Run("error - unknown operation", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPost, "/internal/period/v1/combine",
			`{"op": "xor", "a": "2015-01", "b": "2015-03"}`)

		assert.ErrorIs(t, err, reporting.ErrInvalidOperation)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWrapper_Gaps(t *testing.T) {
	ctx := newAPICtx(t)

	rec, err := ctx.serve(http.MethodPost, "/internal/period/v1/gaps",
		`{"period": "2015", "periods": ["2015-1Q", "2015-05-01 to 2015-10-31"]}`)

	require.NoError(t, err)
	assert.JSONEq(t, `["2015-04", "2015-11-01 to 2015-12-31"]`, rec.Body.String())
}

func TestWrapper_Named(t *testing.T) {
	ctx := newAPICtx(t)

	rec, err := ctx.serve(http.MethodPut, "/internal/period/v1/named/fy2015", `{"period": "2015"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "fy2015", "period": "2015"}`, rec.Body.String())

	rec, err = ctx.serve(http.MethodGet, "/internal/period/v1/named/fy2015", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "fy2015", "period": "2015"}`, rec.Body.String())

	rec, err = ctx.serve(http.MethodGet, "/internal/period/v1/describe?from=2015", "")
	require.NoError(t, err)
	var desc PeriodDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	require.NotNil(t, desc.Name)
	assert.Equal(t, "fy2015", *desc.Name)

	t.Run("conflict", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPut, "/internal/period/v1/named/fy2015", `{"period": "2016"}`)

		assert.ErrorIs(t, err, reporting.ErrNameConflict)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
	t.Run("overwrite", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodPut, "/internal/period/v1/named/current", `{"period": "2015-1H"}`)
		require.NoError(t, err)
		rec, err = ctx.serve(http.MethodPut, "/internal/period/v1/named/current", `{"period": "2015-2H", "overwrite": true}`)

		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "current", "period": "2015-2H"}`, rec.Body.String())
	})
	t.Run("list", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodGet, "/internal/period/v1/named", "")

		require.NoError(t, err)
		assert.JSONEq(t, `[{"name": "current", "period": "2015-2H"}, {"name": "fy2015", "period": "2015"}]`, rec.Body.String())
	})
	t.Run("delete", func(t *testing.T) {
		rec, err := ctx.serve(http.MethodDelete, "/internal/period/v1/named/fy2015", "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec, err = ctx.serve(http.MethodGet, "/internal/period/v1/named/fy2015", "")
		assert.ErrorIs(t, err, reporting.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWrapper_Preprocess(t *testing.T) {
	w := &Wrapper{}
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	w.Preprocess("Describe", ctx)

	assert.Equal(t, w, ctx.Get(core.StatusCodeResolverContextKey))
	assert.Equal(t, "Describe", ctx.Get(core.OperationIDContextKey))
	assert.Equal(t, "reporting", ctx.Get(core.ModuleNameContextKey))
}

func TestWrapper_ResolveStatusCode(t *testing.T) {
	w := &Wrapper{}

	assert.Equal(t, http.StatusNotFound, w.ResolveStatusCode(reporting.ErrNotFound))
	assert.Equal(t, 0, w.ResolveStatusCode(errors.New("other")))
}
