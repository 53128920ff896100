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

package core

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestResolveStatusCode(t *testing.T) {
	mapping := map[error]int{errTest: http.StatusNotFound}

	assert.Equal(t, http.StatusNotFound, ResolveStatusCode(errTest, mapping))
	assert.Equal(t, http.StatusNotFound, ResolveStatusCode(fmt.Errorf("lookup: %w", errTest), mapping))
	assert.Equal(t, 0, ResolveStatusCode(errors.New("other"), mapping))
}

func TestHTTPErrors(t *testing.T) {
	cause := errors.New("cause")

	err := InvalidInputError("bad period: %w", cause)
	assert.EqualError(t, err, "bad period: cause")
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, httpStatusCodeError{})

	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, http.StatusBadRequest, getHTTPStatusCode(err, ctx))
	assert.Equal(t, http.StatusNotFound, getHTTPStatusCode(NotFoundError("no period named %s", "q3"), ctx))
	assert.Equal(t, http.StatusConflict, getHTTPStatusCode(NewHTTPError(http.StatusConflict, cause), ctx))
	assert.Equal(t, http.StatusMethodNotAllowed, getHTTPStatusCode(echo.ErrMethodNotAllowed, ctx))
	assert.Equal(t, http.StatusInternalServerError, getHTTPStatusCode(cause, ctx))
}
