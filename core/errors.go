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

	"github.com/labstack/echo/v4"
	"schneider.vip/problem"
)

// StatusCodeResolverContextKey contains the key for the Echo context parameter that specifies a custom HTTP status code resolver.
const StatusCodeResolverContextKey = "!!StatusCodeResolver"

// OperationIDContextKey contains the key for the Echo context parameter that specifies the name of the OpenAPI operation being called.
const OperationIDContextKey = "!!OperationId"

// ModuleNameContextKey contains the key for the Echo context parameter that specifies the name of the module that handles the request.
const ModuleNameContextKey = "!!ModuleName"

const unmappedStatusCode = 0

// ErrorStatusCodeResolver defines an interface for mapping errors to HTTP status codes.
type ErrorStatusCodeResolver interface {
	ResolveStatusCode(err error) int
}

// ResolveStatusCode returns the status code of the first entry in mapping that err matches (errors.Is).
// It returns 0 when nothing matches.
func ResolveStatusCode(err error, mapping map[error]int) int {
	for curr, code := range mapping {
		if errors.Is(err, curr) {
			return code
		}
	}
	return unmappedStatusCode
}

// NotFoundError returns an error that maps to a HTTP 404 Status Not Found.
func NotFoundError(errStr string, args ...interface{}) error {
	return NewHTTPError(http.StatusNotFound, fmt.Errorf(errStr, args...))
}

// InvalidInputError returns an error that maps to a HTTP 400 Bad Request.
func InvalidInputError(errStr string, args ...interface{}) error {
	return NewHTTPError(http.StatusBadRequest, fmt.Errorf(errStr, args...))
}

// NewHTTPError wraps err so the HTTP error handler answers with statusCode.
func NewHTTPError(statusCode int, err error) error {
	return httpStatusCodeError{msg: err.Error(), statusCode: statusCode, err: err}
}

type httpStatusCodeError struct {
	msg        string
	statusCode int
	err        error
}

func (e httpStatusCodeError) Is(other error) bool {
	_, is := other.(httpStatusCodeError)
	return is
}

func (e httpStatusCodeError) Unwrap() error {
	return e.err
}

func (e httpStatusCodeError) Error() string {
	return e.msg
}

// createHTTPErrorHandler renders errors as RFC 7807 problem details.
func createHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		title := "Operation failed"
		if operationID, ok := ctx.Get(OperationIDContextKey).(string); ok && operationID != "" {
			title = fmt.Sprintf("%s failed", operationID)
		}
		statusCode := getHTTPStatusCode(err, ctx)
		detail := err.Error()
		if echoErr, ok := err.(*echo.HTTPError); ok {
			detail = fmt.Sprintf("%v", echoErr.Message)
		}
		problemResult := problem.New(problem.Title(title), problem.Status(statusCode), problem.Detail(detail))
		if !ctx.Response().Committed {
			if _, err := problemResult.WriteTo(ctx.Response()); err != nil {
				Logger().WithError(err).Error("Unable to write problem response")
			}
		} else {
			Logger().Warnf("Unable to send error back to client, response already committed: %v", err)
		}
	}
}

func getHTTPStatusCode(err error, ctx echo.Context) int {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	var predefined httpStatusCodeError
	if errors.As(err, &predefined) {
		return predefined.statusCode
	}
	statusCode := unmappedStatusCode
	if resolver, ok := ctx.Get(StatusCodeResolverContextKey).(ErrorStatusCodeResolver); ok {
		statusCode = resolver.ResolveStatusCode(err)
	}
	if statusCode == unmappedStatusCode {
		statusCode = http.StatusInternalServerError
	}
	return statusCode
}
