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
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ugradid/ugradid-period/calendar"
	"github.com/ugradid/ugradid-period/core"
	"github.com/ugradid/ugradid-period/datespec"
	"github.com/ugradid/ugradid-period/period"
	"github.com/ugradid/ugradid-period/reporting"
)

var _ ServerInterface = (*Wrapper)(nil)
var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

// Wrapper is needed to connect the implementation to the echo ServiceWrapper
type Wrapper struct {
	Service  reporting.Service
	Registry reporting.Registry
}

// ResolveStatusCode maps errors returned by this API to specific HTTP status codes.
func (a *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		reporting.ErrNotFound:         http.StatusNotFound,
		reporting.ErrNameConflict:     http.StatusConflict,
		reporting.ErrInvalidName:      http.StatusBadRequest,
		reporting.ErrInvalidOperation: http.StatusBadRequest,
		period.ErrInvalidRange:        http.StatusBadRequest,
		period.ErrInvalidInput:        http.StatusBadRequest,
		period.ErrInvalidChunk:        http.StatusBadRequest,
		period.ErrChunkTooLarge:       http.StatusUnprocessableEntity,
		datespec.ErrInvalidSpec:       http.StatusBadRequest,
	})
}

// Preprocess is called just before the API operation itself is invoked.
func (a *Wrapper) Preprocess(operationID string, context echo.Context) {
	context.Set(core.StatusCodeResolverContextKey, a)
	context.Set(core.OperationIDContextKey, operationID)
	context.Set(core.ModuleNameContextKey, "reporting")
}

func (a *Wrapper) Routes(router core.EchoRouter) {
	RegisterHandlers(router, a)
}

// Describe summarizes the period spanned by the from and to date specs.
func (a Wrapper) Describe(ctx echo.Context, params DescribeParams) error {
	to := ""
	if params.To != nil {
		to = *params.To
	}
	p, err := period.Parse(params.From, to)
	if err != nil {
		return err
	}
	desc, err := a.Service.Describe(p)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPeriodDescription(desc))
}

// Chunks divides a period. Policy fields present in the request override the configured policy.
func (a Wrapper) Chunks(ctx echo.Context) error {
	req := ChunksRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	p, err := parsePeriod(req.Period)
	if err != nil {
		return err
	}
	size, err := calendar.ParseChunk(req.Size)
	if err != nil {
		return err
	}

	chunks, err := a.Service.Chunks(p, size, policyOverride(req))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPeriodList(chunks))
}

// Combine applies a set operation to two periods.
func (a Wrapper) Combine(ctx echo.Context) error {
	req := CombineRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	op, err := reporting.ParseOperation(req.Op)
	if err != nil {
		return err
	}
	first, err := parsePeriod(req.A)
	if err != nil {
		return err
	}
	second, err := parsePeriod(req.B)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPeriodList(a.Service.Combine(op, first, second)))
}

// Gaps lists the parts of a period not covered by the given periods.
func (a Wrapper) Gaps(ctx echo.Context) error {
	req := GapsRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	p, err := parsePeriod(req.Period)
	if err != nil {
		return err
	}
	covered := make([]period.Period, 0, len(req.Periods))
	for _, text := range req.Periods {
		c, err := parsePeriod(text)
		if err != nil {
			return err
		}
		covered = append(covered, c)
	}
	return ctx.JSON(http.StatusOK, toPeriodList(a.Service.Gaps(p, covered)))
}

// ListNamed returns all named periods.
func (a Wrapper) ListNamed(ctx echo.Context) error {
	list, err := a.Registry.List()
	if err != nil {
		return err
	}
	result := make([]NamedPeriod, len(list))
	for i, entry := range list {
		result[i] = NamedPeriod{Name: entry.Name, Period: entry.Period.String()}
	}
	return ctx.JSON(http.StatusOK, result)
}

// FindNamed returns the period bound to name.
func (a Wrapper) FindNamed(ctx echo.Context, name string) error {
	p, err := a.Registry.Find(name)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NamedPeriod{Name: name, Period: p.String()})
}

// SaveNamed binds name to the period in the request.
func (a Wrapper) SaveNamed(ctx echo.Context, name string) error {
	req := SaveNamedRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	p, err := parsePeriod(req.Period)
	if err != nil {
		return err
	}
	overwrite := req.Overwrite != nil && *req.Overwrite
	if err := a.Registry.Save(name, p, overwrite); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NamedPeriod{Name: name, Period: p.String()})
}

// DeleteNamed removes name from the registry.
func (a Wrapper) DeleteNamed(ctx echo.Context, name string) error {
	if err := a.Registry.Delete(name); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func parsePeriod(text string) (period.Period, error) {
	var p period.Period
	if err := p.UnmarshalText([]byte(text)); err != nil {
		return period.Period{}, core.InvalidInputError("invalid period '%s': %w", text, err)
	}
	return p, nil
}

func policyOverride(req ChunksRequest) period.ChunkOption {
	return func(policy *period.ChunkPolicy) {
		if req.PartialFirst != nil {
			policy.PartialFirst = *req.PartialFirst
		}
		if req.PartialLast != nil {
			policy.PartialLast = *req.PartialLast
		}
		if req.RoundUpLast != nil {
			policy.RoundUpLast = *req.RoundUpLast
		}
		if req.Strict != nil {
			policy.Strict = *req.Strict
		}
	}
}

func toPeriodList(periods []period.Period) PeriodList {
	result := make(PeriodList, len(periods))
	for i, p := range periods {
		result[i] = p.String()
	}
	return result
}

func toPeriodDescription(desc reporting.Description) PeriodDescription {
	result := PeriodDescription{
		Period:      desc.Period.String(),
		First:       desc.First.String(),
		Last:        desc.Last.String(),
		Days:        desc.Days,
		Months:      desc.Months,
		Years:       desc.Years,
		Chunk:       desc.Chunk.String(),
		ChunkName:   desc.ChunkName,
		TradingDays: desc.TradingDays,
	}
	if desc.Name != "" {
		result.Name = &desc.Name
	}
	return result
}
