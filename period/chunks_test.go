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

package period

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugradid/ugradid-period/calendar"
)

func TestPeriod_ChunkSym(t *testing.T) {
	tests := []struct {
		period   Period
		expected calendar.Chunk
	}{
		{p(d(2013, 1, 1), d(2013, 12, 31)), calendar.Year},
		{p(d(2013, 1, 1), d(2013, 12, 30)), calendar.Irregular},
		{p(d(2015, 1, 1), d(2015, 6, 30)), calendar.Half},
		{p(d(2015, 7, 1), d(2015, 9, 30)), calendar.Quarter},
		{p(d(2015, 3, 1), d(2015, 4, 30)), calendar.Bimonth},
		{p(d(2015, 2, 1), d(2015, 2, 28)), calendar.Month},
		{p(d(2015, 11, 1), d(2015, 11, 15)), calendar.Semimonth},
		{p(d(2015, 11, 16), d(2015, 11, 30)), calendar.Semimonth},
		{p(d(2014, 12, 29), d(2015, 1, 11)), calendar.Biweek},
		{p(d(2015, 1, 12), d(2015, 1, 18)), calendar.Week},
		{p(d(2015, 1, 12), d(2015, 1, 12)), calendar.Day},
		{p(d(2015, 1, 12), d(2015, 1, 13)), calendar.Irregular},
		{p(d(2015, 2, 1), d(2015, 3, 31)), calendar.Irregular},
	}
	for _, test := range tests {
		t.Run(test.period.String(), func(t *testing.T) {
			assert.Equal(t, test.expected, test.period.ChunkSym())
		})
	}
}

func TestDaysToChunk(t *testing.T) {
	assert.Equal(t, calendar.Year, DaysToChunk(360, DefaultTolerancePct))
	assert.Equal(t, calendar.Irregular, DaysToChunk(360, 0))
	assert.Equal(t, calendar.Year, DaysToChunk(365, 0))
	assert.Equal(t, calendar.Day, DaysToChunk(1, DefaultTolerancePct))
	assert.Equal(t, calendar.Week, DaysToChunk(7, DefaultTolerancePct))
	assert.Equal(t, calendar.Biweek, DaysToChunk(14, DefaultTolerancePct))
	assert.Equal(t, calendar.Semimonth, DaysToChunk(15, DefaultTolerancePct))
	assert.Equal(t, calendar.Irregular, DaysToChunk(8, 50), "short kinds ignore the tolerance")
	assert.Equal(t, calendar.Irregular, DaysToChunk(20, DefaultTolerancePct))
	assert.Equal(t, calendar.Month, DaysToChunk(30, DefaultTolerancePct))
	assert.Equal(t, calendar.Quarter, DaysToChunk(91, DefaultTolerancePct))
	assert.Equal(t, calendar.Irregular, DaysToChunk(70, DefaultTolerancePct))
	assert.Equal(t, calendar.Half, DaysToChunk(183, DefaultTolerancePct))
	assert.Equal(t, calendar.Irregular, DaysToChunk(0, DefaultTolerancePct))
	assert.Equal(t, calendar.Irregular, DaysToChunk(360, -5))
}

func TestPeriod_ChunkName(t *testing.T) {
	assert.Equal(t, "Quarter", p(d(2015, 1, 5), d(2015, 4, 5)).ChunkName())
	assert.Equal(t, "Day", p(d(2015, 1, 5), d(2015, 1, 5)).ChunkName())
	assert.Equal(t, "Period", p(d(2015, 1, 5), d(2015, 1, 24)).ChunkName())
	assert.Equal(t, "Year", p(d(2015, 1, 5), d(2015, 12, 30)).ChunkName())
	assert.Equal(t, "Period", p(d(2015, 1, 5), d(2015, 12, 30)).ChunkNameWith(0))
}

func TestChunkContaining(t *testing.T) {
	chunk, err := ChunkContaining(d(2015, 11, 20), calendar.Semimonth)
	require.NoError(t, err)
	assert.Equal(t, p(d(2015, 11, 16), d(2015, 11, 30)), chunk)

	chunk, err = ChunkContaining(d(2015, 11, 20), calendar.Week)
	require.NoError(t, err)
	assert.Equal(t, p(d(2015, 11, 16), d(2015, 11, 22)), chunk)

	_, err = ChunkContaining(d(2015, 11, 20), calendar.Irregular)
	assert.ErrorIs(t, err, ErrInvalidChunk)
}

func TestPeriod_Chunks_Years(t *testing.T) {
	period := p(d(2009, 12, 15), d(2013, 1, 10))
	y2010 := p(d(2010, 1, 1), d(2010, 12, 31))
	y2011 := p(d(2011, 1, 1), d(2011, 12, 31))
	y2012 := p(d(2012, 1, 1), d(2012, 12, 31))

	t.Run("whole chunks only", func(t *testing.T) {
		chunks, err := period.Chunks(calendar.Year)
		require.NoError(t, err)
		assert.Equal(t, []Period{y2010, y2011, y2012}, chunks)
	})
	t.Run("partial first and last", func(t *testing.T) {
		chunks, err := period.Chunks(calendar.Year, WithPartialFirst(), WithPartialLast())
		require.NoError(t, err)
		assert.Equal(t, []Period{p(d(2009, 12, 15), d(2009, 12, 31)), y2010, y2011, y2012, p(d(2013, 1, 1), d(2013, 1, 10))}, chunks)
	})
	t.Run("round up takes precedence over partial last", func(t *testing.T) {
		chunks, err := period.Chunks(calendar.Year, WithPartialLast(), WithRoundUpLast())
		require.NoError(t, err)
		assert.Equal(t, []Period{y2010, y2011, y2012, p(d(2013, 1, 1), d(2013, 12, 31))}, chunks)
	})
	t.Run("policy", func(t *testing.T) {
		chunks, err := period.Chunks(calendar.Year, WithPolicy(ChunkPolicy{PartialFirst: true}))
		require.NoError(t, err)
		assert.Equal(t, []Period{p(d(2009, 12, 15), d(2009, 12, 31)), y2010, y2011, y2012}, chunks)
	})
	t.Run("by name", func(t *testing.T) {
		chunks, err := period.ChunksNamed("Year")
		require.NoError(t, err)
		assert.Len(t, chunks, 3)
	})
}

func TestPeriod_Chunks_Weeks(t *testing.T) {
	// November 2015 starts on a sunday and ends on a monday
	november := p(d(2015, 11, 1), d(2015, 11, 30))

	chunks, err := november.Chunks(calendar.Week)
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	assert.Equal(t, p(d(2015, 11, 2), d(2015, 11, 8)), chunks[0])
	assert.Equal(t, p(d(2015, 11, 23), d(2015, 11, 29)), chunks[3])

	chunks, err = november.Chunks(calendar.Week, WithPartialFirst(), WithPartialLast())
	require.NoError(t, err)
	require.Len(t, chunks, 6)
	assert.Equal(t, p(d(2015, 11, 1), d(2015, 11, 1)), chunks[0])
	assert.Equal(t, p(d(2015, 11, 30), d(2015, 11, 30)), chunks[5])
	assert.True(t, november.SpannedBy(chunks))
	assert.False(t, HasOverlaps(chunks))
}

func TestPeriod_Chunks_SingleDayTail(t *testing.T) {
	period := p(d(2015, 1, 1), d(2015, 2, 1))

	chunks, err := period.Chunks(calendar.Month, WithPartialLast())
	require.NoError(t, err)
	assert.Equal(t, []Period{p(d(2015, 1, 1), d(2015, 1, 31)), p(d(2015, 2, 1), d(2015, 2, 1))}, chunks)
}

func TestPeriod_Chunks_WholeChunk(t *testing.T) {
	november := p(d(2015, 11, 1), d(2015, 11, 30))

	chunks, err := november.Chunks(calendar.Month)
	require.NoError(t, err)
	assert.Equal(t, []Period{november}, chunks)
}

func TestPeriod_Chunks_InsideOneChunk(t *testing.T) {
	period := p(d(2015, 11, 5), d(2015, 11, 20))
	november := p(d(2015, 11, 1), d(2015, 11, 30))

	t.Run("no partials", func(t *testing.T) {
		chunks, err := period.Chunks(calendar.Month)
		require.NoError(t, err)
		assert.NotNil(t, chunks)
		assert.Empty(t, chunks)

		chunks, err = period.Chunks(calendar.Month, WithRoundUpLast())
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
	t.Run("strict", func(t *testing.T) {
		_, err := period.Chunks(calendar.Month, WithStrict())
		assert.ErrorIs(t, err, ErrChunkTooLarge)
	})
	t.Run("partial returns self", func(t *testing.T) {
		chunks, err := period.Chunks(calendar.Month, WithPartialFirst())
		require.NoError(t, err)
		assert.Equal(t, []Period{period}, chunks)

		chunks, err = period.Chunks(calendar.Month, WithPartialLast(), WithStrict())
		require.NoError(t, err)
		assert.Equal(t, []Period{period}, chunks)
	})
	t.Run("round up returns enclosing chunk", func(t *testing.T) {
		chunks, err := period.Chunks(calendar.Month, WithPartialLast(), WithRoundUpLast())
		require.NoError(t, err)
		assert.Equal(t, []Period{november}, chunks)
	})
}

func TestPeriod_Chunks_StrictLongEnough(t *testing.T) {
	// 57 days, longer than any month but holding no whole one
	period := p(d(2015, 1, 2), d(2015, 2, 27))

	chunks, err := period.Chunks(calendar.Month, WithStrict())
	require.NoError(t, err)
	assert.NotNil(t, chunks)
	assert.Empty(t, chunks)

	_, err = p(d(2015, 1, 2), d(2015, 1, 28)).Chunks(calendar.Month, WithStrict())
	assert.ErrorIs(t, err, ErrChunkTooLarge)
}

func TestPeriod_Chunks_AcrossOneBoundary(t *testing.T) {
	period := p(d(2014, 12, 20), d(2015, 1, 10))

	chunks, err := period.Chunks(calendar.Year)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = period.Chunks(calendar.Year, WithStrict())
	assert.ErrorIs(t, err, ErrChunkTooLarge)

	chunks, err = period.Chunks(calendar.Year, WithPartialLast())
	require.NoError(t, err)
	assert.Equal(t, []Period{p(d(2015, 1, 1), d(2015, 1, 10))}, chunks)

	chunks, err = period.Chunks(calendar.Year, WithPartialFirst())
	require.NoError(t, err)
	assert.Equal(t, []Period{p(d(2014, 12, 20), d(2014, 12, 31))}, chunks)
}

func TestPeriod_Chunks_Days(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	year := mustParse(t, "2015", "")
	for i := 0; i < 25; i++ {
		period := randomPeriod(rnd, year)
		chunks, err := period.Chunks(calendar.Day)
		require.NoError(t, err)
		require.Len(t, chunks, period.Size())
		require.Equal(t, period.First(), chunks[0].First())
		require.Equal(t, period.Last(), chunks[len(chunks)-1].Last())
		for j, chunk := range chunks {
			require.Equal(t, 1, chunk.Size())
			if j > 0 {
				require.True(t, chunks[j-1].Contiguous(chunk))
			}
		}
	}
}

func TestPeriod_Chunks_Invalid(t *testing.T) {
	period := mustParse(t, "2015", "")

	_, err := period.Chunks(calendar.Irregular)
	assert.ErrorIs(t, err, ErrInvalidChunk)
	_, err = period.Chunks(calendar.Chunk(42))
	assert.ErrorIs(t, err, ErrInvalidChunk)
	_, err = period.ChunksNamed("fortnight")
	assert.ErrorIs(t, err, ErrInvalidChunk)
}

func TestPeriod_Chunks_AllSizes(t *testing.T) {
	period := p(d(2013, 2, 11), d(2016, 8, 20))
	for _, size := range calendar.Chunks() {
		t.Run(size.String(), func(t *testing.T) {
			chunks, err := period.Chunks(size, WithPartialFirst(), WithPartialLast())
			require.NoError(t, err)
			assert.True(t, period.SpannedBy(chunks))
			assert.False(t, HasOverlaps(chunks))
			for _, chunk := range chunks {
				assert.True(t, chunk.SubsetOf(period))
			}
			for _, chunk := range chunks[1 : len(chunks)-1] {
				assert.Equal(t, size, chunk.ChunkSym())
			}
		})
	}
}
