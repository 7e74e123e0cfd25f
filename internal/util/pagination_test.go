package util

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalCount int64
		wantPage   int
		wantLimit  int
		wantPages  int
		wantNext   bool
		wantOffset int
	}{
		{
			name: "첫 페이지", page: 1, limit: 10, totalCount: 25,
			wantPage: 1, wantLimit: 10, wantPages: 3, wantNext: true, wantOffset: 0,
		},
		{
			name: "마지막 페이지", page: 3, limit: 10, totalCount: 25,
			wantPage: 3, wantLimit: 10, wantPages: 3, wantNext: false, wantOffset: 20,
		},
		{
			name: "빈 목록", page: 1, limit: 10, totalCount: 0,
			wantPage: 1, wantLimit: 10, wantPages: 0, wantNext: false, wantOffset: 0,
		},
		{
			name: "페이지 0은 1로 보정", page: 0, limit: 10, totalCount: 5,
			wantPage: 1, wantLimit: 10, wantPages: 1, wantNext: false, wantOffset: 0,
		},
		{
			name: "음수 limit은 기본값으로 보정", page: 2, limit: -1, totalCount: 15,
			wantPage: 2, wantLimit: DefaultPageLimit, wantPages: 2, wantNext: false, wantOffset: 10,
		},
		{
			name: "딱 나누어 떨어지는 개수", page: 2, limit: 5, totalCount: 10,
			wantPage: 2, wantLimit: 5, wantPages: 2, wantNext: false, wantOffset: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.page, tt.limit, tt.totalCount)

			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", p.Limit, tt.wantLimit)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.wantNext)
			}
			if p.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", p.Offset, tt.wantOffset)
			}
		})
	}
}

func TestPaginateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("offset never negative and aligned to page size", prop.ForAll(
		func(page, limit int, totalCount int64) bool {
			p := Paginate(page, limit, totalCount)
			return p.Offset >= 0 && p.Offset == (p.Page-1)*p.Limit
		},
		gen.IntRange(-10, 1000),
		gen.IntRange(-10, 100),
		gen.Int64Range(0, 100000),
	))

	properties.Property("total pages covers exactly the total count", prop.ForAll(
		func(limit int, totalCount int64) bool {
			p := Paginate(1, limit, totalCount)
			covered := int64(p.TotalPages) * int64(p.Limit)
			if covered < totalCount {
				return false
			}
			// The last page must not be empty
			return totalCount == 0 || covered-totalCount < int64(p.Limit)
		},
		gen.IntRange(-10, 100),
		gen.Int64Range(0, 100000),
	))

	properties.Property("has_next iff a later row exists", prop.ForAll(
		func(page, limit int, totalCount int64) bool {
			p := Paginate(page, limit, totalCount)
			return p.HasNext == (int64(p.Page)*int64(p.Limit) < totalCount)
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 100),
		gen.Int64Range(0, 100000),
	))

	properties.TestingRun(t)
}
