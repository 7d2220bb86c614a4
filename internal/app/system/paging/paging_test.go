package paging

import (
	"net/http/httptest"
	"slices"
	"testing"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{10, 6, 2},
		{13, 6, 3},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestPaginate_TenRecordsSizeSix(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	p1, total := Paginate(items, 1, 6)
	if total != 2 {
		t.Fatalf("totalPages = %d, want 2", total)
	}
	if len(p1) != 6 {
		t.Errorf("page 1 len = %d, want 6", len(p1))
	}

	p2, _ := Paginate(items, 2, 6)
	if len(p2) != 4 {
		t.Errorf("page 2 len = %d, want 4", len(p2))
	}
	if p2[0] != 7 || p2[3] != 10 {
		t.Errorf("page 2 = %v, want [7 8 9 10]", p2)
	}
}

func TestPaginate_OutOfRangeYieldsEmpty(t *testing.T) {
	items := []string{"a", "b", "c"}
	for _, page := range []int{0, -1, 2, 99} {
		got, total := Paginate(items, page, 6)
		if len(got) != 0 {
			t.Errorf("Paginate(page=%d) = %v, want empty", page, got)
		}
		if total != 1 {
			t.Errorf("Paginate(page=%d) total = %d, want 1", page, total)
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	got, total := Paginate([]int{}, 1, 6)
	if len(got) != 0 || total != 0 {
		t.Errorf("Paginate(empty) = (%v, %d), want ([], 0)", got, total)
	}
}

// Concatenating every page must reconstruct the input exactly.
func TestPaginate_Completeness(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for size := 1; size <= 9; size++ {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}
			_, total := Paginate(items, 1, size)
			if want := (n + size - 1) / size; total != want {
				t.Fatalf("n=%d size=%d total = %d, want %d", n, size, total, want)
			}
			var rebuilt []int
			for p := 1; p <= total; p++ {
				page, _ := Paginate(items, p, size)
				rebuilt = append(rebuilt, page...)
			}
			if !slices.Equal(rebuilt, items) {
				t.Fatalf("n=%d size=%d rebuilt = %v, want %v", n, size, rebuilt, items)
			}
		}
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/directory", 1},
		{"/directory?page=3", 3},
		{"/directory?page=0", 1},
		{"/directory?page=-2", 1},
		{"/directory?page=abc", 1},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := ParsePage(r); got != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name                   string
		page, size, shown, tot int
		want                   Range
	}{
		{"no results", 1, 6, 0, 0, Range{}},
		{"first of two", 1, 6, 6, 2, Range{Start: 1, End: 6, NextPage: 2}},
		{"last of two", 2, 6, 4, 2, Range{Start: 7, End: 10, PrevPage: 1}},
		{"middle", 2, 6, 6, 3, Range{Start: 7, End: 12, PrevPage: 1, NextPage: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRange(tt.page, tt.size, tt.shown, tt.tot)
			if got != tt.want {
				t.Errorf("ComputeRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPages(t *testing.T) {
	if got := Pages(0); len(got) != 0 {
		t.Errorf("Pages(0) = %v, want empty", got)
	}
	if got := Pages(3); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("Pages(3) = %v, want [1 2 3]", got)
	}
}
