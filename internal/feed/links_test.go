package feed

import "testing"

func TestBuildLinks(t *testing.T) {
	tests := []struct {
		name     string
		page     int64
		pageSize int
		complete bool
		want     []Link
	}{
		{
			name: "head page incomplete", page: 0, pageSize: 10, complete: false,
			want: []Link{
				{Rel: "last", Href: "/0/10"},
				{Rel: "self", Href: "/0/10"},
			},
		},
		{
			name: "head page complete", page: 0, pageSize: 10, complete: true,
			want: []Link{
				{Rel: "last", Href: "/0/10"},
				{Rel: "previous", Href: "/1/10"},
				{Rel: "self", Href: "/0/10"},
			},
		},
		{
			name: "middle page", page: 2, pageSize: 10, complete: true,
			want: []Link{
				{Rel: "last", Href: "/0/10"},
				{Rel: "next", Href: "/1/10"},
				{Rel: "previous", Href: "/3/10"},
				{Rel: "self", Href: "/2/10"},
			},
		},
		{
			name: "oldest page", page: 4, pageSize: 25, complete: false,
			want: []Link{
				{Rel: "last", Href: "/0/25"},
				{Rel: "next", Href: "/3/25"},
				{Rel: "self", Href: "/4/25"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildLinks(tt.page, tt.pageSize, tt.complete)
			if len(got) != len(tt.want) {
				t.Fatalf("BuildLinks(%d, %d, %v) = %v, want %v", tt.page, tt.pageSize, tt.complete, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("link %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildLinksSelfAlwaysLast(t *testing.T) {
	for page := int64(0); page < 4; page++ {
		for _, complete := range []bool{true, false} {
			links := BuildLinks(page, 10, complete)
			last := links[len(links)-1]
			if last.Rel != RelSelf {
				t.Errorf("page %d complete=%v: last link rel = %q, want self", page, complete, last.Rel)
			}
			if links[0].Rel != RelLast || links[0].Href != "/0/10" {
				t.Errorf("page %d complete=%v: first link = %+v, want last -> /0/10", page, complete, links[0])
			}
		}
	}
}
