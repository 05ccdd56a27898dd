package audit

import "testing"

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "uuid segment with query string",
			path: "/candidates/3fa85f64-5717-4562-b3fc-2c963f66afa6?sort=name",
			want: "/candidates/:id",
		},
		{
			name: "uuid segment mid-path",
			path: "/elections/3fa85f64-5717-4562-b3fc-2c963f66afa6/candidates",
			want: "/elections/:id/candidates",
		},
		{
			name: "uppercase uuid",
			path: "/elections/3FA85F64-5717-4562-B3FC-2C963F66AFA6",
			want: "/elections/:id",
		},
		{
			name: "multiple uuid segments",
			path: "/elections/3fa85f64-5717-4562-b3fc-2c963f66afa6/candidates/9b2d8f10-0a1b-4c2d-8e3f-5a6b7c8d9e0f",
			want: "/elections/:id/candidates/:id",
		},
		{
			name: "plain path lowercased",
			path: "/Elections",
			want: "/elections",
		},
		{
			name: "non-uuid id untouched",
			path: "/states/42",
			want: "/states/42",
		},
		{
			name: "uuid-like but wrong length untouched",
			path: "/states/3fa85f64-5717-4562-b3fc",
			want: "/states/3fa85f64-5717-4562-b3fc",
		},
		{
			name: "query only",
			path: "/elections?status=active",
			want: "/elections",
		},
		{
			name: "root",
			path: "/",
			want: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEndpoint(tt.path); got != tt.want {
				t.Fatalf("NormalizeEndpoint(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
