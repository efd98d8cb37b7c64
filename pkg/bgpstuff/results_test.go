package bgpstuff

import "testing"

func TestFullPath(t *testing.T) {
	cases := []struct {
		name string
		path []uint32
		set  []uint32
		want string
	}{
		{"plain path", []uint32{1, 2, 3}, nil, "1 2 3"},
		{"aggregated", []uint32{1}, []uint32{1, 2}, "1 { 1 2 }"},
		{"single hop", []uint32{15169}, nil, "15169"},
		{"empty", nil, nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ASPath{Path: tc.path, Set: tc.set}
			if got := p.FullPath(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
