package uvmac

import "testing"

func TestNewParamsValidation(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"default", DefaultParams(), true},
		{"128-bit tag", Params{TagBits: 128, BlockBytes: 128}, true},
		{"min block", Params{TagBits: 64, BlockBytes: 16}, true},
		{"max block", Params{TagBits: 64, BlockBytes: 4096}, true},
		{"bad tag bits", Params{TagBits: 32, BlockBytes: 128}, false},
		{"block too small", Params{TagBits: 64, BlockBytes: 8}, false},
		{"block too large", Params{TagBits: 64, BlockBytes: 8192}, false},
		{"block not power of two", Params{TagBits: 64, BlockBytes: 96}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParams(tc.p)
			if tc.ok && err != nil {
				t.Errorf("NewParams(%+v): unexpected error %v", tc.p, err)
			}
			if !tc.ok && err == nil {
				t.Errorf("NewParams(%+v): expected ErrInvalidConfiguration, got nil", tc.p)
			}
		})
	}
}

func TestNHTableWordsAndTagHalves(t *testing.T) {
	p64 := DefaultParams()
	if p64.tagHalves() != 1 {
		t.Errorf("64-bit tagHalves = %d, want 1", p64.tagHalves())
	}
	if got, want := p64.nhTableWords(), p64.blockWords(); got != want {
		t.Errorf("64-bit nhTableWords = %d, want %d", got, want)
	}

	p128, err := NewParams(Params{TagBits: 128, BlockBytes: 128})
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	if p128.tagHalves() != 2 {
		t.Errorf("128-bit tagHalves = %d, want 2", p128.tagHalves())
	}
	if got, want := p128.nhTableWords(), p128.blockWords()+2; got != want {
		t.Errorf("128-bit nhTableWords = %d, want %d", got, want)
	}
}
