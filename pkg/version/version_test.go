package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr error
	}{
		{in: "1", want: Version{Major: 1, Precision: 1}},
		{in: "v1.2", want: Version{Major: 1, Minor: 2, Precision: 2}},
		{in: "1.2.3", want: Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}},
		{in: "1.28.0-gke.1337000", want: Version{Major: 1, Minor: 28, Precision: 3, Extras: "-gke.1337000"}},
		{in: "", wantErr: ErrEmptyVersion},
		{in: "1.2.3.4", wantErr: ErrTooManyComponents},
		{in: "1..2", wantErr: ErrNonNumeric},
		{in: "a.b", wantErr: ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr error
	}{
		{in: "6.8.0-1028-aws", want: Version{Major: 6, Minor: 8, Precision: 3, Extras: "-1028-aws"}},
		{in: "5.15.153.1-microsoft-standard-WSL2", want: Version{Major: 5, Minor: 15, Patch: 153, Precision: 3, Extras: ".1-microsoft-standard-WSL2"}},
		{in: "4.19.112+", want: Version{Major: 4, Minor: 19, Patch: 112, Precision: 3, Extras: "+"}},
		{in: "23.5.0", want: Version{Major: 23, Minor: 5, Precision: 3}},
		{in: "6.1\n", want: Version{Major: 6, Minor: 1, Precision: 2}},
		{in: "6.", want: Version{Major: 6, Precision: 1, Extras: "."}},
		{in: "", wantErr: ErrEmptyVersion},
		{in: "linux", wantErr: ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKernel(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "6.8.0", b: "6.8.0", want: 0},
		{a: "6.8.1", b: "6.8.0", want: 1},
		{a: "5.4", b: "6.1.0", want: -1},
		{a: "6", b: "6.8.0", want: 0},
		{a: "4.19.112", b: "4.20", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			a, err := ParseKernel(tt.a)
			require.NoError(t, err)
			b, err := ParseKernel(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Compare(b))
			assert.Equal(t, tt.want >= 0, a.AtLeast(b))
		})
	}
}

func TestString(t *testing.T) {
	v, err := ParseKernel("6.8.0-1028-aws")
	require.NoError(t, err)
	assert.Equal(t, "6.8.0", v.String())

	v, err = ParseVersion("v2")
	require.NoError(t, err)
	assert.Equal(t, "2", v.String())
}

func FuzzParseKernel(f *testing.F) {
	for _, s := range []string{"6.8.0-1028-aws", "4.19.112+", "", ".", "1..2", "99999999999999999999"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		v, err := ParseKernel(s)
		if err != nil {
			return
		}
		if v.Precision < 1 || v.Precision > 3 {
			t.Errorf("ParseKernel(%q) precision %d", s, v.Precision)
		}
		if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
			t.Errorf("ParseKernel(%q) negative component %+v", s, v)
		}
	})
}
