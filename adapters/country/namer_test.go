package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamer_Name(t *testing.T) {
	namer := NewNamer(nil)

	tests := []struct {
		code string
		want string
	}{
		{"BE", "Belgium"},
		{"be", "Belgium"},
		{" nl ", "Netherlands"},
		{"DE", "Germany"},
		{"JP", "Japan"},
		{"ZZ", "ZZ"},
		{"BEL", "BEL"},
		{"B1", "B1"},
		{"", ""},
		{"  ", ""},
		{"nan", "nan"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, namer.Name(tt.code))
		})
	}
}

func TestNamer_Overrides(t *testing.T) {
	namer := NewNamer(map[string]string{"kr": "Korea, Republic of", "XK": "Kosovo"})

	assert.Equal(t, "Korea, Republic of", namer.Name("KR"))
	assert.Equal(t, "Kosovo", namer.Name("xk"))
	assert.Equal(t, "France", namer.Name("FR"))
}
