package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringList_Value(t *testing.T) {
	tests := []struct {
		name     string
		list     StringList
		expected string
	}{
		{"Nil list", nil, "[]"},
		{"Empty list", StringList{}, "[]"},
		{"Populated list", StringList{"plumbing", "heating"}, `["plumbing","heating"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.list.Value()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected StringList
		wantErr  bool
	}{
		{"Nil value", nil, StringList{}, false},
		{"Empty bytes", []byte{}, StringList{}, false},
		{"String input", `["a","b"]`, StringList{"a", "b"}, false},
		{"Byte input", []byte(`["x"]`), StringList{"x"}, false},
		{"Unsupported type", 42, nil, true},
		{"Malformed JSON", "{not json", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list StringList
			err := list.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, list)
		})
	}
}
