package cashflow

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	testCases := []struct {
		name  string
		build func(w *jsonObjectWriter)
		want  string
	}{
		{
			name:  "empty object",
			build: func(w *jsonObjectWriter) {},
			want:  `{}`,
		},
		{
			name: "keys keep their order",
			build: func(w *jsonObjectWriter) {
				w.Append("z", 1).Append("a", "hello")
			},
			want: `{"z":1,"a":"hello"}`,
		},
		{
			name: "optional skips zero values",
			build: func(w *jsonObjectWriter) {
				w.Append("a", 0)
				w.Optional("b", "")
				w.Optional("c", 0)
				w.Optional("d", "hello")
			},
			want: `{"a":0,"d":"hello"}`,
		},
		{
			name: "embed raw object",
			build: func(w *jsonObjectWriter) {
				w.Append("a", 1)
				w.Embed(json.RawMessage(`{"c":3,"d":4}`))
				w.Embed(json.RawMessage(`{}`))
				w.Append("b", 2)
			},
			want: `{"a":1,"c":3,"d":4,"b":2}`,
		},
		{
			name: "embed money",
			build: func(w *jsonObjectWriter) {
				w.Append("id", "t1")
				w.EmbedFrom(M(-12.5, "EUR"))
			},
			want: `{"id":"t1","currency":"EUR","amount":"-12.50"}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var w jsonObjectWriter
			tc.build(&w)
			got, err := w.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() unexpected error: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestJsonObjectWriter_EmbedNotAnObject(t *testing.T) {
	var w jsonObjectWriter
	w.Append("a", 1)
	w.EmbedFrom([]int{1, 2})
	w.Append("b", 2)
	if _, err := w.MarshalJSON(); err == nil {
		t.Errorf("MarshalJSON() error = nil, want an error for a non object embed")
	}
}
