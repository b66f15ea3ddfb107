package cache

import (
	"strings"
	"testing"
)

func joinWithSeparator(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

func TestDefaultKeySerializer_BasicTypes(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name      string
		namespace string
		args      []any
		want      string
	}{
		{
			name:      "no args",
			namespace: "filter",
			args:      []any{},
			want:      "filter",
		},
		{
			name:      "single int",
			namespace: "page",
			args:      []any{42},
			want:      joinWithSeparator("page", "42"),
		},
		{
			name:      "multiple basic types",
			namespace: "filter",
			args:      []any{1, "hello", true, 3.14},
			want:      joinWithSeparator("filter", "1", `"hello"`, "true", "3.14"),
		},
		{
			name:      "strings are quoted",
			namespace: "filter",
			args:      []any{"a,b", "a", "b"},
			want:      joinWithSeparator("filter", `"a,b"`, `"a"`, `"b"`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey(tt.namespace, tt.args...)
			if got != tt.want {
				t.Errorf("SerializeKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultKeySerializer_NilValues(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name string
		arg  any
		want string
	}{
		{"nil interface", nil, "nil"},
		{"nil pointer", (*int)(nil), "nil"},
		{"nil slice", ([]int)(nil), "slice:nil"},
		{"nil map", (map[string]int)(nil), "map:nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey("ns", tt.arg)
			if want := joinWithSeparator("ns", tt.want); got != want {
				t.Errorf("SerializeKey() = %v, want %v", got, want)
			}
		})
	}
}

func TestDefaultKeySerializer_Collections(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name string
		arg  any
		want string
	}{
		{"empty slice", []int{}, "slice[0]:{}"},
		{"int slice", []int{1, 2, 3}, "slice[3]:{1,2,3}"},
		{"string slice keeps order", []string{"bob", "alice"}, `slice[2]:{"bob","alice"}`},
		{"nested slice", [][]int{{1, 2}, {3, 4}}, "slice[2]:{slice[2]:{1,2},slice[2]:{3,4}}"},
		{"array", [2]string{"hello", "world"}, `array[2]:{"hello","world"}`},
		{"empty map", map[string]int{}, "map[0]:{}"},
		{"map", map[string]int{"count": 10, "age": 25}, `map[2]:{"age"=25,"count"=10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey("ns", tt.arg)
			if want := joinWithSeparator("ns", tt.want); got != want {
				t.Errorf("SerializeKey() = %v, want %v", got, want)
			}
		})
	}
}

func TestDefaultKeySerializer_Structs(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	type bound struct {
		Min *float64 `json:"min,omitempty"`
		Max *float64 `json:"max,omitempty"`
	}

	type withHidden struct {
		Name   string `json:"name"`
		Secret string `json:"-"`
		Plain  int
		hidden string
	}

	low := 10.0

	tests := []struct {
		name string
		arg  any
		want string
	}{
		{
			name: "fields sorted by json name",
			arg:  bound{Min: &low},
			want: "struct:{max:nil,min:10}",
		},
		{
			name: "ignored and unexported fields are skipped",
			arg:  withHidden{Name: "lamp", Secret: "x", Plain: 3, hidden: "y"},
			want: `struct:{Plain:3,name:"lamp"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey("ns", tt.arg)
			if want := joinWithSeparator("ns", tt.want); got != want {
				t.Errorf("SerializeKey() = %v, want %v", got, want)
			}
		})
	}
}

func TestDefaultKeySerializer_Unsupported(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	key1 := serializer.SerializeKey("ns", func() {})
	key2 := serializer.SerializeKey("ns", make(chan int))

	if key1 != joinWithSeparator("ns", "unsupported:func()") {
		t.Errorf("unexpected func serialization %v", key1)
	}
	if key2 != joinWithSeparator("ns", "unsupported:chan int") {
		t.Errorf("unexpected chan serialization %v", key2)
	}
}

func TestDefaultKeySerializer_MapOrderIndependence(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	first := map[string][]string{}
	first["category"] = []string{"home"}
	first["currency"] = []string{"USD"}
	first["name"] = []string{"lamp"}

	second := map[string][]string{}
	second["name"] = []string{"lamp"}
	second["currency"] = []string{"USD"}
	second["category"] = []string{"home"}

	for i := 0; i < 20; i++ {
		if a, b := serializer.SerializeKey("ns", first), serializer.SerializeKey("ns", second); a != b {
			t.Fatalf("keys differ by insertion order: %v != %v", a, b)
		}
	}
}

func BenchmarkDefaultKeySerializer(b *testing.B) {
	serializer := NewDefaultKeySerializer()
	args := []any{1, "benchmark", []int{1, 2, 3}, map[string]int{"test": 1}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		serializer.SerializeKey("bench", args...)
	}
}
