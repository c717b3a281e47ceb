package transcoder

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wippyai/hostvalue/errors"
	"github.com/wippyai/hostvalue/host"
	"github.com/wippyai/hostvalue/model"
)

type tree []tree

func TestCyclicInput(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"decode self-referencing object", func() error {
			obj := host.NewObject()
			obj.Set("self", obj)
			_, err := Decode(obj, nil)
			return err
		}},
		{"decode self-referencing array as recursive shape", func() error {
			shape, err := NewCompiler().Compile(reflect.TypeOf(tree{}))
			if err != nil {
				return err
			}
			arr := host.NewArray(host.Null{})
			arr.Elems[0] = arr
			_, err = Decode(arr, shape)
			return err
		}},
		{"encode self-referencing option", func() error {
			v := model.Value{Kind: model.KindOption}
			v.Inner = &v
			_, err := Encode(v)
			return err
		}},
		{"encode self-containing seq", func() error {
			elems := make([]model.Value, 1)
			elems[0] = model.Value{Kind: model.KindSeq, Elems: elems}
			_, err := Encode(elems[0])
			return err
		}},
		{"marshal pointer cycle", func() error {
			n := &node{Value: 1}
			n.Next = n
			_, err := Marshal(n)
			return err
		}},
		{"marshal self-containing map", func() error {
			m := map[string]any{}
			m["self"] = m
			_, err := Marshal(m)
			return err
		}},
		{"marshal self-containing slice", func() error {
			tr := tree{nil}
			tr[0] = tr
			_, err := Marshal(tr)
			return err
		}},
		{"from go pointer cycle", func() error {
			n := &node{}
			n.Next = n
			_, err := FromGo(n)
			return err
		}},
		{"to go through option cycle", func() error {
			v := model.Struct("node", model.FieldOf("Next", model.None()))
			v.Fields[0].Value = model.Value{Kind: model.KindOption, Inner: &v}
			var out node
			return ToGo(v, &out)
		}},
		{"to go interface from seq cycle", func() error {
			elems := make([]model.Value, 1)
			elems[0] = model.Value{Kind: model.KindSeq, Elems: elems}
			var out any
			return ToGo(elems[0], &out)
		}},
		{"natural from variant cycle", func() error {
			v := model.Value{Kind: model.KindNewtypeVariant, Name: "E", Variant: "Next"}
			v.Inner = &v
			_, err := Natural(v)
			return err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, errors.ErrDepthExceeded) {
				t.Errorf("expected depth_exceeded, got %v", err)
			}
		})
	}
}

func TestCompile_RecursiveSlice(t *testing.T) {
	s, err := NewCompiler().Compile(reflect.TypeOf(tree{}))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if s.Kind != ShapeSeq || s.Elem != s {
		t.Fatalf("shape = %s, want a seq of itself", s)
	}
	if got := s.String(); got != "seq<transcoder.tree>" {
		t.Errorf("String() = %q", got)
	}

	type graph map[string]graph
	g, err := NewCompiler().Compile(reflect.TypeOf(graph{}))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if g.Kind != ShapeMap || g.Value != g {
		t.Errorf("shape = %s, want a map of itself", g)
	}
}

func TestMarshalUnmarshal_RecursiveSlice(t *testing.T) {
	in := tree{tree{}, tree{tree{}}}
	hv, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out tree
	if err := Unmarshal(hv, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(in, out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_MaxDepth(t *testing.T) {
	chain := &node{Value: 0}
	for i := 1; i < 10; i++ {
		chain = &node{Value: int32(i), Next: chain}
	}

	enc := NewEncoderWithOptions(Options{MaxDepth: 3})
	_, err := enc.Marshal(chain)
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindDepthExceeded {
		t.Fatalf("expected depth_exceeded, got %v", err)
	}
	if e.Phase != errors.PhaseAdapt {
		t.Errorf("Phase = %s, want adapt", e.Phase)
	}

	if _, err := enc.Marshal(node{Value: 1}); err != nil {
		t.Errorf("shallow value should pass: %v", err)
	}
	if _, err := NewEncoder().Marshal(chain); err != nil {
		t.Errorf("default depth should pass: %v", err)
	}
}
