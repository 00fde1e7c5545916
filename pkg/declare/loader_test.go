package declare_test

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/declare"
	"github.com/goliatone/go-templated/pkg/registry"
)

func TestLoadFS(t *testing.T) {
	set, err := declare.LoadFS(os.DirFS("testdata/basic"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []declare.Declaration{
		{RecordType: "blog_post", Attribute: "summary", Options: attr.Label("One line & no more"), Source: "blog_post.json"},
		{RecordType: "user", Attribute: "bio", Options: attr.Label("Tell us about yourself."), Source: "user.yaml"},
		{RecordType: "user", Attribute: "website", Options: attr.StartingValue("http://"), Source: "user.yaml"},
	}
	if diff := cmp.Diff(want, set.Declarations()); diff != "" {
		t.Fatalf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSNil(t *testing.T) {
	set, err := declare.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !set.Empty() {
		t.Fatalf("expected empty set, got %d declarations", set.Len())
	}
}

func TestApplyDeclaresOnRegistry(t *testing.T) {
	set, err := declare.LoadFS(os.DirFS("testdata/basic"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	reg := registry.New()
	if err := set.Apply(reg); err != nil {
		t.Fatalf("apply: %v", err)
	}

	spec, ok := reg.SpecFor("user", "bio")
	if !ok {
		t.Fatalf("expected user.bio to be declared")
	}
	want := attr.Spec{Attribute: "bio", Kind: attr.KindLabel, Value: "Tell us about yourself."}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Fatalf("spec mismatch (-want +got):\n%s", diff)
	}
	if got := reg.RecordTypes(); !cmp.Equal(got, []string{"blog_post", "user"}) {
		t.Fatalf("unexpected record types: %v", got)
	}
}

func TestApplyStrictRegistryRejectsRedeclaration(t *testing.T) {
	set, err := declare.Parse([]byte("records:\n  user:\n    bio:\n      label: Hi\n"), "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	reg := registry.New(registry.WithStrictRedeclare())
	reg.MustDeclare("user", "bio", attr.Label("Existing"))

	err = set.Apply(reg)
	if !errors.Is(err, attr.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadFSErrors(t *testing.T) {
	t.Run("unknown option", func(t *testing.T) {
		_, err := declare.LoadFS(os.DirFS("testdata/invalid"))
		if !errors.Is(err, attr.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})

	cases := map[string]string{
		"empty":         "   ",
		"malformed":     "records: [unterminated",
		"no options":    "records:\n  user:\n    bio: {}\n",
		"both options":  "records:\n  user:\n    bio:\n      label: a\n      starting_value: b\n",
		"blank record":  "records:\n  \" \":\n    bio:\n      label: a\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := declare.Parse([]byte(doc), name+".yaml"); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestAddRejectsOptionKeysCollidingAfterTrim(t *testing.T) {
	set := declare.NewSet()
	err := set.Add(declare.Declaration{
		RecordType: "user",
		Attribute:  "bio",
		Options:    attr.Options{"label ": "a", "label": "b"},
		Source:     "inline",
	})
	if !errors.Is(err, attr.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !set.Empty() {
		t.Fatalf("expected nothing declared, got %d", set.Len())
	}

	_, err = declare.Parse([]byte("records:\n  user:\n    bio:\n      label: a\n      \"label \": b\n"), "collide.yaml")
	if !errors.Is(err, attr.ErrConfiguration) {
		t.Fatalf("expected configuration error from parse, got %v", err)
	}
}

func TestSanitisesMarkup(t *testing.T) {
	set, err := declare.Parse([]byte(`{"records":{"user":{"bio":{"label":"<script>alert(1)</script>Hello <b>you</b>"}}}}`), "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	decls := set.Declarations()
	if len(decls) != 1 {
		t.Fatalf("expected one declaration, got %d", len(decls))
	}
	if got := decls[0].Options[attr.OptionLabel]; got != "Hello you" {
		t.Fatalf("expected markup stripped, got %q", got)
	}
}
