package attr_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-templated/pkg/attr"
)

func TestSpecFromOptions(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		opts    attr.Options
		want    attr.Spec
		wantErr bool
	}{
		{
			name: "starting value",
			attr: "website",
			opts: attr.StartingValue("http://"),
			want: attr.Spec{Attribute: "website", Kind: attr.KindStartingValue, Value: "http://"},
		},
		{
			name: "label",
			attr: "bio",
			opts: attr.Label("Tell us about yourself."),
			want: attr.Spec{Attribute: "bio", Kind: attr.KindLabel, Value: "Tell us about yourself."},
		},
		{
			name:    "both kinds",
			attr:    "email",
			opts:    attr.Options{"label": "user@server.com", "starting_value": "user@server.com"},
			wantErr: true,
		},
		{
			name:    "no options",
			attr:    "name",
			opts:    nil,
			wantErr: true,
		},
		{
			name:    "unknown key",
			attr:    "name",
			opts:    attr.Options{"invalid_option": "foo"},
			wantErr: true,
		},
		{
			name:    "unknown key alongside a valid one",
			attr:    "name",
			opts:    attr.Options{"label": "Name", "placeholder": "foo"},
			wantErr: true,
		},
		{
			name:    "missing attribute",
			attr:    "  ",
			opts:    attr.Label("x"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := attr.SpecFromOptions(tt.attr, tt.opts)
			if tt.wantErr {
				if !errors.Is(err, attr.ErrConfiguration) {
					t.Fatalf("expected configuration error, got %v", err)
				}
				var cfgErr *attr.ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected *ConfigurationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("spec mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseKindFallsBackToStartingValue(t *testing.T) {
	if got := attr.ParseKind("label"); got != attr.KindLabel {
		t.Fatalf("expected label kind, got %q", got)
	}
	for _, raw := range []string{"placeholder", "LABEL", " label", "Label", ""} {
		if got := attr.ParseKind(raw); got != attr.KindStartingValue {
			t.Fatalf("ParseKind(%q): expected starting_value fallback, got %q", raw, got)
		}
	}
}

func TestSpecMatchesTrimsValue(t *testing.T) {
	spec := attr.Spec{Attribute: "website", Kind: attr.KindStartingValue, Value: "http://"}
	if !spec.Matches("http://  ") {
		t.Fatalf("expected trailing whitespace to be ignored")
	}
	if spec.Matches("http://example.com") {
		t.Fatalf("expected edited value not to match")
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := (&attr.ConfigurationError{Attribute: "bio", Reason: "boom"}).WithRecordType("user")
	if got, want := err.Error(), "attr: invalid template for user.bio: boom"; got != want {
		t.Fatalf("message mismatch: want %q, got %q", want, got)
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"bio":            "Bio",
		"favorite_books": "Favorite books",
		"élan_vital":     "Élan vital",
		"über":           "Über",
		"_":              "_",
		"":               "",
	}
	for in, want := range cases {
		if got := attr.Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
