package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/controller"
	"github.com/goliatone/go-templated/pkg/record"
	"github.com/goliatone/go-templated/pkg/registry"
	"github.com/goliatone/go-templated/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	textAreas    []string
	inputPos     int
	textPos      int
	inputCfgs    []InputConfig
	textAreaCfgs []TextAreaConfig
	infoMessages []string
	err          error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.textAreaCfgs = append(s.textAreaCfgs, cfg)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newRegistry() *registry.Registry {
	reg := registry.New()
	reg.MustDeclare("user", "bio", attr.Label("Tell us about yourself."))
	reg.MustDeclare("user", "website", attr.StartingValue("http://"))
	return reg
}

func TestFillerPromptsWithTemplates(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"http://example.com"},
		textAreas: []string{"I like Go."},
	}
	filler, err := New(newRegistry(), WithPromptDriver(driver), WithTextArea("bio"))
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}

	user := testsupport.NewUser()
	answers, err := filler.Fill(context.Background(), user)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	wantTextArea := []TextAreaConfig{{Message: "Bio", Default: "", Help: "Tell us about yourself."}}
	if diff := cmp.Diff(wantTextArea, driver.textAreaCfgs); diff != "" {
		t.Fatalf("text area prompts mismatch (-want +got):\n%s", diff)
	}
	wantInput := []InputConfig{{Message: "Website", Default: "http://", Help: `Starts as "http://"`}}
	if diff := cmp.Diff(wantInput, driver.inputCfgs); diff != "" {
		t.Fatalf("input prompts mismatch (-want +got):\n%s", diff)
	}

	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	for _, answer := range answers {
		if answer.State != controller.ShowingUserData {
			t.Fatalf("expected %s to show user data, got %s", answer.Attribute, answer.State)
		}
	}
	if got := record.Deref(answers[0].Stored); got != "I like Go." {
		t.Fatalf("unexpected stored bio %q", got)
	}
	if got := record.Deref(user.Values["website"]); got != "http://example.com" {
		t.Fatalf("unexpected stored website %q", got)
	}
}

func TestFillerNormalizesUntouchedTemplates(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "  http://  "}}
	filler, err := New(newRegistry(), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}

	user := testsupport.NewUser()
	answers, err := filler.Fill(context.Background(), user)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	for _, answer := range answers {
		if answer.State != controller.ShowingTemplate {
			t.Fatalf("expected %s to be back on its template, got %s", answer.Attribute, answer.State)
		}
		if answer.Stored != nil {
			t.Fatalf("expected %s stored as nil, got %q", answer.Attribute, *answer.Stored)
		}
	}
	if user.Values["bio"] != nil || user.Values["website"] != nil {
		t.Fatalf("expected record values to be nil, got %#v", user.Values)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected a notice per untouched field, got %v", driver.infoMessages)
	}
}

func TestFillerKeepsExistingUserData(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Existing bio", "http://"}}
	filler, err := New(newRegistry(), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}

	user := testsupport.NewUser()
	user.Values["bio"] = record.String("Existing bio")
	if _, err := filler.Fill(context.Background(), user); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if driver.inputCfgs[0].Default != "Existing bio" {
		t.Fatalf("expected live value as default, got %q", driver.inputCfgs[0].Default)
	}
}

func TestFillerPropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{err: ErrAborted}
	filler, err := New(newRegistry(), WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}
	if _, err := filler.Fill(context.Background(), testsupport.NewUser()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestFillerLeavesRecordUntouchedWhenLaterPromptFails(t *testing.T) {
	driver := &stubDriver{
		textAreas: []string{"I like Go."},
		err:       ErrAborted,
	}
	filler, err := New(newRegistry(), WithPromptDriver(driver), WithTextArea("bio"))
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}

	user := testsupport.NewUser()
	user.Values["website"] = record.String("http://golang.org")
	if _, err := filler.Fill(context.Background(), user); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if len(driver.textAreaCfgs) != 1 {
		t.Fatalf("expected bio to be prompted first, got %d text area prompts", len(driver.textAreaCfgs))
	}

	want := map[string]*string{
		"bio":            nil,
		"website":        record.String("http://golang.org"),
		"favorite_books": nil,
	}
	if diff := cmp.Diff(want, user.Values); diff != "" {
		t.Fatalf("record changed after aborted fill (-want +got):\n%s", diff)
	}
}

func TestFillerMissingAttribute(t *testing.T) {
	filler, err := New(newRegistry(), WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new filler: %v", err)
	}
	_, err = filler.Fill(context.Background(), record.NewMap("user", "website"))
	if !errors.Is(err, record.ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
