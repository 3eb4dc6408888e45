package buildnumber

import (
	"context"
	"errors"
	"testing"

	"github.com/macreleaser/buildtrain/pkg/prompt"
	"github.com/macreleaser/buildtrain/pkg/testflight"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type scriptedPrompter struct {
	answer string
	err    error
	asked  int
}

func (p *scriptedPrompter) Interactive() bool { return true }

func (p *scriptedPrompter) Ask(ctx context.Context, question string) (string, error) {
	p.asked++
	return p.answer, p.err
}

func trainsOf(versions ...string) *testflight.Trains {
	trains := testflight.NewTrains()
	for _, v := range versions {
		trains.Add(&testflight.Train{Version: v})
	}
	return trains
}

func TestResolveExplicitVersionWins(t *testing.T) {
	mappings := map[string]*testflight.Trains{
		"nil":       nil,
		"empty":     trainsOf(),
		"contains":  trainsOf("1.0.0", "1.2.0"),
		"different": trainsOf("3.0.0"),
	}

	for name, trains := range mappings {
		for _, resolver := range []Resolver{
			NonInteractiveResolver{},
			InteractiveResolver{Prompter: &scriptedPrompter{answer: "ignored"}},
		} {
			got, err := resolver.Resolve(context.Background(), "1.2.0", trains)
			if err != nil {
				t.Fatalf("%s: Resolve() error = %v", name, err)
			}
			if got != "1.2.0" {
				t.Errorf("%s: Resolve() = %q, want explicit %q", name, got, "1.2.0")
			}
		}
	}
}

func TestResolveExplicitVersionNotTrimmed(t *testing.T) {
	got, err := NonInteractiveResolver{}.Resolve(context.Background(), " 1.0 ", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != " 1.0 " {
		t.Errorf("Resolve() = %q, want verbatim explicit version", got)
	}
}

func TestResolvePicksMostRecentTrain(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
	}{
		{name: "ascending", versions: []string{"1.0.0", "1.1.0", "1.2.0"}, want: "1.2.0"},
		{name: "insertion order beats semver", versions: []string{"2.0.0", "1.5.0"}, want: "1.5.0"},
		{name: "single train", versions: []string{"0.1"}, want: "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPrompter{answer: "unused"}
			got, err := InteractiveResolver{Prompter: p}.Resolve(context.Background(), "", trainsOf(tt.versions...))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
			if p.asked != 0 {
				t.Errorf("prompter asked %d times, want 0", p.asked)
			}
		})
	}
}

func TestInteractiveResolverFallsBackToPrompt(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	p := &scriptedPrompter{answer: "  2.0.0\t"}

	got, err := InteractiveResolver{Prompter: p, Logger: logger}.Resolve(context.Background(), "", trainsOf())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "2.0.0" {
		t.Errorf("Resolve() = %q, want trimmed %q", got, "2.0.0")
	}
	if p.asked != 1 {
		t.Errorf("prompter asked %d times, want 1", p.asked)
	}

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if entries[0].Message != "You have to specify a new version number" {
		t.Errorf("first log = %q", entries[0].Message)
	}
	if entries[1].Message != "Fetching the latest build number for version 2.0.0" {
		t.Errorf("second log = %q", entries[1].Message)
	}
	if entries[1].Level != logrus.InfoLevel {
		t.Errorf("level = %v, want info", entries[1].Level)
	}
}

func TestInteractiveResolverPassesEmptyAnswerThrough(t *testing.T) {
	got, err := InteractiveResolver{Prompter: &scriptedPrompter{answer: "   "}}.Resolve(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "" {
		t.Errorf("Resolve() = %q, want empty", got)
	}
}

func TestInteractiveResolverPromptError(t *testing.T) {
	p := &scriptedPrompter{err: errors.New("stdin closed")}
	_, err := InteractiveResolver{Prompter: p}.Resolve(context.Background(), "", nil)
	if !errors.Is(err, ErrVersionUnresolved) {
		t.Errorf("Resolve() error = %v, want ErrVersionUnresolved", err)
	}
}

func TestNonInteractiveResolverFailsWithoutTrains(t *testing.T) {
	_, err := NonInteractiveResolver{}.Resolve(context.Background(), "", trainsOf())
	if !errors.Is(err, ErrVersionUnresolved) {
		t.Errorf("Resolve() error = %v, want ErrVersionUnresolved", err)
	}
}

func TestNewResolver(t *testing.T) {
	if _, ok := NewResolver(nil, nil).(NonInteractiveResolver); !ok {
		t.Error("nil prompter should give NonInteractiveResolver")
	}
	if _, ok := NewResolver(prompt.NonInteractive{}, nil).(NonInteractiveResolver); !ok {
		t.Error("non-interactive prompter should give NonInteractiveResolver")
	}
	if _, ok := NewResolver(&scriptedPrompter{}, nil).(InteractiveResolver); !ok {
		t.Error("interactive prompter should give InteractiveResolver")
	}
}

func TestHighestVersion(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
		wantOK   bool
	}{
		{name: "ordered", versions: []string{"1.0.0", "1.1.0", "1.2.0"}, want: "1.2.0", wantOK: true},
		{name: "unordered", versions: []string{"2.0", "10.0", "9.1"}, want: "10.0", wantOK: true},
		{name: "skips garbage", versions: []string{"beta", "1.0"}, want: "1.0", wantOK: true},
		{name: "nothing parses", versions: []string{"beta"}, wantOK: false},
		{name: "empty", versions: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HighestVersion(tt.versions)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("HighestVersion(%v) = %q, %v, want %q, %v", tt.versions, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
