package usecase

import (
	"context"
	"testing"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type browseRecorder struct {
	mockProfileRepo
	terms   []string
	results []repository.BrowseProfile
}

func (r *browseRecorder) Browse(_ context.Context, _ uuid.UUID, search string) ([]repository.BrowseProfile, error) {
	r.terms = append(r.terms, search)
	return r.results, nil
}

func TestBrowseUsecase_NormalizesSearchTerm(t *testing.T) {
	profiles := &browseRecorder{}
	uc := NewBrowseUsecase(profiles, nil)

	if _, err := uc.Browse(context.Background(), uuid.New(), "  GuiTAR  "); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(profiles.terms) != 1 || profiles.terms[0] != "guitar" {
		t.Fatalf("expected lowercased trimmed term, got %v", profiles.terms)
	}
}

func TestBrowseUsecase_CachedSecondRead(t *testing.T) {
	profiles := &browseRecorder{results: []repository.BrowseProfile{{ID: uuid.New(), Name: "Ada"}}}
	uc := NewBrowseUsecase(profiles, newMapCache())
	caller := uuid.New()

	first, err := uc.Browse(context.Background(), caller, "guitar")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := uc.Browse(context.Background(), caller, " Guitar ")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(profiles.terms) != 1 {
		t.Fatalf("expected one storage hit, got %d", len(profiles.terms))
	}
	if len(first) != 1 || len(second) != 1 || second[0].Name != "Ada" {
		t.Fatalf("cached read must return the same rows")
	}
}

func TestBrowseUsecase_CacheIsPerCaller(t *testing.T) {
	profiles := &browseRecorder{}
	uc := NewBrowseUsecase(profiles, newMapCache())

	if _, err := uc.Browse(context.Background(), uuid.New(), "go"); err != nil {
		t.Fatalf("caller one: %v", err)
	}
	if _, err := uc.Browse(context.Background(), uuid.New(), "go"); err != nil {
		t.Fatalf("caller two: %v", err)
	}
	if len(profiles.terms) != 2 {
		t.Fatalf("distinct callers must not share cache entries, got %d storage hits", len(profiles.terms))
	}
}
