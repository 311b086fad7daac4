package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vestiba/vestiba-backend/internal/types"
)

type fakeTrackRepo struct {
	tracks []*types.StudyTrack
}

func (f *fakeTrackRepo) ListWithItems(ctx context.Context, tx *gorm.DB) ([]*types.StudyTrack, error) {
	return f.tracks, nil
}

func TestTrackSetBySlug(t *testing.T) {
	repo := &fakeTrackRepo{tracks: []*types.StudyTrack{
		{ID: uuid.New(), Slug: "enem-intensivo", Title: "ENEM Intensivo"},
		{ID: uuid.New(), Slug: "fuvest-exatas", Title: "FUVEST Exatas"},
	}}
	svc := NewTrackService(testServiceLogger(t), repo)

	set, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	track, ok := set.BySlug("fuvest-exatas")
	if !ok || track.Title != "FUVEST Exatas" {
		t.Fatalf("lookup: ok=%v track=%+v", ok, track)
	}
	if _, ok := set.BySlug("missing"); ok {
		t.Fatalf("unknown slug should miss")
	}
	if _, ok := set.BySlug(""); ok {
		t.Fatalf("empty slug should miss")
	}
}

func TestTrackSetResourcesFlattensAcrossTracks(t *testing.T) {
	lessonID := uuid.New()
	repo := &fakeTrackRepo{tracks: []*types.StudyTrack{
		{Slug: "a", Items: []types.StudyTrackItem{
			{Kind: types.TrackItemKindLesson, LessonID: &lessonID},
			{Kind: types.TrackItemKindResource, Title: "Apostila 1"},
		}},
		{Slug: "b", Items: []types.StudyTrackItem{
			{Kind: types.TrackItemKindResource, Title: "Apostila 2"},
		}},
	}}
	svc := NewTrackService(testServiceLogger(t), repo)

	set, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	resources := set.Resources()
	if len(resources) != 2 {
		t.Fatalf("resources: want=2 got=%d", len(resources))
	}
	if resources[0].Title != "Apostila 1" || resources[1].Title != "Apostila 2" {
		t.Fatalf("track order lost: %+v", resources)
	}
}
