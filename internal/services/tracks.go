package services

import (
	"context"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/repos"
	"github.com/vestiba/vestiba-backend/internal/types"
)

// TrackSet is one load of the study tracks plus its derived lookups.
// Tracks are not user-specific, so there is no merge or guard logic here:
// every load is a full replace.
type TrackSet struct {
	Tracks []*types.StudyTrack

	bySlug map[string]*types.StudyTrack
}

// BySlug looks a track up by its route slug.
func (ts *TrackSet) BySlug(slug string) (*types.StudyTrack, bool) {
	if ts == nil || slug == "" {
		return nil, false
	}
	track, ok := ts.bySlug[slug]
	return track, ok
}

// Resources flattens every kind=resource item across all tracks, in track
// order, for the library screens that list materials independent of any
// one track.
func (ts *TrackSet) Resources() []types.StudyTrackItem {
	if ts == nil {
		return nil
	}
	var out []types.StudyTrackItem
	for _, track := range ts.Tracks {
		for _, item := range track.Items {
			if item.Kind == types.TrackItemKindResource {
				out = append(out, item)
			}
		}
	}
	return out
}

type TrackService interface {
	Load(ctx context.Context) (*TrackSet, error)
}

type trackService struct {
	log       *logger.Logger
	trackRepo repos.StudyTrackRepo
}

func NewTrackService(log *logger.Logger, trackRepo repos.StudyTrackRepo) TrackService {
	return &trackService{
		log:       log.With("service", "TrackService"),
		trackRepo: trackRepo,
	}
}

func (s *trackService) Load(ctx context.Context) (*TrackSet, error) {
	tracks, err := s.trackRepo.ListWithItems(ctx, nil)
	if err != nil {
		return nil, err
	}

	set := &TrackSet{
		Tracks: tracks,
		bySlug: make(map[string]*types.StudyTrack, len(tracks)),
	}
	for _, track := range tracks {
		set.bySlug[track.Slug] = track
	}
	return set, nil
}
