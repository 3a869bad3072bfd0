package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/haniscreator/mediclue/internal/adapter"
	"github.com/haniscreator/mediclue/internal/directory"
	"github.com/haniscreator/mediclue/internal/logging"
)

// DefaultFeedTTL is how long a fetched remote directory is reused.
const DefaultFeedTTL = 5 * time.Minute

const feedKey = "hospitals"

// HospitalService answers directory queries from the remote feed when one
// is configured, falling back to the embedded directory.
type HospitalService struct {
	remote   adapter.HospitalClient
	fallback *directory.Directory
	feed     *cache.Cache
	log      *slog.Logger
}

// NewHospitalService builds the service; remote may be nil.
func NewHospitalService(remote adapter.HospitalClient, fallback *directory.Directory, feedTTL time.Duration) *HospitalService {
	if feedTTL <= 0 {
		feedTTL = DefaultFeedTTL
	}
	return &HospitalService{
		remote:   remote,
		fallback: fallback,
		feed:     cache.New(feedTTL, 2*feedTTL),
		log:      logging.New("hospitals"),
	}
}

func (s *HospitalService) current(ctx context.Context) *directory.Directory {
	if s.remote == nil {
		return s.fallback
	}
	if v, ok := s.feed.Get(feedKey); ok {
		return v.(*directory.Directory)
	}
	hs, err := s.remote.ListHospitals(ctx)
	if err != nil {
		s.log.Warn("remote directory unavailable, using embedded list", "error", err)
		return s.fallback
	}
	d := directory.New(hs)
	s.feed.SetDefault(feedKey, d)
	return d
}

// Find applies q to the current directory.
func (s *HospitalService) Find(ctx context.Context, q directory.Query) []directory.Hospital {
	return s.current(ctx).Find(q)
}

// Specialties lists the current directory's specialties.
func (s *HospitalService) Specialties(ctx context.Context) []string {
	return s.current(ctx).Specialties()
}
