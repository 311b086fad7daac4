package services

import (
	"context"
	"math/rand"
	"sync"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/repos"
	"github.com/vestiba/vestiba-backend/internal/types"
)

const fallbackQuizGroup = "geral"

// GroupCount is the question count for one exam or subject tag.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// QuizSet is one filtered load of the question bank. The random pick is
// fixed when the set is built, so re-reading the set does not re-roll it;
// a new pick requires a new load.
type QuizSet struct {
	Questions []*types.QuizQuestion

	random *types.QuizQuestion
}

// Random returns the set's pick: a uniformly chosen member of Questions,
// or nil iff the set is empty.
func (qs *QuizSet) Random() *types.QuizQuestion {
	if qs == nil {
		return nil
	}
	return qs.random
}

// CountsByExam groups the set by exam tag, first-seen order. Empty tags
// fall into the "geral" bucket.
func (qs *QuizSet) CountsByExam() []GroupCount {
	return groupCounts(qs.Questions, func(q *types.QuizQuestion) string { return q.Exam })
}

// CountsBySubject groups the set by subject tag, first-seen order.
func (qs *QuizSet) CountsBySubject() []GroupCount {
	return groupCounts(qs.Questions, func(q *types.QuizQuestion) string { return q.Subject })
}

func groupCounts(questions []*types.QuizQuestion, keyOf func(*types.QuizQuestion) string) []GroupCount {
	index := make(map[string]int)
	var out []GroupCount
	for _, question := range questions {
		key := keyOf(question)
		if key == "" {
			key = fallbackQuizGroup
		}
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, GroupCount{Key: key, Count: 1})
	}
	return out
}

type QuizService interface {
	Load(ctx context.Context, filters repos.QuizFilters) (*QuizSet, error)
}

type quizService struct {
	log      *logger.Logger
	quizRepo repos.QuizQuestionRepo

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuizService takes its RNG so tests can seed the random pick.
func NewQuizService(log *logger.Logger, quizRepo repos.QuizQuestionRepo, rng *rand.Rand) QuizService {
	return &quizService{
		log:      log.With("service", "QuizService"),
		quizRepo: quizRepo,
		rng:      rng,
	}
}

func (s *quizService) Load(ctx context.Context, filters repos.QuizFilters) (*QuizSet, error) {
	questions, err := s.quizRepo.List(ctx, nil, filters)
	if err != nil {
		return nil, err
	}

	set := &QuizSet{Questions: questions}
	if len(questions) > 0 {
		s.mu.Lock()
		set.random = questions[s.rng.Intn(len(questions))]
		s.mu.Unlock()
	}
	return set, nil
}
