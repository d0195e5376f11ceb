package planner

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/termplan/internal/calendar"
	"github.com/alexanderramin/termplan/internal/contract"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomCatalog builds an acyclic catalog: each course only requires
// courses generated before it.
func randomCatalog(rng *rand.Rand) (map[string]*domain.Course, []string) {
	n := rng.Intn(6) + 3
	codes := make([]string, n)
	courses := make(map[string]*domain.Course, n)
	for i := 0; i < n; i++ {
		suffix := "H1"
		if rng.Intn(5) == 0 {
			suffix = "Y1"
		}
		codes[i] = fmt.Sprintf("CSC%d%02d%s", 1+i/3, i, suffix)

		var kinds []domain.TermKind
		switch rng.Intn(4) {
		case 0:
			kinds = []domain.TermKind{domain.TermPrimary}
		case 1:
			kinds = []domain.TermKind{domain.TermSecondary}
		default:
			kinds = everyTerm
		}

		var prereq domain.Requirement
		if i > 0 && rng.Intn(3) > 0 {
			prereq = randomTree(rng, codes[:i], 2)
		}
		courses[codes[i]] = &domain.Course{
			Code:          codes[i],
			Duration:      domain.DurationFromCode(codes[i]),
			StartKinds:    kinds,
			Prerequisites: prereq,
		}
	}
	return courses, codes
}

func randomTree(rng *rand.Rand, pool []string, depth int) domain.Requirement {
	if depth == 0 || rng.Intn(3) == 0 {
		return domain.CourseReq(pool[rng.Intn(len(pool))])
	}
	children := make([]domain.Requirement, rng.Intn(3)+1)
	for i := range children {
		children[i] = randomTree(rng, pool, depth-1)
	}
	if rng.Intn(2) == 0 {
		return domain.AllOf(children...)
	}
	return domain.AnyOf(children...)
}

// starts recovers each course's start term from a schedule.
func starts(schedule map[int][]string) map[string]int {
	out := make(map[string]int)
	for term, codes := range schedule {
		for _, code := range codes {
			if s, ok := out[code]; !ok || term < s {
				out[code] = term
			}
		}
	}
	return out
}

func checkSchedule(t *testing.T, trial int, courses map[string]*domain.Course, r contract.PlanRequest, res Result) {
	t.Helper()
	begin := starts(res.Schedule)

	for _, target := range r.Targets {
		_, ok := begin[target]
		assert.True(t, ok, "trial %d: target %s not scheduled", trial, target)
	}

	occupancy := make(map[int]int)
	for code, s := range begin {
		course := courses[code]
		length := course.Duration.Terms()
		assert.True(t, course.StartsIn(calendar.KindOf(s)),
			"trial %d: %s starts in a %s term", trial, code, calendar.KindOf(s))
		for term, codes := range res.Schedule {
			inside := term >= s && term < s+length
			assert.Equal(t, inside, contains(codes, code),
				"trial %d: %s occupancy at term %d", trial, code, term)
		}
		for k := s; k < s+length; k++ {
			occupancy[k]++
		}

		done := func(dep string) bool {
			ds, ok := begin[dep]
			return ok && ds+courses[dep].Duration.Terms() <= s
		}
		assert.True(t, course.Prerequisites.Evaluate(done),
			"trial %d: %s starts at %d before %s holds", trial, code, s, course.Prerequisites)
	}

	for term, n := range occupancy {
		assert.LessOrEqual(t, n, r.MaxPerTerm, "trial %d: term %d over capacity", trial, term)
		assert.Less(t, term, r.MaxTerms, "trial %d: term %d outside horizon", trial, term)
	}
	assert.Equal(t, len(begin), res.CourseCount, "trial %d", trial)
}

func contains(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// TestPlan_Invariants_RandomCatalogs property-tests schedule validity:
// targets are scheduled, long courses span two terms from a primary start,
// capacity holds and every requirement tree holds at its course's start.
func TestPlan_Invariants_RandomCatalogs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := New()

	for trial := 0; trial < 60; trial++ {
		courses, codes := randomCatalog(rng)
		targets := []string{codes[len(codes)-1]}
		if rng.Intn(2) == 0 {
			targets = append(targets, codes[rng.Intn(len(codes)-1)])
		}
		r := req(rng.Intn(6)+3, rng.Intn(3)+1, targets...)

		res, err := p.Plan(context.Background(), courses, r)
		require.NoError(t, err)
		require.Contains(t, []contract.PlanStatus{contract.StatusOptimal, contract.StatusInfeasible}, res.Status,
			"trial %d", trial)
		if res.Status != contract.StatusOptimal {
			continue
		}
		checkSchedule(t, trial, courses, r, res)
	}
}

// TestPlan_Invariants_RelaxingNeverHurts property-tests monotonicity: a
// longer horizon or a larger per-term limit never loses feasibility nor
// lengthens the optimal schedule.
func TestPlan_Invariants_RelaxingNeverHurts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := New()

	for trial := 0; trial < 40; trial++ {
		courses, codes := randomCatalog(rng)
		r := req(rng.Intn(4)+2, rng.Intn(2)+1, codes[len(codes)-1])

		base, err := p.Plan(context.Background(), courses, r)
		require.NoError(t, err)
		if base.Status != contract.StatusOptimal {
			continue
		}

		for _, relaxed := range []contract.PlanRequest{
			req(r.MaxTerms+1, r.MaxPerTerm, r.Targets...),
			req(r.MaxTerms, r.MaxPerTerm+1, r.Targets...),
		} {
			res, err := p.Plan(context.Background(), courses, relaxed)
			require.NoError(t, err)
			require.Equal(t, contract.StatusOptimal, res.Status, "trial %d", trial)
			assert.LessOrEqual(t, res.FinishTerm, base.FinishTerm, "trial %d", trial)
			checkSchedule(t, trial, courses, relaxed, res)
		}
	}
}
