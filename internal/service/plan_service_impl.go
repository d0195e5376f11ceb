package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/termplan/internal/contract"
	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/planner"
	"github.com/alexanderramin/termplan/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	runs     repository.PlanRunRepo
	uow      db.UnitOfWork
	planner  *planner.Planner
	observer UseCaseObserver
	now      func() time.Time
}

func NewPlanService(
	runs repository.PlanRunRepo,
	uow db.UnitOfWork,
	p *planner.Planner,
	observers ...UseCaseObserver,
) PlanService {
	if p == nil {
		p = planner.New()
	}
	return &planService{
		runs:     runs,
		uow:      uow,
		planner:  p,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *planService) Plan(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	fields := map[string]any{"dry_run": req.DryRun}
	defer observe(ctx, s.observer, "plan", fields)(&err)

	req.Targets = normalizeCodes(req.Targets)
	req.Completed = normalizeCodes(req.Completed)
	fields["targets"] = req.Targets
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var courses map[string]*domain.Course
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		courses, err = repository.NewSQLiteCourseRepo(tx).Snapshot(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if len(courses) == 0 {
		return nil, &contract.PlanError{
			Code:    contract.ErrEmptyCatalog,
			Message: "no courses imported; run `termplan import FILE` first",
		}
	}

	fingerprint, err := CatalogFingerprint(courses)
	if err != nil {
		return nil, err
	}

	resp = &contract.PlanResponse{
		GeneratedAt: s.now(),
		FinishTerm:  -1,
		Fingerprint: fingerprint,
	}

	remaining, done := splitCompleted(req.Targets, req.Completed)
	resp.AlreadyDone = done
	for _, code := range done {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s is already completed", code))
	}

	startedAt := time.Now()
	if len(remaining) == 0 {
		resp.Status = contract.StatusOptimal
	} else {
		planReq := req
		planReq.Targets = remaining
		var res planner.Result
		res, err = s.planner.Plan(ctx, courses, planReq)
		if err != nil {
			return nil, err
		}
		resp.Status = res.Status
		resp.FinishTerm = res.FinishTerm
		resp.CourseCount = res.CourseCount
		resp.Terms = contract.TermPlans(res.Schedule)
		if res.Status == contract.StatusFeasible {
			resp.Warnings = append(resp.Warnings, "solver stopped before proving optimality; the schedule may not be the shortest")
		}
	}
	elapsed := time.Since(startedAt)

	fields["status"] = string(resp.Status)
	fields["finish_term"] = resp.FinishTerm
	fields["course_count"] = resp.CourseCount

	if req.DryRun {
		return resp, nil
	}

	run := &domain.PlanRun{
		ID:          uuid.New().String(),
		Fingerprint: fingerprint,
		Targets:     req.Targets,
		Completed:   req.Completed,
		MaxTerms:    req.MaxTerms,
		MaxPerTerm:  req.MaxPerTerm,
		Status:      string(resp.Status),
		Schedule:    resp.Schedule(),
		FinishTerm:  resp.FinishTerm,
		CourseCount: resp.CourseCount,
		DurationMs:  elapsed.Milliseconds(),
		CreatedAt:   resp.GeneratedAt,
	}
	if err = s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("recording plan run: %w", err)
	}
	resp.RunID = run.ID
	fields["run_id"] = run.ID
	return resp, nil
}

func (s *planService) History(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	return s.runs.ListRecent(ctx, limit)
}

func (s *planService) GetRun(ctx context.Context, id string) (*domain.PlanRun, error) {
	return s.runs.GetByID(ctx, id)
}
