package mealplans

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/clients"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/export"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/nutrition"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
)

type Logger interface {
	Printf(format string, v ...any)
}

// SelectionSource yields a client's stored food ids.
type SelectionSource interface {
	FoodIDs(ctx context.Context, ownerUserID string, clientID uuid.UUID) ([]string, error)
}

// TargetsSource yields stored targets or defaults.
type TargetsSource interface {
	GetOrDefault(ctx context.Context, ownerUserID string, clientID uuid.UUID) (nutrition.TargetsDTO, bool, error)
}

// Exporter publishes rendered plans.
type Exporter interface {
	Publish(ctx context.Context, prefix string, doc export.Document, kind export.Kind, f export.Format) (export.Result, error)
}

// Service generates, versions and serves weekly meal plans.
type Service struct {
	clients    clients.Getter
	plans      storage.MealPlansStorage
	selections SelectionSource
	targets    TargetsSource
	generator  *mealgen.Generator
	exporter   Exporter
	cfg        config.PlanConfig
	logger     Logger

	// Now is replaceable in tests.
	Now func() time.Time
}

func NewService(
	clientStore clients.Getter,
	plans storage.MealPlansStorage,
	selections SelectionSource,
	targets TargetsSource,
	generator *mealgen.Generator,
	exporter Exporter,
	cfg config.PlanConfig,
	logger Logger,
) *Service {
	return &Service{
		clients:    clientStore,
		plans:      plans,
		selections: selections,
		targets:    targets,
		generator:  generator,
		exporter:   exporter,
		cfg:        cfg,
		logger:     logger,
		Now:        time.Now,
	}
}

// Generate builds a week and stores it as a new active version. While the
// active version is locked, a different plan is refused unless req.Force is
// set. Inputs producing the same payload as the active version return it as
// is, locked or not.
func (s *Service) Generate(ctx context.Context, ownerUserID string, req GenerateRequest) (*PlanDTO, bool, error) {
	client, err := s.requireClient(ctx, req.ClientID)
	if err != nil {
		return nil, false, err
	}

	now := s.Now().UTC()
	active, hasActive, err := s.plans.GetActive(ctx, ownerUserID, client.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get active meal plan: %w", err)
	}

	payload, err := s.buildPayload(ctx, ownerUserID, req, now)
	if err != nil {
		return nil, false, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode meal plan: %w", err)
	}
	hash := hashPayload(raw)

	if hasActive && active.PayloadHash == hash {
		dto, err := toPlanDTO(active)
		if err != nil {
			return nil, false, err
		}
		return dto, false, nil
	}
	if hasActive && !req.Force && now.Before(active.LockedUntil) {
		return nil, false, &LockedError{Until: active.LockedUntil}
	}

	startDate, _ := time.Parse(dateLayout, payload.StartDate)
	stored, err := s.plans.CreateVersion(ctx, ownerUserID, client.ID, storage.MealPlanCreate{
		Seed:        payload.Seed,
		PayloadHash: hash,
		Payload:     raw,
		StartDate:   startDate,
		LockedUntil: now.Add(s.cfg.LockDuration()),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to store meal plan: %w", err)
	}

	s.logf("INFO mealplans: generated client=%s version=%d seed=%d hash=%s forced=%t",
		client.ID, stored.Version, payload.Seed, hash[:12], req.Force && hasActive)

	dto := planDTO(stored, payload)
	return &dto, true, nil
}

func (s *Service) buildPayload(ctx context.Context, ownerUserID string, req GenerateRequest, now time.Time) (PlanPayload, error) {
	if bw := req.BodyweightKg; bw != 0 && (bw < 30 || bw > 300) {
		return PlanPayload{}, fmt.Errorf("%w: bodyweight_kg must be 0 or between 30 and 300", ErrInvalidRequest)
	}

	startDate := now.Format(dateLayout)
	if req.StartDate != "" {
		d, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return PlanPayload{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidRequest)
		}
		startDate = d.Format(dateLayout)
	}

	foodIDs := req.FoodIDs
	if len(foodIDs) == 0 {
		stored, err := s.selections.FoodIDs(ctx, ownerUserID, req.ClientID)
		if err != nil {
			return PlanPayload{}, err
		}
		foodIDs = stored
	}
	if len(foodIDs) == 0 {
		return PlanPayload{}, ErrNoFoods
	}

	var targets mealgen.MacroTargets
	bodyweight := req.BodyweightKg
	if req.Targets != nil {
		if err := req.Targets.validate(req.ClientID, bodyweight); err != nil {
			return PlanPayload{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		targets = req.Targets.macroTargets()
	} else {
		stored, _, err := s.targets.GetOrDefault(ctx, ownerUserID, req.ClientID)
		if err != nil {
			return PlanPayload{}, err
		}
		targets = stored.MacroTargets()
		if bodyweight == 0 {
			bodyweight = stored.BodyweightKg
		}
	}

	seed := s.cfg.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	week, err := s.generator.GenerateWeek(mealgen.Request{
		FoodIDs:      foodIDs,
		Targets:      targets,
		BodyweightKg: bodyweight,
		Seed:         seed,
	})
	if err != nil {
		return PlanPayload{}, err
	}

	return PlanPayload{
		ClientID:     req.ClientID,
		StartDate:    startDate,
		Seed:         seed,
		FoodIDs:      foodIDs,
		Targets:      targets,
		BodyweightKg: bodyweight,
		Week:         week,
	}, nil
}

// GetActive returns the active version, or false when there is none.
func (s *Service) GetActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) (*PlanDTO, bool, error) {
	if _, err := s.requireClient(ctx, clientID); err != nil {
		return nil, false, err
	}

	plan, found, err := s.plans.GetActive(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get active meal plan: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	dto, err := toPlanDTO(plan)
	if err != nil {
		return nil, false, err
	}
	return dto, true, nil
}

// DeleteActive deactivates the active version. Older versions stay listed.
func (s *Service) DeleteActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) error {
	if _, err := s.requireClient(ctx, clientID); err != nil {
		return err
	}

	if err := s.plans.DeactivateActive(ctx, ownerUserID, clientID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNoActivePlan
		}
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}

	s.logf("INFO mealplans: deactivated client=%s", clientID)
	return nil
}

// GetToday returns the plan day for dateStr (today when empty). The week
// repeats, so any date maps onto one of the seven days.
func (s *Service) GetToday(ctx context.Context, ownerUserID string, clientID uuid.UUID, dateStr string) (*TodayDTO, error) {
	date := s.Now().UTC()
	if dateStr != "" {
		d, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidRequest)
		}
		date = d
	}

	plan, err := s.requireActive(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, err
	}

	days := plan.Plan.Week.Days
	if len(days) == 0 {
		return nil, ErrNoActivePlan
	}

	start, err := time.Parse(dateLayout, plan.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan start date: %w", err)
	}
	offset := daysBetween(start, date)
	idx := ((offset % len(days)) + len(days)) % len(days)
	day := days[idx]

	return &TodayDTO{
		Date:      date.Format(dateLayout),
		Version:   plan.Version,
		DayNumber: day.DayNumber,
		DayName:   day.DayName,
		Plan:      day.Plan,
	}, nil
}

// Grocery aggregates the active version's ingredients over the week.
func (s *Service) Grocery(ctx context.Context, ownerUserID string, clientID uuid.UUID) (*GroceryDTO, error) {
	plan, err := s.requireActive(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, err
	}

	items := mealgen.AggregateGroceries(plan.Plan.Week)
	total := 0
	for _, item := range items {
		total += item.TotalGrams
	}

	return &GroceryDTO{
		Version:    plan.Version,
		StartDate:  plan.StartDate,
		Items:      items,
		TotalGrams: total,
	}, nil
}

// ListVersions returns version metadata, newest first.
func (s *Service) ListVersions(ctx context.Context, ownerUserID string, clientID uuid.UUID) ([]VersionDTO, error) {
	if _, err := s.requireClient(ctx, clientID); err != nil {
		return nil, err
	}

	plans, err := s.plans.ListVersions(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plan versions: %w", err)
	}

	out := make([]VersionDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, VersionDTO{
			ID:          p.ID,
			Version:     p.Version,
			Seed:        p.Seed,
			PayloadHash: p.PayloadHash,
			StartDate:   p.StartDate.Format(dateLayout),
			LockedUntil: p.LockedUntil,
			IsActive:    p.IsActive,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out, nil
}

// Export renders the active version. It never changes stored state.
func (s *Service) Export(ctx context.Context, ownerUserID string, clientID uuid.UUID, kind export.Kind, f export.Format) (export.Result, error) {
	client, err := s.requireClient(ctx, clientID)
	if err != nil {
		return export.Result{}, err
	}

	plan, err := s.requireActive(ctx, ownerUserID, clientID)
	if err != nil {
		return export.Result{}, err
	}

	start, _ := time.Parse(dateLayout, plan.StartDate)
	doc := export.Document{
		ClientName:  client.Name,
		Version:     plan.Version,
		PayloadHash: plan.PayloadHash,
		StartDate:   start,
		Week:        plan.Plan.Week,
		Groceries:   mealgen.AggregateGroceries(plan.Plan.Week),
	}

	res, err := s.exporter.Publish(ctx, export.Prefix(ownerUserID, clientID.String()), doc, kind, f)
	if err != nil {
		return export.Result{}, fmt.Errorf("failed to export meal plan: %w", err)
	}
	return res, nil
}

func (s *Service) requireClient(ctx context.Context, clientID uuid.UUID) (*storage.Client, error) {
	client, err := clients.RequireOwned(ctx, s.clients, clientID)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *Service) requireActive(ctx context.Context, ownerUserID string, clientID uuid.UUID) (*PlanDTO, error) {
	plan, found, err := s.GetActive(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoActivePlan
	}
	return plan, nil
}

func (s *Service) logf(format string, v ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, v...)
}

func hashPayload(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func daysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func toPlanDTO(p storage.MealPlan) (*PlanDTO, error) {
	var payload PlanPayload
	if err := json.Unmarshal(p.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode meal plan payload: %w", err)
	}
	dto := planDTO(p, payload)
	return &dto, nil
}

func planDTO(p storage.MealPlan, payload PlanPayload) PlanDTO {
	return PlanDTO{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Version:     p.Version,
		PayloadHash: p.PayloadHash,
		StartDate:   payload.StartDate,
		LockedUntil: p.LockedUntil,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		Plan:        payload,
	}
}
