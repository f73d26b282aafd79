package foodselection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/clients"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/google/uuid"
)

// DefaultMaxFoods is used when the configured limit is not positive.
const DefaultMaxFoods = 200

var (
	ErrClientNotFound = errors.New("client not found")
	ErrUnknownFoods   = errors.New("unknown food ids")
	ErrTooManyFoods   = errors.New("too many foods selected")
)

// Service handles food selection business logic.
type Service struct {
	clients  clients.Getter
	storage  storage.FoodSelectionsStorage
	catalog  *catalog.Catalog
	maxFoods int
}

func NewService(clientStore clients.Getter, st storage.FoodSelectionsStorage, cat *catalog.Catalog, maxFoods int) *Service {
	if maxFoods <= 0 {
		maxFoods = DefaultMaxFoods
	}
	return &Service{
		clients:  clientStore,
		storage:  st,
		catalog:  cat,
		maxFoods: maxFoods,
	}
}

// Get returns the stored selection, or an empty one when nothing was saved.
func (s *Service) Get(ctx context.Context, ownerUserID string, clientID uuid.UUID) (SelectionDTO, error) {
	if err := s.checkClient(ctx, clientID); err != nil {
		return SelectionDTO{}, err
	}

	sel, ok, err := s.storage.Get(ctx, ownerUserID, clientID)
	if err != nil {
		return SelectionDTO{}, fmt.Errorf("failed to get food selection: %w", err)
	}
	if !ok {
		return SelectionDTO{ClientID: clientID, FoodIDs: []string{}}, nil
	}

	return toDTO(sel), nil
}

// FoodIDs returns the stored ids in selection order, or nil.
func (s *Service) FoodIDs(ctx context.Context, ownerUserID string, clientID uuid.UUID) ([]string, error) {
	sel, ok, err := s.storage.Get(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food selection: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return sel.FoodIDs, nil
}

// Put replaces the selection. Ids are trimmed and de-duplicated in order;
// any id missing from the catalog rejects the whole request.
func (s *Service) Put(ctx context.Context, ownerUserID string, req PutSelectionRequest) (SelectionDTO, error) {
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return SelectionDTO{}, err
	}

	ids, err := s.normalize(req.FoodIDs)
	if err != nil {
		return SelectionDTO{}, err
	}

	sel, err := s.storage.Put(ctx, ownerUserID, req.ClientID, ids)
	if err != nil {
		return SelectionDTO{}, fmt.Errorf("failed to save food selection: %w", err)
	}

	return toDTO(sel), nil
}

func (s *Service) normalize(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	ids := make([]string, 0, len(raw))
	var unknown []string

	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := s.catalog.Lookup(id); !ok {
			unknown = append(unknown, id)
			continue
		}
		ids = append(ids, id)
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFoods, strings.Join(unknown, ", "))
	}
	if len(ids) > s.maxFoods {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyFoods, len(ids), s.maxFoods)
	}

	return ids, nil
}

// Catalog lists reference foods sorted by category then name.
func (s *Service) Catalog(filter CatalogFilter, limit, offset int) ([]CatalogItemDTO, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	items := []CatalogItemDTO{}
	for _, ing := range s.catalog.All() {
		if filter.Category != "" && ing.Category != filter.Category {
			continue
		}
		if filter.Slot != "" && !ing.AllowedIn(filter.Slot) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(ing.Name), query) && !strings.Contains(ing.ID, query) {
			continue
		}
		items = append(items, toCatalogItem(ing))
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})

	total := len(items)
	if offset >= total {
		return []CatalogItemDTO{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return items[offset:end], total
}

func (s *Service) checkClient(ctx context.Context, clientID uuid.UUID) error {
	if _, err := clients.RequireOwned(ctx, s.clients, clientID); err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}
	return nil
}

func toDTO(sel storage.FoodSelection) SelectionDTO {
	updated := sel.UpdatedAt
	ids := sel.FoodIDs
	if ids == nil {
		ids = []string{}
	}
	return SelectionDTO{
		ClientID:  sel.ClientID,
		FoodIDs:   ids,
		UpdatedAt: &updated,
	}
}

func toCatalogItem(ing catalog.Ingredient) CatalogItemDTO {
	e := mealgen.Enhance(ing, 0)
	return CatalogItemDTO{
		ID:              ing.ID,
		Name:            ing.Name,
		Category:        ing.Category,
		Role:            e.Role,
		Per100g:         ing.Per100g,
		Slots:           ing.Slots,
		ServingGrams:    ing.ServingGrams,
		MaxGramsPerMeal: e.MaxGramsPerMeal,
		Tags:            ing.Tags,
	}
}
