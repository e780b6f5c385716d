package supabase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Categories
// ============================================================

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCategories")
	defer span.End()

	return selectRows[domain.Category](ctx, s.Client, "supabase/categories", "categories?order=name.asc")
}

func (s *Store) CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCategory")
	defer span.End()

	cat.ID = newRowID(cat.ID)
	return insertOne(ctx, s.Client, "supabase/categories", "categories", cat)
}

func (s *Store) DeleteCategory(ctx context.Context, categoryID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCategory")
	defer span.End()

	path := fmt.Sprintf("categories?id=eq.%s", url.QueryEscape(categoryID))
	return s.deleteRows(ctx, "supabase/categories", path)
}

// ============================================================
// Cost centers
// ============================================================

func (s *Store) ListCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCostCenters")
	defer span.End()

	return selectRows[domain.CostCenter](ctx, s.Client, "supabase/cost_centers", "cost_centers?order=name.asc")
}

func (s *Store) CreateCostCenter(ctx context.Context, cc *domain.CostCenter) (*domain.CostCenter, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCostCenter")
	defer span.End()

	cc.ID = newRowID(cc.ID)
	return insertOne(ctx, s.Client, "supabase/cost_centers", "cost_centers", cc)
}

func (s *Store) DeleteCostCenter(ctx context.Context, costCenterID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCostCenter")
	defer span.End()

	path := fmt.Sprintf("cost_centers?id=eq.%s", url.QueryEscape(costCenterID))
	return s.deleteRows(ctx, "supabase/cost_centers", path)
}

// ============================================================
// People
// ============================================================

func (s *Store) ListPeople(ctx context.Context) ([]domain.Person, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListPeople")
	defer span.End()

	return selectRows[domain.Person](ctx, s.Client, "supabase/people", "people?order=name.asc")
}

func (s *Store) GetPerson(ctx context.Context, personID string) (*domain.Person, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetPerson")
	defer span.End()
	span.SetAttributes(attribute.String("person.id", personID))

	path := fmt.Sprintf("people?id=eq.%s&limit=1", url.QueryEscape(personID))
	return selectOne[domain.Person](ctx, s.Client, "supabase/people", "person", personID, path)
}

func (s *Store) CreatePerson(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreatePerson")
	defer span.End()

	p.ID = newRowID(p.ID)
	return insertOne(ctx, s.Client, "supabase/people", "people", p)
}

func (s *Store) DeletePerson(ctx context.Context, personID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeletePerson")
	defer span.End()

	path := fmt.Sprintf("people?id=eq.%s", url.QueryEscape(personID))
	return s.deleteRows(ctx, "supabase/people", path)
}
