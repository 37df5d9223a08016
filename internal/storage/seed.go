package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
)

// DefaultCategories are the categories every user sees. Names match the entries of the
// default lexicon so that they can be resolved by keyword.
var DefaultCategories = []model.Category{
	{Name: "Alimentação", Description: "Gastos com comida e bebida", Color: "#EF4444", Icon: "utensils", Type: model.CategoryTypeExpense},
	{Name: "Transporte", Description: "Gastos com locomoção", Color: "#F59E0B", Icon: "car", Type: model.CategoryTypeExpense},
	{Name: "Moradia", Description: "Aluguel, contas da casa", Color: "#8B5CF6", Icon: "home", Type: model.CategoryTypeExpense},
	{Name: "Saúde", Description: "Médicos, farmácia e planos", Color: "#EC4899", Icon: "heart-pulse", Type: model.CategoryTypeExpense},
	{Name: "Educação", Description: "Cursos, escola e livros", Color: "#3B82F6", Icon: "graduation-cap", Type: model.CategoryTypeExpense},
	{Name: "Lazer", Description: "Entretenimento e diversão", Color: "#10B981", Icon: "gamepad-2", Type: model.CategoryTypeExpense},
	{Name: "Compras", Description: "Roupas, eletrônicos e lojas", Color: "#F97316", Icon: "shopping-bag", Type: model.CategoryTypeExpense},
	{Name: "Serviços", Description: "Assinaturas e tarifas", Color: "#6366F1", Icon: "wrench", Type: model.CategoryTypeExpense},
	{Name: "Salário", Description: "Renda do trabalho", Color: "#059669", Icon: "briefcase", Type: model.CategoryTypeIncome},
	{Name: "Freelance", Description: "Trabalhos extras", Color: "#0D9488", Icon: "laptop", Type: model.CategoryTypeIncome},
	{Name: "Investimentos", Description: "Rendimentos e dividendos", Color: "#84CC16", Icon: "trending-up", Type: model.CategoryTypeIncome},
	{Name: "Vendas", Description: "Venda de produtos e bens", Color: "#14B8A6", Icon: "tag", Type: model.CategoryTypeIncome},
}

func seedDefaultCategories(ctx context.Context, q queryable) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	inserted := 0
	now := time.Now()
	for _, cat := range DefaultCategories {
		result, err := q.ExecContext(ctx, `
			INSERT OR IGNORE INTO categories (name, description, color, icon, category_type, is_default, user_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, 1, NULL, ?, ?)`,
			cat.Name, cat.Description, cat.Color, cat.Icon, string(cat.Type), now, now,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(rows)
	}

	if inserted > 0 {
		slog.Info("seeded default categories", "count", inserted)
	}
	return inserted, nil
}
