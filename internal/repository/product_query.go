package repository

import (
	"fmt"
	"strings"

	"trimmers-api/internal/model"
)

// productColumns lists the product columns in scan order.
const productColumns = `id, name, price, description, image, category, company, color,
		featured, free_shipping, inventory, average_rating, num_of_reviews, user_id,
		created_at, updated_at`

// sortColumns whitelists the columns a catalogue query may order by.
var sortColumns = map[string]string{
	"price": "price",
	"name":  "name",
}

// likeEscaper escapes the ILIKE metacharacters so search is a plain substring match.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// productWhere builds the WHERE clause for filter. Placeholders start at $1.
// It returns an empty clause when the filter has no predicates.
func productWhere(filter model.ProductFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Search != "" {
		add(`name ILIKE $%d ESCAPE '\'`, "%"+likeEscaper.Replace(filter.Search)+"%")
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Company != "" {
		add("company = $%d", filter.Company)
	}
	if filter.Color != "" {
		add("color = $%d", filter.Color)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if filter.FreeShipping {
		conditions = append(conditions, "free_shipping = TRUE")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// productOrderBy returns the ORDER BY clause for sort. Insertion order breaks ties.
func productOrderBy(sort model.SortOrder) string {
	field, ok := sort.Field()
	if !ok {
		return "ORDER BY created_at, id"
	}

	column := sortColumns[field.Field]
	direction := "ASC"
	if field.Descending {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, created_at, id", column, direction)
}

// productWindow returns the LIMIT/OFFSET clause for opts, numbering placeholders after argCount.
func productWindow(opts model.FindOptions, argCount int) (string, []any) {
	if opts.Limit <= 0 {
		if opts.Skip > 0 {
			return fmt.Sprintf("OFFSET $%d", argCount+1), []any{opts.Skip}
		}
		return "", nil
	}
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", argCount+1, argCount+2), []any{opts.Limit, opts.Skip}
}

// buildFindProducts composes the full catalogue SELECT.
func buildFindProducts(filter model.ProductFilter, opts model.FindOptions) (string, []any) {
	where, args := productWhere(filter)
	window, windowArgs := productWindow(opts, len(args))

	parts := []string{"SELECT " + productColumns, "FROM products"}
	if where != "" {
		parts = append(parts, where)
	}
	parts = append(parts, productOrderBy(opts.Sort))
	if window != "" {
		parts = append(parts, window)
	}

	return strings.Join(parts, "\n"), append(args, windowArgs...)
}

// buildCountProducts composes the COUNT query for filter.
func buildCountProducts(filter model.ProductFilter) (string, []any) {
	where, args := productWhere(filter)
	query := "SELECT COUNT(*) FROM products"
	if where != "" {
		query += "\n" + where
	}
	return query, args
}
