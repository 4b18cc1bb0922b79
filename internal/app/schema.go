package app

import (
	"context"
	"fmt"

	"github.com/heinz1110/photocat/internal/domain"
)

// Schema returns the current category schema.
func (c *Catalog) Schema(ctx context.Context) (map[string][]string, error) {
	return c.schema.Load(ctx)
}

// AddCategoryGroup creates a new, empty category group.
func (c *Catalog) AddCategoryGroup(ctx context.Context, group string) error {
	schema, err := c.schema.Load(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if _, ok := schema[group]; ok {
		return fmt.Errorf("%w: group %s", domain.ErrDuplicateValue, group)
	}

	schema[group] = []string{}
	return c.schema.Save(ctx, schema)
}

// RemoveCategoryGroup deletes a category group and its values from the
// schema. Assignments already on entries are left in place.
func (c *Catalog) RemoveCategoryGroup(ctx context.Context, group string) error {
	schema, err := c.schema.Load(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if _, ok := schema[group]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, group)
	}

	delete(schema, group)
	return c.schema.Save(ctx, schema)
}

// AddCategoryValue appends a value to a category group.
func (c *Catalog) AddCategoryValue(ctx context.Context, group, value string) error {
	schema, err := c.schema.Load(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	values, ok := schema[group]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, group)
	}
	for _, v := range values {
		if v == value {
			return fmt.Errorf("%w: %q in group %s", domain.ErrDuplicateValue, value, group)
		}
	}

	schema[group] = append(values, value)
	return c.schema.Save(ctx, schema)
}

// RemoveCategoryValue deletes a value from a category group.
// Assignments already on entries are left in place.
func (c *Catalog) RemoveCategoryValue(ctx context.Context, group, value string) error {
	schema, err := c.schema.Load(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	values, ok := schema[group]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrGroupNotFound, group)
	}
	for i, v := range values {
		if v == value {
			schema[group] = append(values[:i:i], values[i+1:]...)
			return c.schema.Save(ctx, schema)
		}
	}
	return fmt.Errorf("%w: %q in group %s", domain.ErrUnknownValue, value, group)
}
