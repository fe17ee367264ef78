package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tourista/tourista-api/internal/domain"
)

// tourPageDefaultLimit is the page size used when the caller omits limit.
const tourPageDefaultLimit = 100

// parseTourListFilter maps list query parameters onto a TourFilter.
// Supported: search, difficulty, price_gte, price_lte, rating_gte,
// sort (comma separated, "-" prefix for descending), page, limit.
func parseTourListFilter(c echo.Context) (domain.TourFilter, error) {
	filter := domain.TourFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
	}

	if raw := strings.TrimSpace(c.QueryParam("difficulty")); raw != "" {
		difficulty, ok := domain.ParseTourDifficulty(raw)
		if !ok {
			return domain.TourFilter{}, fmt.Errorf("unknown difficulty %q", raw)
		}
		filter.Difficulty = &difficulty
	}

	var err error
	if filter.PriceMin, err = parseFloatParam(c, "price_gte"); err != nil {
		return domain.TourFilter{}, err
	}
	if filter.PriceMax, err = parseFloatParam(c, "price_lte"); err != nil {
		return domain.TourFilter{}, err
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return domain.TourFilter{}, fmt.Errorf("price_gte cannot exceed price_lte")
	}
	if filter.RatingMin, err = parseFloatParam(c, "rating_gte"); err != nil {
		return domain.TourFilter{}, err
	}

	if filter.Sort, err = parseTourSort(c.QueryParam("sort")); err != nil {
		return domain.TourFilter{}, err
	}

	page := 1
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return domain.TourFilter{}, fmt.Errorf("page must be a positive integer")
		}
	}
	filter.Limit = tourPageDefaultLimit
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		filter.Limit, err = strconv.Atoi(raw)
		if err != nil || filter.Limit < 1 {
			return domain.TourFilter{}, fmt.Errorf("limit must be a positive integer")
		}
	}
	filter.Offset = (page - 1) * filter.Limit

	return filter, nil
}

func parseTourSort(raw string) ([]domain.TourSort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	keys := strings.Split(raw, ",")
	sorts := make([]domain.TourSort, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		descending := strings.HasPrefix(key, "-")
		field := strings.TrimPrefix(key, "-")
		sort, ok := tourSortFor(field, descending)
		if !ok {
			return nil, fmt.Errorf("unknown sort key %q", key)
		}
		sorts = append(sorts, sort)
	}
	return sorts, nil
}

func tourSortFor(field string, descending bool) (domain.TourSort, bool) {
	switch field {
	case "created_at", "createdAt":
		if descending {
			return domain.TourSortNewest, true
		}
		return domain.TourSortOldest, true
	case "price":
		if descending {
			return domain.TourSortPriceDesc, true
		}
		return domain.TourSortPriceAsc, true
	case "rating":
		if descending {
			return domain.TourSortRating, true
		}
		return domain.TourSortRatingAsc, true
	case "name":
		if descending {
			return domain.TourSortNameDesc, true
		}
		return domain.TourSortNameAsc, true
	}
	return "", false
}

func parseFloatParam(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}
