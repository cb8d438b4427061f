package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
)

var seasonLabelPattern = regexp.MustCompile(`^(\d{4})_(\d{4})$`)

// ValidSeasonLabel reports whether label reads "YYYY_YYYY" with consecutive years.
func ValidSeasonLabel(label string) bool {
	m := seasonLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return false
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	return second == first+1
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		return ValidSeasonLabel(fl.Field().String())
	})
	_ = v.RegisterValidation("perspective", func(fl validator.FieldLevel) bool {
		p := stats.Perspective(fl.Field().String())
		return p == stats.PerspectiveTeam || p == stats.PerspectiveOpponent
	})
	return v
}

func validateInput(ctx context.Context, v *validator.Validate, input any) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.validateInput")
	defer span.End()

	if err := v.StructCtx(ctx, input); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	return nil
}
