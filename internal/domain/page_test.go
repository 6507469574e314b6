package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams_Defaults(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)

	assert.Equal(t, domain.DefaultPage, p.Page)
	assert.Equal(t, domain.DefaultLimit, p.Limit)
}

func TestNewPaginationParams_NonPositiveValuesFallBack(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(0), intPtr(-5))

	assert.Equal(t, domain.DefaultPage, p.Page)
	assert.Equal(t, domain.DefaultLimit, p.Limit)
}

func TestNewPaginationParams_LimitClampedAtCeiling(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(3), intPtr(500))

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, domain.MaxLimit, p.Limit)
}

func TestPaginationParams_Offset(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(4), intPtr(25))

	assert.Equal(t, 75, p.Offset())
}

func TestPaginationParams_Offset_FirstPageIsZero(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)

	assert.Zero(t, p.Offset())
}
