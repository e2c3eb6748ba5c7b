package dto_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
)

func TestListQuery_Normalize(t *testing.T) {
	cases := []struct {
		name       string
		in         dto.ListQuery
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"vacía", dto.ListQuery{}, 1, dto.DefaultPageSize, 0},
		{"segunda página", dto.ListQuery{Page: 2, PageSize: 10}, 2, 10, 10},
		{"tamaño excesivo", dto.ListQuery{Page: 3, PageSize: 5000}, 3, dto.MaxPageSize, 200},
		{"página negativa", dto.ListQuery{Page: -4, PageSize: 10}, 1, 10, 0},
		{"página enorme", dto.ListQuery{Page: math.MaxInt, PageSize: dto.MaxPageSize}, dto.MaxPage, dto.MaxPageSize, (dto.MaxPage - 1) * dto.MaxPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.in
			q.Normalize()
			assert.Equal(t, tc.wantPage, q.Page)
			assert.Equal(t, tc.wantSize, q.PageSize)
			assert.Equal(t, tc.wantOffset, q.Offset())
		})
	}
}

func TestListQuery_OffsetSinNormalizarNoDesborda(t *testing.T) {
	q := dto.ListQuery{Page: math.MaxInt, PageSize: math.MaxInt}

	off := q.Offset()
	assert.GreaterOrEqual(t, off, 0)
	assert.Equal(t, (dto.MaxPage-1)*dto.MaxPageSize, off)
	assert.Equal(t, math.MaxInt, q.Page, "Offset no modifica la consulta")
}
