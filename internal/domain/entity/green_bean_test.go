package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beanshub/roastery-api/internal/domain/entity"
)

func TestGreenBean_IsLowStock(t *testing.T) {
	casos := []struct {
		nombre   string
		cantidad float64
		umbral   float64
		bajo     bool
	}{
		{"muy por encima del umbral", 500, 50, false},
		{"justo en el umbral", 50, 50, false},
		{"por debajo del umbral", 25, 50, true},
		{"agotado", 0, 50, true},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			b := entity.GreenBean{Quantity: c.cantidad, LowStockThreshold: c.umbral}
			assert.Equal(t, c.bajo, b.IsLowStock())
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, entity.ValidRole(entity.RoleAdmin))
	assert.True(t, entity.ValidRole(entity.RoleRoaster))
	assert.True(t, entity.ValidRole(entity.RoleStaff))
	assert.False(t, entity.ValidRole("SuperUser"))
	assert.False(t, entity.ValidRole(""))
	assert.False(t, entity.ValidRole("admin"), "los roles distinguen mayúsculas")
}
