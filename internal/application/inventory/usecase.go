// Package inventory gestiona los lotes de café verde: altas con número de
// lote generado, patches parciales y avisos asociados.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// Notifier puerto hacia el caso de uso de notificaciones.
type Notifier interface {
	Notify(ctx context.Context, typ, title, message string) error
}

// UseCase casos de uso de inventario.
type UseCase struct {
	beans    *service.Collection[entity.GreenBean]
	store    *state.Store
	notifier Notifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(services *service.Services, store *state.Store, notifier Notifier, log *logger.Logger) *UseCase {
	return &UseCase{beans: services.GreenBeans, store: store, notifier: notifier, log: log}
}

// GenerateBatchNumber produce el número de lote GB-<año>-<últimos 6 dígitos
// del epoch en milisegundos>, con padding a 6 dígitos.
func GenerateBatchNumber(t time.Time) string {
	return fmt.Sprintf("GB-%d-%06d", t.Year(), t.UnixMilli()%1_000_000)
}

// AddGreenBean registra un lote nuevo y emite el aviso de éxito. La creación
// del aviso es un segundo paso no transaccional: si falla, el lote ya quedó
// persistido y la operación completa reporta error.
func (uc *UseCase) AddGreenBean(ctx context.Context, in dto.CreateGreenBeanRequest) (*dto.GreenBeanResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := time.Now()
	bean := entity.GreenBean{
		SupplierName:       in.SupplierName,
		Variety:            in.Variety,
		Origin:             in.Origin,
		Quantity:           in.Quantity,
		PurchasePricePerKg: in.PurchasePricePerKg,
		EntryDate:          now,
		BatchNumber:        GenerateBatchNumber(now),
		LowStockThreshold:  in.LowStockThreshold,
	}
	id, err := uc.beans.Create(ctx, bean)
	if err != nil {
		return nil, fmt.Errorf("crear lote: %w", err)
	}
	bean.ID = id
	uc.store.Dispatch(state.AddGreenBean{Bean: bean})

	msg := fmt.Sprintf("%s sebanyak %gkg berhasil ditambahkan", bean.Variety, bean.Quantity)
	if err := uc.notifier.Notify(ctx, entity.NotificationSuccess, "Biji Kopi Baru Ditambahkan", msg); err != nil {
		uc.log.Error().Err(err).Str("beanId", id).Msg("aviso de alta de lote")
		return nil, err
	}

	resp := toBeanResponse(bean)
	return &resp, nil
}

// UpdateGreenBean aplica un patch parcial y actualiza el estado de forma
// optimista con el lote resultante.
func (uc *UseCase) UpdateGreenBean(ctx context.Context, id string, in dto.UpdateGreenBeanRequest) (*dto.GreenBeanResponse, error) {
	patch := buildPatch(in)
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: patch vacío", domain.ErrValidation)
	}
	if q, ok := patch["quantity"].(float64); ok && q < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrValidation)
	}

	if err := uc.beans.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	bean, err := uc.beans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bean == nil {
		return nil, domain.ErrNotFound
	}
	uc.store.Dispatch(state.UpdateGreenBean{Bean: *bean})
	resp := toBeanResponse(*bean)
	return &resp, nil
}

// DeleteGreenBean elimina el lote y lo quita del estado.
func (uc *UseCase) DeleteGreenBean(ctx context.Context, id string) error {
	if err := uc.beans.Delete(ctx, id); err != nil {
		return err
	}
	uc.store.Dispatch(state.DeleteGreenBean{ID: id})
	return nil
}

// ListGreenBeans devuelve los lotes del snapshot actual.
func (uc *UseCase) ListGreenBeans() []dto.GreenBeanResponse {
	beans := uc.store.State().GreenBeans
	out := make([]dto.GreenBeanResponse, 0, len(beans))
	for _, b := range beans {
		out = append(out, toBeanResponse(b))
	}
	return out
}

// LowStock devuelve solo los lotes por debajo de su umbral.
func (uc *UseCase) LowStock() []dto.GreenBeanResponse {
	var out []dto.GreenBeanResponse
	for _, b := range uc.store.State().GreenBeans {
		if b.IsLowStock() {
			out = append(out, toBeanResponse(b))
		}
	}
	return out
}

func validateCreate(in dto.CreateGreenBeanRequest) error {
	switch {
	case in.SupplierName == "" || in.Variety == "" || in.Origin == "":
		return fmt.Errorf("%w: supplierName, variety y origin son requeridos", domain.ErrValidation)
	case in.Quantity <= 0:
		return fmt.Errorf("%w: quantity debe ser mayor a cero", domain.ErrValidation)
	case in.PurchasePricePerKg <= 0:
		return fmt.Errorf("%w: purchasePricePerKg debe ser mayor a cero", domain.ErrValidation)
	case in.LowStockThreshold < 0:
		return fmt.Errorf("%w: lowStockThreshold no puede ser negativo", domain.ErrValidation)
	}
	return nil
}

func buildPatch(in dto.UpdateGreenBeanRequest) map[string]any {
	patch := map[string]any{}
	if in.SupplierName != nil {
		patch["supplierName"] = *in.SupplierName
	}
	if in.Variety != nil {
		patch["variety"] = *in.Variety
	}
	if in.Origin != nil {
		patch["origin"] = *in.Origin
	}
	if in.Quantity != nil {
		patch["quantity"] = *in.Quantity
	}
	if in.PurchasePricePerKg != nil {
		patch["purchasePricePerKg"] = *in.PurchasePricePerKg
	}
	if in.LowStockThreshold != nil {
		patch["lowStockThreshold"] = *in.LowStockThreshold
	}
	return patch
}

func toBeanResponse(b entity.GreenBean) dto.GreenBeanResponse {
	return dto.GreenBeanResponse{
		ID:                 b.ID,
		SupplierName:       b.SupplierName,
		Variety:            b.Variety,
		Origin:             b.Origin,
		Quantity:           b.Quantity,
		PurchasePricePerKg: b.PurchasePricePerKg,
		EntryDate:          b.EntryDate,
		BatchNumber:        b.BatchNumber,
		LowStockThreshold:  b.LowStockThreshold,
		LowStock:           b.IsLowStock(),
	}
}
