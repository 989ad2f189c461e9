// Package sales registra ventas de café tostado y emite el aviso de venta.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/application/inventory"
	"github.com/beanshub/roastery-api/internal/domain"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/currency"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	sales    *service.Collection[entity.Sale]
	store    *state.Store
	notifier inventory.Notifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(services *service.Services, store *state.Store, notifier inventory.Notifier, log *logger.Logger) *UseCase {
	return &UseCase{sales: services.Sales, store: store, notifier: notifier, log: log}
}

// CreateSale registra una venta. El total se calcula siempre en el servidor
// (cantidad por precio unitario) y la fecha es el momento del alta.
func (uc *UseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	switch {
	case in.CustomerName == "" || in.ProductName == "":
		return nil, fmt.Errorf("%w: customerName y productName son requeridos", domain.ErrValidation)
	case in.QuantityKg <= 0:
		return nil, fmt.Errorf("%w: quantityKg debe ser mayor a cero", domain.ErrValidation)
	case in.PricePerKg <= 0:
		return nil, fmt.Errorf("%w: pricePerKg debe ser mayor a cero", domain.ErrValidation)
	}

	sale := entity.Sale{
		CustomerName: in.CustomerName,
		ProductName:  in.ProductName,
		QuantityKg:   in.QuantityKg,
		PricePerKg:   in.PricePerKg,
		Total:        in.QuantityKg * in.PricePerKg,
		SaleDate:     time.Now(),
	}
	id, err := uc.sales.Create(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("crear venta: %w", err)
	}
	sale.ID = id
	uc.store.Dispatch(state.AddSale{Sale: sale})

	msg := fmt.Sprintf("Penjualan %s kepada %s senilai %s", sale.ProductName, sale.CustomerName, currency.FormatIDR(sale.Total))
	if err := uc.notifier.Notify(ctx, entity.NotificationSuccess, "Penjualan Baru", msg); err != nil {
		uc.log.Warn().Err(err).Str("saleId", id).Msg("aviso de venta")
	}
	return &sale, nil
}

// ListSales devuelve las ventas del snapshot actual.
func (uc *UseCase) ListSales() []entity.Sale {
	return uc.store.State().Sales
}
