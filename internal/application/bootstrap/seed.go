// Package bootstrap siembra el dataset demo en el primer arranque. El
// chequeo de colección vacía y las altas ocurren dentro del mismo batch
// atómico, así dos instancias concurrentes no pueden duplicar la siembra.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// Seeder siembra los datos demo.
type Seeder struct {
	store docstore.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewSeeder construye el seeder.
func NewSeeder(store docstore.Store, log *logger.Logger) *Seeder {
	return &Seeder{store: store, log: log, now: time.Now}
}

// Run siembra usuarios y lotes demo si la colección users está vacía.
// Si ya hay usuarios no toca nada, tampoco los lotes.
func (s *Seeder) Run(ctx context.Context) error {
	users, err := demoUsers(s.now())
	if err != nil {
		return err
	}
	beans := demoGreenBeans()

	seeded := false
	err = s.store.RunBatch(ctx, func(b docstore.Batch) error {
		n, err := b.Count(service.CollUsers)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, u := range users {
			doc, err := docstore.Encode(u)
			if err != nil {
				return fmt.Errorf("codificar usuario %s: %w", u.Email, err)
			}
			delete(doc, "id")
			b.Create(service.CollUsers, doc)
		}
		for _, gb := range beans {
			doc, err := docstore.Encode(gb)
			if err != nil {
				return fmt.Errorf("codificar lote %s: %w", gb.BatchNumber, err)
			}
			delete(doc, "id")
			b.Create(service.CollGreenBeans, doc)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("sembrar datos demo: %w", err)
	}
	if seeded {
		s.log.Info().Int("users", len(users)).Int("greenBeans", len(beans)).Msg("dataset demo sembrado")
	}
	return nil
}

func demoUsers(now time.Time) ([]entity.User, error) {
	passwords := map[string]string{
		"admin@beanshub.com":   "admin123",
		"roaster@beanshub.com": "roaster123",
		"staff@beanshub.com":   "staff123",
	}
	users := []entity.User{
		{
			Email:     "admin@beanshub.com",
			Name:      "Admin BeansHub",
			Role:      entity.RoleAdmin,
			Phone:     "+62 812 4100 3047",
			IsActive:  true,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LastLogin: now,
		},
		{
			Email:     "roaster@beanshub.com",
			Name:      "Master Roaster",
			Role:      entity.RoleRoaster,
			Phone:     "+62 821 5555 1234",
			IsActive:  true,
			CreatedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			LastLogin: time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			Email:     "staff@beanshub.com",
			Name:      "Staff Penjualan",
			Role:      entity.RoleStaff,
			Phone:     "+62 856 7777 9999",
			IsActive:  true,
			CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			LastLogin: time.Date(2024, 1, 27, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(passwords[users[i].Email]), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashear password demo: %w", err)
		}
		users[i].PasswordHash = string(hash)
	}
	return users, nil
}

func demoGreenBeans() []entity.GreenBean {
	return []entity.GreenBean{
		{
			SupplierName:       "Koperasi Kopi Gayo",
			Variety:            "Arabica Gayo",
			Origin:             "Aceh",
			Quantity:           500,
			PurchasePricePerKg: 85000,
			EntryDate:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			BatchNumber:        "GB-2024-001",
			LowStockThreshold:  50,
		},
		{
			SupplierName:       "Petani Toraja",
			Variety:            "Toraja Kalosi",
			Origin:             "Sulawesi",
			Quantity:           200,
			PurchasePricePerKg: 95000,
			EntryDate:          time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			BatchNumber:        "GB-2024-002",
			LowStockThreshold:  30,
		},
		{
			SupplierName:       "Koperasi Mandailing",
			Variety:            "Mandailing",
			Origin:             "Sumatera Utara",
			Quantity:           25,
			PurchasePricePerKg: 90000,
			EntryDate:          time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
			BatchNumber:        "GB-2024-003",
			LowStockThreshold:  50,
		},
	}
}
