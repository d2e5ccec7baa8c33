package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-manager/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LineItemInput -> satu item yang akan ditambahkan ke order.
// UnitPrice kosong = ambil harga menu saat ini, Subtotal kosong = UnitPrice * Quantity.
type LineItemInput struct {
	MenuItemID uint
	Quantity   int
	UnitPrice  *decimal.Decimal
	Subtotal   *decimal.Decimal
}

// LineItemPatch -> field yang boleh diubah pada item yang sudah ada
type LineItemPatch struct {
	MenuItemID *uint
	Quantity   *int
	UnitPrice  *decimal.Decimal
	Subtotal   *decimal.Decimal
}

// OrderService menjaga total_amount order selalu sama dengan SUM(subtotal) item-nya
type OrderService struct {
	DB *gorm.DB
}

// NewOrderService membuat instance baru OrderService
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// GetOrder -> order beserta item (urut id)
func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, ErrOrderNotFound
	}
	return order, err
}

// CreateOrder menyimpan order dan item awalnya dalam satu transaksi.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order, items []LineItemInput) error {
	if order.Status == "" {
		order.Status = models.OrderStatusNew
	}
	if !models.IsValidOrderStatus(order.Status) {
		return ErrInvalidStatus
	}
	order.TotalAmount = decimal.Zero
	order.Items = nil

	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := ensureExists(tx, &models.Table{}, order.TableID, ErrTableNotFound); err != nil {
		tx.Rollback()
		return err
	}
	if err := ensureExists(tx, &models.Employee{}, order.EmployeeID, ErrEmployeeNotFound); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("create order: %w", err)
	}

	if _, err := insertLineItems(tx, order.ID, items); err != nil {
		tx.Rollback()
		return err
	}
	if err := recomputeTotal(tx, order.ID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	created, err := s.GetOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	*order = created
	return nil
}

// AddLineItems menambahkan banyak item sekaligus. Semua item masuk atau tidak sama sekali,
// total dihitung ulang sekali di akhir.
func (s *OrderService) AddLineItems(ctx context.Context, orderID uint, inputs []LineItemInput) ([]models.OrderItem, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := ensureExists(tx, &models.Order{}, orderID, ErrOrderNotFound); err != nil {
		tx.Rollback()
		return nil, err
	}

	items, err := insertLineItems(tx, orderID, inputs)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := recomputeTotal(tx, orderID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateLineItem -> satu item, jalur yang sama dengan AddLineItems
func (s *OrderService) CreateLineItem(ctx context.Context, orderID uint, input LineItemInput) (models.OrderItem, error) {
	items, err := s.AddLineItems(ctx, orderID, []LineItemInput{input})
	if err != nil {
		return models.OrderItem{}, err
	}
	return items[0], nil
}

// UpdateLineItem mengubah item lalu menghitung ulang total order.
// Subtotal dihitung ulang bila quantity/harga/menu berubah dan subtotal tidak dikirim.
func (s *OrderService) UpdateLineItem(ctx context.Context, orderID, itemID uint, patch LineItemPatch) (models.OrderItem, error) {
	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return models.OrderItem{}, tx.Error
	}

	var item models.OrderItem
	if err := tx.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, ErrLineItemNotFound
		}
		return item, err
	}

	repriced := false
	if patch.MenuItemID != nil && *patch.MenuItemID != item.MenuItemID {
		price, err := MenuPrice(tx, *patch.MenuItemID)
		if err != nil {
			tx.Rollback()
			return item, err
		}
		item.MenuItemID = *patch.MenuItemID
		item.UnitPrice = price
		repriced = true
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			tx.Rollback()
			return item, ErrInvalidQuantity
		}
		item.Quantity = *patch.Quantity
		repriced = true
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = *patch.UnitPrice
		repriced = true
	}

	switch {
	case patch.Subtotal != nil:
		item.Subtotal = *patch.Subtotal
	case repriced:
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}

	if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
		tx.Rollback()
		return item, fmt.Errorf("update order item %d: %w", itemID, err)
	}
	if err := recomputeTotal(tx, orderID); err != nil {
		tx.Rollback()
		return item, err
	}

	return item, tx.Commit().Error
}

// DeleteLineItem menghapus item lalu menghitung ulang total (0 bila item habis).
func (s *OrderService) DeleteLineItem(ctx context.Context, orderID, itemID uint) error {
	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	res := tx.Where("id = ? AND order_id = ?", itemID, orderID).Delete(&models.OrderItem{})
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrLineItemNotFound
	}

	if err := recomputeTotal(tx, orderID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// RecomputeOrderTotal menghitung ulang total dari nol. Idempotent.
func (s *OrderService) RecomputeOrderTotal(ctx context.Context, orderID uint) error {
	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := ensureExists(tx, &models.Order{}, orderID, ErrOrderNotFound); err != nil {
		tx.Rollback()
		return err
	}
	if err := recomputeTotal(tx, orderID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// UpdateStatus -> status apa pun yang valid boleh ditulis dari status mana pun
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}
	res := s.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if res.Error != nil {
		return models.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Order{}, ErrOrderNotFound
	}
	return s.GetOrder(ctx, orderID)
}

// DeleteOrder menghapus item lalu order-nya dalam satu transaksi.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uint) error {
	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := ensureExists(tx, &models.Order{}, orderID, ErrOrderNotFound); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Order{}, orderID).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// MenuPrice -> harga menu saat ini, dibaca di dalam transaksi pemanggil
func MenuPrice(tx *gorm.DB, menuItemID uint) (decimal.Decimal, error) {
	var menu models.MenuItem
	if err := tx.Select("id", "price").First(&menu, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("%w: id %d", ErrMenuItemNotFound, menuItemID)
		}
		return decimal.Zero, err
	}
	return menu.Price, nil
}

func insertLineItems(tx *gorm.DB, orderID uint, inputs []LineItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for i, in := range inputs {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("item %d: %w", i, ErrInvalidQuantity)
		}

		// menu selalu dicek supaya menu_item_id yang salah menggagalkan seluruh batch
		price, err := MenuPrice(tx, in.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		if in.Subtotal != nil {
			subtotal = *in.Subtotal
		}

		item := models.OrderItem{
			OrderID:    orderID,
			MenuItemID: in.MenuItemID,
			Quantity:   in.Quantity,
			UnitPrice:  price,
			Subtotal:   subtotal,
		}
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// recomputeTotal -> UPDATE orders SET total_amount = (SELECT COALESCE(SUM(subtotal),0) ...)
func recomputeTotal(tx *gorm.DB, orderID uint) error {
	sum := tx.Model(&models.OrderItem{}).Select("COALESCE(SUM(subtotal), 0)").Where("order_id = ?", orderID)
	if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("total_amount", sum).Error; err != nil {
		return fmt.Errorf("recompute total for order %d: %w", orderID, err)
	}
	return nil
}

func ensureExists(tx *gorm.DB, model interface{}, id uint, notFound error) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}
