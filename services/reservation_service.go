package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BufferWindow -> jarak minimum (dua arah) antar reservasi aktif di meja yang sama
const BufferWindow = 120 * time.Minute

// ReservationService menangani cek ketersediaan meja dan penyimpanan reservasi
type ReservationService struct {
	DB *gorm.DB
}

// NewReservationService membuat instance baru ReservationService
func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// Collides true bila dua jam reservasi berjarak <= BufferWindow.
// Perbandingan dalam menit, detik diabaikan.
func Collides(a, b datatypes.Time) bool {
	diff := utils.MinutesOfDay(a) - utils.MinutesOfDay(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= int(BufferWindow/time.Minute)
}

// Conflicts mengembalikan reservasi aktif di meja & tanggal yang sama yang bertabrakan
// dengan jam yang diminta. excludeID dipakai saat mengedit reservasi itu sendiri.
func (s *ReservationService) Conflicts(ctx context.Context, tableID uint, date datatypes.Date, at datatypes.Time, excludeID *uint) ([]models.Reservation, error) {
	var sameDay []models.Reservation

	query := s.DB.WithContext(ctx).
		Where("table_id = ? AND reservation_date = ? AND status IN ?", tableID, date, models.ActiveReservationStatuses)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Order("reservation_time").Find(&sameDay).Error; err != nil {
		return nil, fmt.Errorf("load reservations for table %d: %w", tableID, err)
	}

	conflicts := make([]models.Reservation, 0)
	for _, r := range sameDay {
		if Collides(at, r.ReservationTime) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts, nil
}

// IsTableAvailable -> tidak ada reservasi Confirmed/Arrived dalam BufferWindow.
// Hanya membaca, tidak mengunci apa pun.
func (s *ReservationService) IsTableAvailable(ctx context.Context, tableID uint, date datatypes.Date, at datatypes.Time, excludeID *uint) (bool, error) {
	conflicts, err := s.Conflicts(ctx, tableID, date, at, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Create cek meja ada, cek ketersediaan, lalu simpan.
// Dua request bersamaan untuk slot yang sama masih bisa lolos keduanya.
func (s *ReservationService) Create(ctx context.Context, r *models.Reservation) error {
	if r.Status == "" {
		r.Status = models.ReservationConfirmed
	}
	if !models.IsValidReservationStatus(r.Status) {
		return ErrInvalidStatus
	}
	if err := s.ensureTable(ctx, r.TableID); err != nil {
		return err
	}

	available, err := s.IsTableAvailable(ctx, r.TableID, r.ReservationDate, r.ReservationTime, nil)
	if err != nil {
		return err
	}
	if !available {
		return ErrTableUnavailable
	}

	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// Update menyimpan perubahan. recheck=true bila meja/tanggal/jam ikut diubah,
// reservasi itu sendiri dikecualikan dari pengecekan.
func (s *ReservationService) Update(ctx context.Context, r *models.Reservation, recheck bool) error {
	if !models.IsValidReservationStatus(r.Status) {
		return ErrInvalidStatus
	}
	if recheck {
		if err := s.ensureTable(ctx, r.TableID); err != nil {
			return err
		}
		available, err := s.IsTableAvailable(ctx, r.TableID, r.ReservationDate, r.ReservationTime, &r.ID)
		if err != nil {
			return err
		}
		if !available {
			return ErrTableUnavailable
		}
	}

	if err := s.DB.WithContext(ctx).Omit(clause.Associations).Save(r).Error; err != nil {
		return fmt.Errorf("update reservation %d: %w", r.ID, err)
	}
	return nil
}

// Find -> satu reservasi beserta mejanya
func (s *ReservationService) Find(ctx context.Context, id uint) (models.Reservation, error) {
	var r models.Reservation
	err := s.DB.WithContext(ctx).Preload("Table").First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r, ErrReservationNotFound
	}
	return r, err
}

func (s *ReservationService) ensureTable(ctx context.Context, tableID uint) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Table{}).Where("id = ?", tableID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTableNotFound
	}
	return nil
}
