package utils

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

var registerOnce sync.Once

// RegisterValidators menambahkan tag `isodate` (YYYY-MM-DD) dan `clock` (HH:MM / HH:MM:SS)
// ke validator bawaan gin. Aman dipanggil berkali-kali.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		}); err != nil {
			ErrorLogger.Printf("register isodate validator: %v", err)
		}
		if err := v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, err := ParseClock(fl.Field().String())
			return err == nil
		}); err != nil {
			ErrorLogger.Printf("register clock validator: %v", err)
		}
	})
}

// ParseDate -> tanggal kalender di UTC tengah malam
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return datatypes.Date(t), nil
}

// ParseClock menerima HH:MM atau HH:MM:SS
func ParseClock(s string) (datatypes.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, use HH:MM or HH:MM:SS", s)
}

// Today -> tanggal hari ini (UTC)
func Today() datatypes.Date {
	return DateOf(time.Now().UTC())
}

func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func ClockOf(t time.Time) datatypes.Time {
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// MinutesOfDay memotong detik, sama seperti perbandingan jam:menit di sisi reservasi
func MinutesOfDay(t datatypes.Time) int {
	return int(time.Duration(t) / time.Minute)
}
