package repository

import (
	"errors"

	"qrmenu/pkg/apperr"

	"gorm.io/gorm"
)

// Page ใช้กับรายการฝั่ง admin (page เริ่มที่ 1)
type Page struct {
	Page  int
	Limit int
}

func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// notFound แปลง gorm.ErrRecordNotFound เป็น apperr.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
