package repository

import (
	"time"

	"qrmenu/entity"

	"gorm.io/gorm"
)

// UserRepository รับผิดชอบการคุยกับตาราง users ใน DB เท่านั้น
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// UserRow แถวในหน้า admin/users
type UserRow struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	ProfileCount int64     `json:"profileCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// หาผู้ใช้จาก email
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// นับจำนวน user ที่มี email ซ้ำ
func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// สร้าง user ใหม่
func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

// อัปเดต user
func (r *UserRepository) Update(userID uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

// โหลด user ตาม ID
func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) List(q string, p Page) ([]UserRow, int64, error) {
	base := r.DB.Model(&entity.User{})
	if q != "" {
		like := "%" + q + "%"
		base = base.Where("users.email LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ?", like, like, like)
	}

	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []UserRow{}
	err := base.
		Select("users.id, users.email, users.first_name, users.last_name, users.role, users.is_active, users.created_at, " +
			"(SELECT COUNT(*) FROM profiles WHERE profiles.owner_id = users.id AND profiles.deleted_at IS NULL) AS profile_count").
		Order("users.id DESC").Limit(p.Limit).Offset(p.Offset()).
		Scan(&items).Error
	return items, total, err
}
