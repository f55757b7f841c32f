package repository

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/medianexus/internal/model"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// AutoMigrate 建表，唯一约束由存储层兜底（注册、进度 upsert 依赖它们）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.MainMedia{},
		&model.MediaDetails{},
		&model.BookDetails{},
		&model.Genre{},
		&model.MediaGenre{},
		&model.User{},
		&model.UserResponse{},
		&model.UserMediaStatus{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB        *gorm.DB
	Media     *MediaRepository
	User      *UserRepository
	Genre     *GenreRepository
	Response  *ResponseRepository
	UserMedia *UserMediaRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:        db,
		Media:     NewMediaRepository(db),
		User:      NewUserRepository(db),
		Genre:     NewGenreRepository(db),
		Response:  NewResponseRepository(db),
		UserMedia: NewUserMediaRepository(db),
	}
}
